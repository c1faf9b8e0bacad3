package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_AppendTurn_SequencesAreGapless(t *testing.T) {
	s := NewSession("sess-1")

	for i := 0; i < 6; i++ {
		turn, err := s.AppendTurn(s.NextSpeaker(), "text")
		require.NoError(t, err)
		assert.Equal(t, i, turn.Sequence)
	}

	turns := s.Turns()
	require.Len(t, turns, 6)
	for i, turn := range turns {
		assert.Equal(t, i, turn.Sequence)
		if i%2 == 0 {
			assert.Equal(t, SpeakerInterviewer, turn.Speaker)
		} else {
			assert.Equal(t, SpeakerEnduser, turn.Speaker)
		}
	}
}

func TestSession_AppendTurn_RejectedInTerminalStates(t *testing.T) {
	s := NewSession("")
	require.NoError(t, s.MarkSaturated())
	// Confirmation exchange still allowed.
	_, err := s.AppendTurn(SpeakerInterviewer, "anything else?")
	require.NoError(t, err)
	_, err = s.AppendTurn(SpeakerEnduser, "no, that covers it")
	require.NoError(t, err)
	// Exchange budget spent.
	_, err = s.AppendTurn(SpeakerInterviewer, "one more?")
	assert.ErrorIs(t, err, ErrInvalidState)

	require.NoError(t, s.MarkTerminated())
	_, err = s.AppendTurn(SpeakerInterviewer, "late")
	assert.ErrorIs(t, err, ErrInvalidState)

	failed := NewSession("")
	require.NoError(t, failed.MarkFailed(ErrAgentUnavailable))
	_, err = failed.AppendTurn(SpeakerInterviewer, "late")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestSession_Transitions(t *testing.T) {
	s := NewSession("")
	assert.Equal(t, StatusActive, s.Status())

	require.NoError(t, s.MarkSaturated())
	assert.Equal(t, StatusSaturated, s.Status())
	// Saturated only reachable from Active.
	assert.ErrorIs(t, s.MarkSaturated(), ErrInvalidState)

	require.NoError(t, s.MarkTerminated())
	assert.Equal(t, StatusTerminated, s.Status())
	assert.True(t, s.Status().Terminal())
	assert.ErrorIs(t, s.MarkTerminated(), ErrInvalidState)

	// Storage exhaustion after a normal close.
	cause := errors.New("boom")
	require.NoError(t, s.MarkFailed(cause))
	assert.Equal(t, StatusFailed, s.Status())
	assert.Equal(t, cause, s.FailureCause())
	assert.ErrorIs(t, s.MarkFailed(cause), ErrInvalidState)
}

func TestSession_CancellationFromActive(t *testing.T) {
	s := NewSession("")
	_, err := s.AppendTurn(SpeakerInterviewer, "q")
	require.NoError(t, err)
	require.NoError(t, s.MarkTerminated())
	assert.Equal(t, StatusTerminated, s.Status())
}

func TestSession_SetScoreClamps(t *testing.T) {
	s := NewSession("")
	s.SetScore(1.5)
	assert.Equal(t, 1.0, s.Score())
	s.SetScore(-0.2)
	assert.Equal(t, 0.0, s.Score())
	s.SetScore(0.42)
	assert.Equal(t, 0.42, s.Score())
}

func TestSession_ArtifactBookkeeping(t *testing.T) {
	s := NewSession("")
	s.RecordArtifact("interview-records/x.txt")
	s.RecordArtifact("requirements-artifacts/x.txt")
	assert.Equal(t, []string{"interview-records/x.txt", "requirements-artifacts/x.txt"}, s.Artifacts())
}

func TestConfig_NormalizeDefaults(t *testing.T) {
	cfg := Config{}.Normalize()
	assert.Equal(t, DefaultSaturationThreshold, cfg.SaturationThreshold)
	assert.Equal(t, DefaultMaxTurns, cfg.MaxTurns)
	assert.Equal(t, DefaultAgentRetryLimit, cfg.AgentRetryLimit)
	assert.Equal(t, DefaultAgentTimeout, cfg.AgentTimeout)
	assert.Equal(t, DefaultNoveltyWindow, cfg.NoveltyWindow)
	assert.Equal(t, DefaultDedupThreshold, cfg.DedupThreshold)

	custom := Config{SaturationThreshold: 0.9, MaxTurns: 10}.Normalize()
	assert.Equal(t, 0.9, custom.SaturationThreshold)
	assert.Equal(t, 10, custom.MaxTurns)
}

func TestSpeaker_Other(t *testing.T) {
	assert.Equal(t, SpeakerEnduser, SpeakerInterviewer.Other())
	assert.Equal(t, SpeakerInterviewer, SpeakerEnduser.Other())
}
