package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/elicitmesh/core"
	"github.com/hupe1980/elicitmesh/oracle"
)

var (
	_ core.Agent = (*Interviewer)(nil)
	_ core.Agent = (*Enduser)(nil)
	_ core.Agent = (*ScriptedAgent)(nil)
)

func TestInterviewer_OpensWithProblemStatement(t *testing.T) {
	mock := oracle.NewMockOracle()
	mock.QueueResponses("What is your role and how do you work with the current process?")

	iv := NewInterviewer(mock, "A task tracker for small teams")
	text, err := iv.Produce(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "What is your role and how do you work with the current process?", text)
	assert.Equal(t, core.SpeakerInterviewer, iv.Speaker())
}

func TestInterviewer_PromptCarriesTranscript(t *testing.T) {
	mock := oracle.NewMockOracle()
	iv := NewInterviewer(mock, "A task tracker for small teams")

	transcript := []core.Turn{
		{Sequence: 0, Speaker: core.SpeakerInterviewer, Text: "What is your role?", Timestamp: time.Now()},
		{Sequence: 1, Speaker: core.SpeakerEnduser, Text: "I coordinate a sales team.", Timestamp: time.Now()},
	}
	text, err := iv.Produce(context.Background(), transcript)
	require.NoError(t, err)

	// Unknown prompts echo, so the mock output exposes the rendered prompt.
	assert.Contains(t, text, "Problem statement: A task tracker for small teams")
	assert.Contains(t, text, "Interviewer: What is your role?")
	assert.Contains(t, text, "Enduser: I coordinate a sales team.")
}

func TestEnduser_PromptCarriesPersona(t *testing.T) {
	mock := oracle.NewMockOracle()
	eu := NewEnduser(mock, "Sales coordinator at a mid-size retailer", "Planning the holiday campaign")

	transcript := []core.Turn{
		{Sequence: 0, Speaker: core.SpeakerInterviewer, Text: "What is your role?"},
	}
	text, err := eu.Produce(context.Background(), transcript)
	require.NoError(t, err)

	assert.Contains(t, text, "Sales coordinator at a mid-size retailer")
	assert.Contains(t, text, "Planning the holiday campaign")
	assert.Equal(t, core.SpeakerEnduser, eu.Speaker())
}

func TestRoleAgent_TrimsWhitespace(t *testing.T) {
	mock := oracle.NewMockOracle()
	mock.QueueResponses("  What matters most to you?  \n")

	iv := NewInterviewer(mock, "p")
	text, err := iv.Produce(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "What matters most to you?", text)
}

func TestRoleAgent_ClassifiesTimeout(t *testing.T) {
	mock := oracle.NewMockOracle()
	iv := NewInterviewer(mock, "p")

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := iv.Produce(ctx, nil)
	assert.ErrorIs(t, err, core.ErrOracleTimeout)
}

func TestScriptedAgent_RepeatsLastLine(t *testing.T) {
	sa := NewScripted(core.SpeakerEnduser, "first", "second")
	ctx := context.Background()

	for _, want := range []string{"first", "second", "second", "second"} {
		text, err := sa.Produce(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, want, text)
	}
}

func TestScriptedAgent_FailNext(t *testing.T) {
	sa := NewScripted(core.SpeakerInterviewer, "question")
	injected := errors.New("boom")
	sa.FailNext(injected)

	_, err := sa.Produce(context.Background(), nil)
	assert.ErrorIs(t, err, injected)

	text, err := sa.Produce(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "question", text)
}

func TestCustomSystemPrompt(t *testing.T) {
	mock := oracle.NewMockOracle()
	iv := NewInterviewer(mock, "p", func(o *Options) {
		o.SystemPrompt = "custom"
	})
	assert.Equal(t, "custom", iv.system)
}
