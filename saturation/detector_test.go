package saturation

import (
	"errors"
	"testing"

	"github.com/hupe1980/elicitmesh/core"
	"github.com/hupe1980/elicitmesh/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertion)
var _ core.Detector = (*Detector)(nil)

func TestDetector_ScoreZeroBeforeTwoExchanges(t *testing.T) {
	d := New(LexicalOverlap())

	score, err := d.Score(testutil.Transcript(
		"What is your primary goal?",
		"I need task creation and must have secure login.",
	))
	require.NoError(t, err)
	assert.Equal(t, 0.0, score, "one exchange is not enough signal")
}

func TestDetector_LowScoreWhileAnswersStayNovel(t *testing.T) {
	d := New(ExactMatch())

	score, err := d.Score(testutil.Exchanges(
		[2]string{"What is your primary goal?", "I need task creation and must have secure login."},
		[2]string{"How do you search today?", "Mostly by scrolling long lists, it takes forever."},
	))
	require.NoError(t, err)
	assert.Less(t, score, 0.8, "novel answers must keep the session going")
}

func TestDetector_MonotoneUnderRepetitiveAnswers(t *testing.T) {
	d := New(ExactMatch())

	answer := "The report export is broken."
	var prev float64
	for exchanges := 1; exchanges <= 5; exchanges++ {
		pairs := make([][2]string, exchanges)
		for i := range pairs {
			pairs[i] = [2]string{"Anything else?", answer}
		}
		score, err := d.Score(testutil.Exchanges(pairs...))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, score, prev, "score must be non-decreasing under repetition")
		prev = score
	}
	assert.Greater(t, prev, 0.8, "sustained repetition must saturate")
}

func TestDetector_SameAnswerThreeExchangesInARowCrossesThreshold(t *testing.T) {
	d := New(ExactMatch())

	repeat := "I just need the fast search I mentioned."
	pairs := [][2]string{
		{"What is your primary goal?", repeat},
		{"Anything else you need?", repeat},
		{"Are there other areas to cover?", repeat},
		{"Is there really nothing more?", repeat},
	}

	// After the answer has been repeated three exchanges in a row the window
	// is fully saturated.
	score, err := d.Score(testutil.Exchanges(pairs...))
	require.NoError(t, err)
	assert.Greater(t, score, 0.8)

	// Two repeats are not enough: a lucky rephrase must not end the session.
	score, err = d.Score(testutil.Exchanges(pairs[:3]...))
	require.NoError(t, err)
	assert.LessOrEqual(t, score, 0.8)
}

func TestDetector_DeterministicForIdenticalTranscript(t *testing.T) {
	d := New(LexicalOverlap())
	transcript := testutil.Exchanges(
		[2]string{"What is your goal?", "I want to track my orders in real time."},
		[2]string{"What about delivery?", "Tracking my orders is what matters, as I said."},
		[2]string{"Anything else?", "Order tracking in real time, nothing more."},
	)

	first, err := d.Score(transcript)
	require.NoError(t, err)
	second, err := d.Score(transcript)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDetector_ClosingTermCountsAsZeroNovelty(t *testing.T) {
	d := New(ExactMatch())

	score, err := d.Score(testutil.Exchanges(
		[2]string{"What is your goal?", "I need a currency converter."},
		[2]string{"Anything else?", "DONE."},
		[2]string{"Are we finished?", "No."},
	))
	require.NoError(t, err)
	assert.Greater(t, score, 0.0, "terminator answers add no novelty")
}

func TestDetector_DegradedSimilaritySurfacesTypedError(t *testing.T) {
	broken := func(a, b string) (float64, error) {
		return 0, errors.New("embedding service unavailable")
	}
	d := New(broken)

	_, err := d.Score(testutil.Exchanges(
		[2]string{"q1", "a1"},
		[2]string{"q2", "a2"},
	))
	assert.ErrorIs(t, err, core.ErrDetectorDegraded)
}

func TestDetector_CustomWindow(t *testing.T) {
	d := New(ExactMatch(), func(o *Options) { o.Window = 2 })

	repeat := "same thing again"
	score, err := d.Score(testutil.Exchanges(
		[2]string{"q", "something fresh"},
		[2]string{"q", repeat},
		[2]string{"q", repeat},
		[2]string{"q", repeat},
	))
	require.NoError(t, err)
	assert.Greater(t, score, 0.8, "window of two saturates after two repeats")
}
