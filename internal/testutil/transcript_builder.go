package testutil

import (
	"time"

	"github.com/hupe1980/elicitmesh/core"
)

// Transcript builds an alternating turn sequence from the given texts,
// starting with the Interviewer and assigning gapless sequence numbers and
// fixed, deterministic timestamps.
func Transcript(texts ...string) []core.Turn {
	base := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	turns := make([]core.Turn, len(texts))
	for i, text := range texts {
		speaker := core.SpeakerInterviewer
		if i%2 == 1 {
			speaker = core.SpeakerEnduser
		}
		turns[i] = core.Turn{
			Sequence:  i,
			Speaker:   speaker,
			Text:      text,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
	}
	return turns
}

// Exchanges builds a transcript from question/answer pairs.
func Exchanges(pairs ...[2]string) []core.Turn {
	texts := make([]string, 0, len(pairs)*2)
	for _, p := range pairs {
		texts = append(texts, p[0], p[1])
	}
	return Transcript(texts...)
}
