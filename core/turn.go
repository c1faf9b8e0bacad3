package core

import (
	"time"

	"github.com/google/uuid"
)

// Speaker identifies which side of the elicitation dialogue produced a turn.
type Speaker string

const (
	// SpeakerInterviewer is the requirements interviewer agent.
	SpeakerInterviewer Speaker = "Interviewer"
	// SpeakerEnduser is the simulated end user agent.
	SpeakerEnduser Speaker = "Enduser"
)

// Other returns the opposite dialogue side, used for strict alternation.
func (s Speaker) Other() Speaker {
	if s == SpeakerInterviewer {
		return SpeakerEnduser
	}
	return SpeakerInterviewer
}

// Turn is one utterance by one agent. Turns are immutable once created and
// ordered by Sequence, which is strictly increasing and gapless starting at 0.
type Turn struct {
	Sequence  int       `json:"sequence_number"`
	Speaker   Speaker   `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NewID generates a new opaque unique identifier for sessions, requirement
// items and bus messages.
func NewID() string { return uuid.NewString() }
