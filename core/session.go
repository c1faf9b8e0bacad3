package core

import (
	"fmt"
	"sync"
	"time"
)

// confirmationTurns is the number of closing turns (one exchange) permitted
// after the Saturated transition.
const confirmationTurns = 2

// Session is the authoritative record of one elicitation conversation. It has
// a single owner, the turn coordinator, which performs all mutations; other
// components only read snapshots. It is nevertheless safe for concurrent
// access so callers may inspect a running session.
//
// Contract:
//   - Turn sequence numbers are contiguous starting at 0
//   - No turns are appended once the session left Active, except the closing
//     confirmation exchange while Saturated
//   - SaturationScore stays within [0,1]
//   - Turns returns a defensive copy to avoid external mutation
type Session struct {
	ID      string
	Created time.Time

	mu          sync.RWMutex
	status      Status
	score       float64
	turns       []Turn
	confirmLeft int
	failure     error
	artifacts   []string
}

// NewSession creates an Active session. An empty id is replaced by a
// generated one.
func NewSession(id string) *Session {
	if id == "" {
		id = NewID()
	}
	return &Session{ID: id, Created: time.Now().UTC(), status: StatusActive}
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Score returns the last saturation score.
func (s *Session) Score() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.score
}

// SetScore records the latest saturation score, clamped to [0,1].
func (s *Session) SetScore(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	s.score = v
}

// AppendTurn appends an utterance for the given speaker, assigning the next
// sequence number. It fails with ErrInvalidState once the session is no
// longer accepting turns.
func (s *Session) AppendTurn(speaker Speaker, text string) (Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.status {
	case StatusActive:
	case StatusSaturated:
		if s.confirmLeft <= 0 {
			return Turn{}, fmt.Errorf("%w: confirmation exchange already completed", ErrInvalidState)
		}
		s.confirmLeft--
	default:
		return Turn{}, fmt.Errorf("%w: cannot append turn in status %s", ErrInvalidState, s.status)
	}
	t := Turn{
		Sequence:  len(s.turns),
		Speaker:   speaker,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
	s.turns = append(s.turns, t)
	return t, nil
}

// Turns returns a defensive copy of the transcript in sequence order.
func (s *Session) Turns() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// TurnCount returns the number of turns appended so far.
func (s *Session) TurnCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}

// NextSpeaker returns the side whose turn is next under strict alternation.
// The Interviewer always opens the session.
func (s *Session) NextSpeaker() Speaker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.turns)%2 == 0 {
		return SpeakerInterviewer
	}
	return SpeakerEnduser
}

// MarkSaturated transitions Active -> Saturated, arming the closing
// confirmation exchange.
func (s *Session) MarkSaturated() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusActive {
		return fmt.Errorf("%w: saturated only reachable from Active, was %s", ErrInvalidState, s.status)
	}
	s.status = StatusSaturated
	s.confirmLeft = confirmationTurns
	return nil
}

// MarkTerminated transitions Active or Saturated -> Terminated.
func (s *Session) MarkTerminated() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusActive && s.status != StatusSaturated {
		return fmt.Errorf("%w: terminated not reachable from %s", ErrInvalidState, s.status)
	}
	s.status = StatusTerminated
	s.confirmLeft = 0
	return nil
}

// MarkFailed records the failure cause and transitions to Failed. Reachable
// from every state except Failed itself; Terminated -> Failed covers storage
// exhaustion after a normal close.
func (s *Session) MarkFailed(cause error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusFailed {
		return fmt.Errorf("%w: session already failed", ErrInvalidState)
	}
	s.status = StatusFailed
	s.failure = cause
	s.confirmLeft = 0
	return nil
}

// FailureCause returns the typed cause recorded by MarkFailed, or nil.
func (s *Session) FailureCause() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failure
}

// RecordArtifact notes that an artifact was durably written under key, so a
// Failed session can report which outputs already exist.
func (s *Session) RecordArtifact(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts = append(s.artifacts, key)
}

// Artifacts returns the keys of artifacts durably written so far.
func (s *Session) Artifacts() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.artifacts))
	copy(out, s.artifacts)
	return out
}
