package core

import (
	"context"
	"time"
)

// TurnMessage is the flat record published to the message bus for every
// appended turn. MessageID allows at-most-once consumers to drop duplicate
// deliveries.
type TurnMessage struct {
	MessageID string    `json:"message_id"`
	Sequence  int       `json:"sequence_number"`
	Speaker   Speaker   `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTurnMessage builds the bus record for a turn.
func NewTurnMessage(t Turn) TurnMessage {
	return TurnMessage{
		MessageID: NewID(),
		Sequence:  t.Sequence,
		Speaker:   t.Speaker,
		Text:      t.Text,
		Timestamp: t.Timestamp,
	}
}

// TurnTopic returns the session-scoped bus topic for turn broadcasts.
func TurnTopic(sessionID string) string {
	return "session." + sessionID + ".turns"
}

// Publisher is the message bus boundary. The bus is an audit sink, not a
// source of truth: publishes are fire-and-forget relative to session
// progress, and a failed publish never fails the session.
type Publisher interface {
	Publish(ctx context.Context, topic string, msg TurnMessage) error
}

// ArtifactStore is the object storage boundary for write-once artifacts.
// Put must be at-most-once per key: writing an existing key is an error,
// which the coordinator treats as already-durable.
type ArtifactStore interface {
	Put(ctx context.Context, key string, data []byte) error
}
