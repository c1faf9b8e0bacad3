package bus

import (
	"context"
	"sync"

	"github.com/hupe1980/elicitmesh/core"
)

// Envelope is one published message together with its topic, as retained by
// the InMemoryBus.
type Envelope struct {
	Topic   string
	Message core.TurnMessage
}

// InMemoryBus is an in-process Publisher that retains every published
// message for inspection. Useful for tests, examples and single-process
// prototypes.
type InMemoryBus struct {
	mu       sync.RWMutex
	messages []Envelope
	failNext []error
}

// NewInMemoryBus returns an empty in-memory bus.
func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{}
}

// Publish records the message under the topic. Queued failures injected via
// FailNext are returned first, in order.
func (b *InMemoryBus) Publish(ctx context.Context, topic string, msg core.TurnMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.failNext) > 0 {
		err := b.failNext[0]
		b.failNext = b.failNext[1:]
		return err
	}
	b.messages = append(b.messages, Envelope{Topic: topic, Message: msg})
	return nil
}

// FailNext queues errors to be returned by the next Publish calls, one per
// call. Used to exercise the coordinator's fire-and-forget path.
func (b *InMemoryBus) FailNext(errs ...error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failNext = append(b.failNext, errs...)
}

// Messages returns a snapshot of everything published so far, in order.
func (b *InMemoryBus) Messages() []Envelope {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Envelope, len(b.messages))
	copy(out, b.messages)
	return out
}

// Topic returns the published messages for one topic, in order.
func (b *InMemoryBus) Topic(topic string) []core.TurnMessage {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []core.TurnMessage
	for _, e := range b.messages {
		if e.Topic == topic {
			out = append(out, e.Message)
		}
	}
	return out
}
