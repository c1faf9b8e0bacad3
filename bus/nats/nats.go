// Package nats provides the NATS-backed turn publisher for distributed
// deployments where downstream consumers audit or mirror running sessions.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/hupe1980/elicitmesh/core"
	"github.com/hupe1980/elicitmesh/logging"
)

// Options configures the NATS publisher connection.
type Options struct {
	// Token authenticates against a token-protected server. Empty disables
	// token auth.
	Token string
	// MaxReconnects bounds automatic reconnect attempts.
	MaxReconnects int
	// ReconnectWait is the delay between reconnect attempts.
	ReconnectWait time.Duration
	// Logger receives connection lifecycle events.
	Logger logging.Logger
}

// Publisher publishes turn messages to NATS subjects. Consumers must treat
// deliveries as at-least-once and deduplicate on the message id.
type Publisher struct {
	conn   *nats.Conn
	logger logging.Logger
}

// New connects to the NATS server at url and returns a Publisher.
func New(url string, optFns ...func(o *Options)) (*Publisher, error) {
	opts := Options{
		MaxReconnects: 60,
		ReconnectWait: 2 * time.Second,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	logger := opts.Logger
	natsOpts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(opts.MaxReconnects),
		nats.ReconnectWait(opts.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if opts.Token != "" {
		natsOpts = append(natsOpts, nats.Token(opts.Token))
	}

	conn, err := nats.Connect(url, natsOpts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Publisher{conn: conn, logger: logger}, nil
}

// Publish marshals the turn message and publishes it on the topic, flushing
// within the context deadline so the caller's timeout bounds delivery.
func (p *Publisher) Publish(ctx context.Context, topic string, msg core.TurnMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal turn message: %w", err)
	}
	if err := p.conn.Publish(topic, payload); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush %s: %w", topic, err)
	}
	return nil
}

// Close drains the connection.
func (p *Publisher) Close() {
	p.conn.Close()
}
