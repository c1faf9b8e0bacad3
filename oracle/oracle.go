package oracle

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hupe1980/elicitmesh/core"
)

// Request captures one generation call: the role configuration (persona,
// goals, output rules) as the system block and the turn-specific prompt.
type Request struct {
	System string `json:"system"`
	Prompt string `json:"prompt"`
}

// Oracle is the minimal interface required by agents to produce turn text.
//
// Generate returns the completion for the request. Implementations map
// provider failures onto the core taxonomy: deadline expiry becomes
// core.ErrOracleTimeout, empty or declined completions become
// core.ErrOracleRefusal, so the coordinator retry policy applies uniformly.
type Oracle interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Info contains metadata about an oracle implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// ClassifyErr maps a provider error onto the core oracle taxonomy. Context
// expiry is a timeout; everything else passes through unchanged.
func ClassifyErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", core.ErrOracleTimeout, err)
	}
	return err
}

// MockOracle is a lightweight in-memory Oracle useful for tests & examples.
// Responses are keyed by prompt; unknown prompts get a deterministic echo.
// FailNext injects transient errors for retry-path testing.
type MockOracle struct {
	mu        sync.Mutex
	responses map[string]string
	queue     []string
	failures  []error
	calls     int
}

// NewMockOracle constructs an empty MockOracle.
func NewMockOracle() *MockOracle {
	return &MockOracle{responses: make(map[string]string)}
}

// AddResponse registers a deterministic canned completion for a prompt.
func (m *MockOracle) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// QueueResponses appends completions returned in order regardless of prompt.
// Queued responses take precedence over keyed ones.
func (m *MockOracle) QueueResponses(responses ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, responses...)
}

// FailNext queues errors returned by the next Generate calls before any
// response is considered.
func (m *MockOracle) FailNext(errs ...error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, errs...)
}

// Calls returns how many times Generate was invoked.
func (m *MockOracle) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Generate implements Oracle.
func (m *MockOracle) Generate(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", ClassifyErr(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if len(m.failures) > 0 {
		err := m.failures[0]
		m.failures = m.failures[1:]
		return "", err
	}
	if len(m.queue) > 0 {
		resp := m.queue[0]
		m.queue = m.queue[1:]
		return resp, nil
	}
	if resp, ok := m.responses[req.Prompt]; ok {
		return resp, nil
	}
	return fmt.Sprintf("Mock response to: %s", req.Prompt), nil
}

// Info implements provider metadata for the mock.
func (m *MockOracle) Info() Info { return Info{Name: "mock", Provider: "mock"} }
