package agent

import (
	"context"
	"sync"

	"github.com/hupe1980/elicitmesh/core"
)

// ScriptedAgent replays a fixed sequence of lines, repeating the last line
// once the script is exhausted. Deterministic stand-in for an oracle-backed
// agent in tests and examples; the repetition naturally drives the
// saturation detector towards its threshold.
type ScriptedAgent struct {
	speaker core.Speaker

	mu    sync.Mutex
	lines []string
	next  int
	errs  []error
}

// NewScripted creates a ScriptedAgent for the given speaker. At least one
// line is required or Produce returns empty text.
func NewScripted(speaker core.Speaker, lines ...string) *ScriptedAgent {
	return &ScriptedAgent{speaker: speaker, lines: lines}
}

// Speaker implements core.Agent.
func (a *ScriptedAgent) Speaker() core.Speaker { return a.speaker }

// FailNext queues errors returned by the next Produce calls before any line
// is consumed.
func (a *ScriptedAgent) FailNext(errs ...error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.errs = append(a.errs, errs...)
}

// Produce implements core.Agent.
func (a *ScriptedAgent) Produce(ctx context.Context, _ []core.Turn) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.errs) > 0 {
		err := a.errs[0]
		a.errs = a.errs[1:]
		return "", err
	}
	if len(a.lines) == 0 {
		return "", nil
	}
	line := a.lines[a.next]
	if a.next < len(a.lines)-1 {
		a.next++
	}
	return line, nil
}
