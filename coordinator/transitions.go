package coordinator

import (
	"fmt"

	"github.com/hupe1980/elicitmesh/core"
)

// Signal is a lifecycle event observed by the coordinator.
type Signal string

const (
	// SignalThresholdCrossed fires when the saturation score exceeds the
	// configured threshold after a completed exchange.
	SignalThresholdCrossed Signal = "threshold_crossed"
	// SignalMaxTurnsReached fires when the hard turn ceiling is hit.
	SignalMaxTurnsReached Signal = "max_turns_reached"
	// SignalConfirmationDone fires after the closing exchange completed.
	SignalConfirmationDone Signal = "confirmation_done"
	// SignalCancelRequested fires when an external caller cancels between
	// turns.
	SignalCancelRequested Signal = "cancel_requested"
	// SignalAgentExhausted fires when the per-turn retry budget ran out.
	SignalAgentExhausted Signal = "agent_exhausted"
	// SignalStorageExhausted fires when artifact persistence ran out of
	// retries after a normal close.
	SignalStorageExhausted Signal = "storage_exhausted"
)

// Effect describes a side effect the coordinator must perform after applying
// a transition. Transitions themselves are pure.
type Effect string

const (
	// EffectRunConfirmation schedules the one closing exchange.
	EffectRunConfirmation Effect = "run_confirmation"
	// EffectBuildAndPersist schedules artifact building and persistence.
	EffectBuildAndPersist Effect = "build_and_persist"
	// EffectReportFailure schedules failure reporting with the typed cause.
	EffectReportFailure Effect = "report_failure"
)

// Transition computes the successor status and the effects to perform for a
// lifecycle signal. It returns core.ErrInvalidState for signals that are not
// valid in the given status.
func Transition(status core.Status, sig Signal) (core.Status, []Effect, error) {
	switch status {
	case core.StatusActive:
		switch sig {
		case SignalThresholdCrossed, SignalMaxTurnsReached:
			return core.StatusSaturated, []Effect{EffectRunConfirmation}, nil
		case SignalCancelRequested:
			return core.StatusTerminated, []Effect{EffectBuildAndPersist}, nil
		case SignalAgentExhausted:
			return core.StatusFailed, []Effect{EffectReportFailure}, nil
		}
	case core.StatusSaturated:
		switch sig {
		case SignalConfirmationDone, SignalCancelRequested:
			return core.StatusTerminated, []Effect{EffectBuildAndPersist}, nil
		case SignalAgentExhausted:
			return core.StatusFailed, []Effect{EffectReportFailure}, nil
		}
	case core.StatusTerminated:
		if sig == SignalStorageExhausted {
			return core.StatusFailed, []Effect{EffectReportFailure}, nil
		}
	}
	return status, nil, fmt.Errorf("%w: signal %s not valid in status %s", core.ErrInvalidState, sig, status)
}
