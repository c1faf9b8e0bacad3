package core

import "errors"

var (
	// ErrInvalidState is returned when an operation is invoked on a session
	// that is not in the expected lifecycle state (caller misuse).
	ErrInvalidState = errors.New("invalid session state")

	// ErrOracleTimeout indicates the reasoning oracle did not answer within
	// the per-call timeout. Transient; retried at the agent-invocation level.
	ErrOracleTimeout = errors.New("oracle timeout")

	// ErrOracleRefusal indicates the reasoning oracle declined to produce
	// usable text. Transient; retried at the agent-invocation level.
	ErrOracleRefusal = errors.New("oracle refusal")

	// ErrAgentUnavailable is surfaced once the configured retry budget for a
	// single turn is exhausted. The session moves to Failed.
	ErrAgentUnavailable = errors.New("agent unavailable")

	// ErrBusPublish indicates a message bus publish failed. Non-fatal: the
	// publish is logged and retried asynchronously, the session proceeds.
	ErrBusPublish = errors.New("bus publish failed")

	// ErrStorageWrite indicates artifact persistence failed. Fatal to the
	// Terminated status once the storage retry budget is exhausted.
	ErrStorageWrite = errors.New("storage write failed")

	// ErrDetectorDegraded indicates the similarity computation failed. The
	// saturation score freezes at its previous value; never fatal.
	ErrDetectorDegraded = errors.New("saturation detector degraded")
)

// IsRetryableOracleErr reports whether an agent production error is transient
// and worth another attempt within the configured retry budget.
func IsRetryableOracleErr(err error) bool {
	return errors.Is(err, ErrOracleTimeout) || errors.Is(err, ErrOracleRefusal)
}
