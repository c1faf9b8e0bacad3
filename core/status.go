package core

// Status is the lifecycle state of a conversation session.
//
// Valid transitions:
//
//	Active    -> Saturated (threshold crossed or max-turn bound reached)
//	Active    -> Terminated (cancellation)
//	Saturated -> Terminated (after the confirmation exchange or cancellation)
//	Active    -> Failed (agent retries exhausted)
//	Saturated -> Failed (agent retries exhausted)
//	Terminated -> Failed (artifact persistence exhausted)
//
// Terminated and Failed are terminal.
type Status string

const (
	// StatusActive means the session is accepting new turns.
	StatusActive Status = "Active"
	// StatusSaturated means the saturation threshold (or turn bound) was
	// reached; only the closing confirmation exchange may still append turns.
	StatusSaturated Status = "Saturated"
	// StatusTerminated means the session ended normally and its artifacts
	// were durably written.
	StatusTerminated Status = "Terminated"
	// StatusFailed means an unrecoverable agent or storage error occurred.
	// The transcript accumulated so far is retained for recovery.
	StatusFailed Status = "Failed"
)

// Terminal reports whether no further lifecycle transitions except
// Terminated -> Failed are possible.
func (s Status) Terminal() bool {
	return s == StatusTerminated || s == StatusFailed
}
