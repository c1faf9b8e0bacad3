package artifact

import "fmt"

var (
	// ErrNotFound is returned when no artifact exists under the given key.
	ErrNotFound = fmt.Errorf("artifact not found")
	// ErrAlreadyExists is returned when a key was already written. Artifacts
	// are immutable, so callers may treat this as a successful write.
	ErrAlreadyExists = fmt.Errorf("artifact already exists")
)

// Key prefixes for the two artifacts produced per session.
const (
	RecordPrefix       = "interview-records/"
	RequirementsPrefix = "requirements-artifacts/"
)

// RecordKey returns the storage key of the interview record for a session.
func RecordKey(sessionID string) string {
	return RecordPrefix + sessionID + ".txt"
}

// RequirementsKey returns the storage key of the requirements artifact for
// a session.
func RequirementsKey(sessionID string) string {
	return RequirementsPrefix + sessionID + ".txt"
}
