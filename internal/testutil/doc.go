// Package testutil provides small builders for constructing deterministic
// transcripts in tests.
package testutil
