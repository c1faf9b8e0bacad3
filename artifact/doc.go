// Package artifact defines the object storage layout for elicitation
// outputs and provides three stores: an in-memory store for tests and
// prototypes, a filesystem store for single-host deployments and an S3
// store for durable object storage.
//
// All stores share write-once semantics: a key is written at most once and
// a repeated write fails with ErrAlreadyExists, which callers treat as
// already durable.
package artifact
