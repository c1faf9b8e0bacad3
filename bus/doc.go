// Package bus broadcasts conversation turns to external observers. The
// coordinator publishes every appended turn on a per-session topic as a
// best-effort audit trail; a bus outage never fails the session.
//
// InMemoryBus serves tests and single-process setups, the nats subpackage
// provides the NATS-backed publisher for distributed deployments.
package bus
