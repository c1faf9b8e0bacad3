// Package coordinator implements the conversation orchestration state
// machine. The Coordinator owns one session, alternates the Interviewer and
// Enduser agents, feeds the saturation detector after every completed
// exchange, broadcasts turns to the message bus and, on termination, runs
// the artifact builder and persists both artifacts to object storage.
//
// Lifecycle decisions are made by the pure Transition function so the state
// machine can be unit tested in isolation from I/O.
package coordinator
