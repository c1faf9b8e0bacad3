// Package core provides the foundational domain types and interfaces used by
// ElicitMesh. It defines the core abstractions for:
//
//   - Turns (immutable utterances ordered by a gapless sequence number)
//   - Sessions (the single-owner conversational record with lifecycle status)
//   - Agents (the produce-turn capability behind Interviewer and Enduser)
//   - Requirement items (the derived, prioritized elicitation output)
//   - Pluggable boundaries for saturation detection, text similarity, the
//     message bus and artifact storage
//
// The package intentionally keeps implementation concerns (oracle adapters,
// bus and storage backends, the coordinator state machine) out of scope,
// exposing small interfaces so backends and deterministic test doubles can be
// swapped in without touching the orchestration code.
package core
