package core

import "context"

// Agent is the produce-turn capability implemented by both sides of the
// dialogue. Implementations wrap a reasoning oracle with an immutable role
// configuration; scripted stand-ins for tests implement the same contract.
//
// Produce receives the full prior transcript as context and returns the text
// of the next utterance. Errors are classified via ErrOracleTimeout and
// ErrOracleRefusal so the coordinator can apply its retry policy.
//
// Implementations must respect context cancellation: the coordinator applies
// the configured per-call timeout to the passed context.
type Agent interface {
	// Speaker identifies which dialogue side this agent plays.
	Speaker() Speaker
	// Produce generates the next utterance given the prior transcript.
	Produce(ctx context.Context, transcript []Turn) (string, error)
}

// Detector quantifies how saturated the conversation is. Score consumes the
// full transcript and returns a value in [0,1]; higher means more repetitive.
// Implementations must be deterministic given an identical transcript and
// similarity function. An error signals degraded mode: the coordinator keeps
// the previous score and continues.
type Detector interface {
	Score(transcript []Turn) (float64, error)
}

// Similarity scores how alike two texts are, in [0,1]. It is injected into
// the saturation detector and the artifact builder so deployments can choose
// between lexical overlap, embedding cosine or a deterministic test stub.
type Similarity func(a, b string) (float64, error)
