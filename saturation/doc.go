// Package saturation scores how much new information the conversation is
// still producing. The Detector tracks the Enduser side of the transcript
// (the source of requirement-relevant information), computes per-turn novelty
// against all prior Enduser turns via an injected similarity function, and
// smooths it with a moving average so a single repetitive turn cannot end the
// session prematurely. Scores are deterministic given an identical transcript
// and similarity function.
package saturation
