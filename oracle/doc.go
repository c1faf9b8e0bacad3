// Package oracle defines the reasoning oracle capability: an opaque
// natural-language generation boundary the agents delegate to. The core
// treats the oracle as a collaborator that may time out or refuse; provider
// adapters live in the subpackages (anthropic, openai) and a deterministic
// MockOracle supports tests and examples.
package oracle
