package core

import "time"

// Defaults applied by Config.Normalize for unset fields.
const (
	DefaultSaturationThreshold = 0.8
	DefaultMaxTurns            = 40
	DefaultAgentRetryLimit     = 3
	DefaultAgentTimeout        = 60 * time.Second
	DefaultNoveltyWindow       = 3
	DefaultDedupThreshold      = 0.8
	DefaultStorageRetryLimit   = 3
	DefaultBusFlushTimeout     = 2 * time.Second
)

// Config carries the engine tunables recognized by the coordinator, detector
// and builder. The zero value is usable: Normalize fills in defaults.
type Config struct {
	// SaturationThreshold ends the elicitation once the saturation score
	// exceeds it. Range (0,1].
	SaturationThreshold float64
	// MaxTurns is a hard ceiling on total turns; reaching it forces the
	// Saturated transition even if the threshold is never crossed.
	MaxTurns int
	// AgentRetryLimit bounds oracle attempts per turn (including the first).
	AgentRetryLimit int
	// AgentTimeout is the per-invocation timeout for a single agent call.
	AgentTimeout time.Duration
	// NoveltyWindow is the moving-average window of the saturation detector.
	NoveltyWindow int
	// DedupThreshold is the similarity above which the artifact builder
	// merges near-identical requirement candidates.
	DedupThreshold float64
	// StorageRetryLimit bounds artifact persistence attempts at termination.
	StorageRetryLimit int
	// BusFlushTimeout bounds how long a fire-and-forget turn publish may
	// take before it is abandoned to the async retry path.
	BusFlushTimeout time.Duration
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() Config {
	return Config{}.Normalize()
}

// Normalize returns a copy with zero or out-of-range fields replaced by
// defaults.
func (c Config) Normalize() Config {
	if c.SaturationThreshold <= 0 || c.SaturationThreshold > 1 {
		c.SaturationThreshold = DefaultSaturationThreshold
	}
	if c.MaxTurns <= 0 {
		c.MaxTurns = DefaultMaxTurns
	}
	if c.AgentRetryLimit <= 0 {
		c.AgentRetryLimit = DefaultAgentRetryLimit
	}
	if c.AgentTimeout <= 0 {
		c.AgentTimeout = DefaultAgentTimeout
	}
	if c.NoveltyWindow <= 0 {
		c.NoveltyWindow = DefaultNoveltyWindow
	}
	if c.DedupThreshold <= 0 || c.DedupThreshold > 1 {
		c.DedupThreshold = DefaultDedupThreshold
	}
	if c.StorageRetryLimit <= 0 {
		c.StorageRetryLimit = DefaultStorageRetryLimit
	}
	if c.BusFlushTimeout <= 0 {
		c.BusFlushTimeout = DefaultBusFlushTimeout
	}
	return c
}
