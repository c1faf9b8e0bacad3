// Package config loads deployment settings for the elicitation engine from
// the environment, with an optional YAML overlay for file-based setups. All
// variables use the ELICIT_ prefix; unset values fall back to the engine
// defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/elicitmesh/core"
)

// Config bundles engine tunables with the endpoint settings of the external
// services a deployment wires in.
type Config struct {
	Engine core.Config `yaml:"-"`

	// Engine tunables, mirrored for YAML decoding.
	SaturationThreshold float64       `yaml:"saturation_threshold"`
	MaxTurns            int           `yaml:"max_turns"`
	AgentRetryLimit     int           `yaml:"agent_retry_limit"`
	AgentTimeout        time.Duration `yaml:"agent_timeout"`
	NoveltyWindow       int           `yaml:"novelty_window"`
	DedupThreshold      float64       `yaml:"dedup_threshold"`
	StorageRetryLimit   int           `yaml:"storage_retry_limit"`
	BusFlushTimeout     time.Duration `yaml:"bus_flush_timeout"`

	// Oracle providers.
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	AnthropicModel  string `yaml:"anthropic_model"`
	OpenAIAPIKey    string `yaml:"openai_api_key"`
	OpenAIModel     string `yaml:"openai_model"`

	// Message bus.
	NatsURL   string `yaml:"nats_url"`
	NatsToken string `yaml:"nats_token"`

	// Artifact storage. ArtifactDir selects the filesystem store, S3Bucket
	// the S3 store; both empty means in-memory.
	ArtifactDir string `yaml:"artifact_dir"`
	S3Bucket    string `yaml:"s3_bucket"`
	S3Prefix    string `yaml:"s3_prefix"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Load reads the configuration from the environment.
func Load() Config {
	cfg := Config{
		SaturationThreshold: envFloat("ELICIT_SATURATION_THRESHOLD", core.DefaultSaturationThreshold),
		MaxTurns:            envInt("ELICIT_MAX_TURNS", core.DefaultMaxTurns),
		AgentRetryLimit:     envInt("ELICIT_AGENT_RETRY_LIMIT", core.DefaultAgentRetryLimit),
		AgentTimeout:        envDuration("ELICIT_AGENT_TIMEOUT", core.DefaultAgentTimeout),
		NoveltyWindow:       envInt("ELICIT_NOVELTY_WINDOW", core.DefaultNoveltyWindow),
		DedupThreshold:      envFloat("ELICIT_DEDUP_THRESHOLD", core.DefaultDedupThreshold),
		StorageRetryLimit:   envInt("ELICIT_STORAGE_RETRY_LIMIT", core.DefaultStorageRetryLimit),
		BusFlushTimeout:     envDuration("ELICIT_BUS_FLUSH_TIMEOUT", core.DefaultBusFlushTimeout),

		AnthropicAPIKey: envStr("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  envStr("ELICIT_ANTHROPIC_MODEL", ""),
		OpenAIAPIKey:    envStr("OPENAI_API_KEY", ""),
		OpenAIModel:     envStr("ELICIT_OPENAI_MODEL", ""),

		NatsURL:   envStr("NATS_URL", "nats://127.0.0.1:4222"),
		NatsToken: envStr("NATS_TOKEN", ""),

		ArtifactDir: envStr("ELICIT_ARTIFACT_DIR", ""),
		S3Bucket:    envStr("ELICIT_S3_BUCKET", ""),
		S3Prefix:    envStr("ELICIT_S3_PREFIX", ""),

		LogLevel:  envStr("LOG_LEVEL", "info"),
		LogFormat: envStr("LOG_FORMAT", "json"),
	}
	cfg.Engine = cfg.engineConfig()
	return cfg
}

// LoadFile reads the environment configuration, then overlays values from
// the YAML file at path. File values win over environment values.
func LoadFile(path string) (Config, error) {
	cfg := Load()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Engine = cfg.engineConfig()
	return cfg, nil
}

func (c Config) engineConfig() core.Config {
	return core.Config{
		SaturationThreshold: c.SaturationThreshold,
		MaxTurns:            c.MaxTurns,
		AgentRetryLimit:     c.AgentRetryLimit,
		AgentTimeout:        c.AgentTimeout,
		NoveltyWindow:       c.NoveltyWindow,
		DedupThreshold:      c.DedupThreshold,
		StorageRetryLimit:   c.StorageRetryLimit,
		BusFlushTimeout:     c.BusFlushTimeout,
	}.Normalize()
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
