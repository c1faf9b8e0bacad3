package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 0.8, cfg.Engine.SaturationThreshold)
	assert.Equal(t, 40, cfg.Engine.MaxTurns)
	assert.Equal(t, 3, cfg.Engine.AgentRetryLimit)
	assert.Equal(t, 60*time.Second, cfg.Engine.AgentTimeout)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.NatsURL)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ELICIT_SATURATION_THRESHOLD", "0.9")
	t.Setenv("ELICIT_MAX_TURNS", "20")
	t.Setenv("ELICIT_AGENT_TIMEOUT", "30s")
	t.Setenv("ELICIT_S3_BUCKET", "elicit-artifacts")

	cfg := Load()
	assert.Equal(t, 0.9, cfg.Engine.SaturationThreshold)
	assert.Equal(t, 20, cfg.Engine.MaxTurns)
	assert.Equal(t, 30*time.Second, cfg.Engine.AgentTimeout)
	assert.Equal(t, "elicit-artifacts", cfg.S3Bucket)
}

func TestLoad_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv("ELICIT_MAX_TURNS", "not a number")
	t.Setenv("ELICIT_SATURATION_THRESHOLD", "1.7")

	cfg := Load()
	assert.Equal(t, 40, cfg.Engine.MaxTurns)
	// Out-of-range values are normalized back to the default.
	assert.Equal(t, 0.8, cfg.Engine.SaturationThreshold)
}

func TestLoadFile_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elicit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"max_turns: 16\nnats_url: nats://broker:4222\nartifact_dir: /var/lib/elicit\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Engine.MaxTurns)
	assert.Equal(t, "nats://broker:4222", cfg.NatsURL)
	assert.Equal(t, "/var/lib/elicit", cfg.ArtifactDir)
	// Untouched fields keep their defaults.
	assert.Equal(t, 0.8, cfg.Engine.SaturationThreshold)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_turns: [oops"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}
