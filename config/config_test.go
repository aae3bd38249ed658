package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
model_dir: /var/lib/pitwall/models
fallback: true
policy:
  window_k: 2.0
mqtt:
  enabled: true
  broker: tcp://broker:1883
  qos: 1
metrics:
  prometheus_enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/pitwall/models", cfg.ModelDir)
	assert.True(t, cfg.Fallback)
	assert.Equal(t, 2.0, cfg.Policy.WindowK)
	// Unset policy fields still pick up defaults.
	assert.Equal(t, 4.0, cfg.Policy.ConfidenceTau)
	assert.Equal(t, "tcp://broker:1883", cfg.MQTT.Broker)
	assert.Equal(t, byte(1), cfg.MQTT.QoS)
	assert.Equal(t, "pitwall/situation", cfg.MQTT.RequestTopic)
	assert.True(t, cfg.Metrics.PrometheusEnabled)
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"model_dir": "artifacts", "fallback": true}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "artifacts", cfg.ModelDir)
	assert.True(t, cfg.Fallback)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "config.yaml", `model_dir: from_file`)
	t.Setenv("PITWALL_MODEL_DIR", "from_env")
	t.Setenv("PITWALL_POLICY__WINDOW_K", "2.5")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.ModelDir)
	assert.Equal(t, 2.5, cfg.Policy.WindowK)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Run("unsupported extension", func(t *testing.T) {
		path := writeConfig(t, "config.toml", "model_dir = 'x'")
		_, err := Load(path)
		assert.Error(t, err)
	})
	t.Run("bad policy", func(t *testing.T) {
		path := writeConfig(t, "config.yaml", "policy:\n  window_k: -1\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "policy")
	})
	t.Run("mqtt enabled without broker", func(t *testing.T) {
		path := writeConfig(t, "config.yaml", "mqtt:\n  enabled: true\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broker")
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "models", cfg.ModelDir)
	assert.False(t, cfg.MQTT.Enabled)
	require.NoError(t, cfg.Validate())
}
