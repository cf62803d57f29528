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
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "data/zone_owners.xlsx", cfg.RegistryPath)
	assert.Equal(t, "config/zones.yaml", cfg.ZonesPath)
	assert.False(t, cfg.TelegramEnabled)
	assert.Equal(t, 10*time.Second, cfg.TelegramTimeout)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.False(t, cfg.ExportEnabled)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("REGISTRY_PATH", "/var/lib/pulseforge/owners.xlsx")
	t.Setenv("ZONES_CONFIG", "/etc/pulseforge/zones.yaml")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-4001")
	t.Setenv("TELEGRAM_TIMEOUT", "5s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_EXPORT_TOPIC", "alarm-records")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/var/lib/pulseforge/owners.xlsx", cfg.RegistryPath)
	assert.True(t, cfg.TelegramEnabled)
	assert.Equal(t, "123:abc", cfg.TelegramToken)
	assert.Equal(t, "-4001", cfg.TelegramChatID)
	assert.Equal(t, 5*time.Second, cfg.TelegramTimeout)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.ExportEnabled)
	assert.Equal(t, "alarm-records", cfg.ExportTopic)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("bad shutdown timeout", func(t *testing.T) {
		t.Setenv("SHUTDOWN_TIMEOUT", "soon")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("telegram enabled without token", func(t *testing.T) {
		t.Setenv("TELEGRAM_ENABLED", "true")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("telegram token without chat id", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("export topic without brokers", func(t *testing.T) {
		t.Setenv("KAFKA_EXPORT_TOPIC", "alarm-records")
		t.Setenv("KAFKA_BROKERS", " ")
		_, err := Load()
		require.Error(t, err)
	})
}

func TestLoadZones_MissingFileUsesDefaults(t *testing.T) {
	z, found, err := LoadZones(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, DefaultZones(), z)
	assert.Equal(t, "Sylhet", z.PriorityZones[0])
	assert.Equal(t, 10, z.HighThreshold)
}

func TestLoadZones_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.yaml")
	body := `
priority_zones: [Khulna, Barisal]
high_threshold: 5
message:
  header: "Alert!"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	z, found, err := LoadZones(path)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"Khulna", "Barisal"}, z.PriorityZones)
	assert.Equal(t, 5, z.HighThreshold)
	assert.Equal(t, "Alert!", z.Message.Header)
	// Omitted closing falls back to the default.
	assert.Equal(t, ", please take care.", z.Message.Closing)
}

func TestLoadZones_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.yaml")
	require.NoError(t, os.WriteFile(path, []byte("priority_zones: ["), 0o644))

	_, _, err := LoadZones(path)

	require.Error(t, err)
}
