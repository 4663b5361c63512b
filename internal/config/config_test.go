package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "users", cfg.Store.Collection)
	assert.Equal(t, "user-sync-group", cfg.Kafka.GroupID)
	assert.Equal(t, 40, cfg.App.RateLimitBurst)
}

func TestLoadConfig_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
app:
  port: "9090"
  cors_allowed_origins:
    - http://localhost:3000
store:
  driver: firestore
  collection: people
firestore:
  project_id: golf-picks
kafka:
  brokers:
    - localhost:9092
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.CORSAllowedOrigins)
	assert.Equal(t, DriverRedis, cfg.Store.Driver, "env wins over yaml")
	assert.Equal(t, "people", cfg.Store.Collection)
	assert.Equal(t, "golf-picks", cfg.Firestore.ProjectID)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList([]string{"a, b", " ", "c"}))
	assert.Empty(t, splitList(nil))
}
