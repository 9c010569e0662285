package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
auth:
  jwt_secret: test-secret
database:
  host: localhost
  user: safarpk
  name: safarpk
`))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "safarpk.bookings", cfg.Kafka.BookingTopic)
	assert.Equal(t, "safarpk.notifications", cfg.Kafka.NotificationsTopic)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL())
	assert.Equal(t, time.Hour, cfg.Auth.RecoveryTTL())
	assert.Equal(t, 5*time.Minute, cfg.Cache.DestinationsTTL())
	assert.Equal(t, 30*time.Second, cfg.Cache.StatsTTL())
	assert.Equal(t, "host=localhost port=5432 user=safarpk password= dbname=safarpk sslmode=disable", cfg.Database.DSN())
}

func TestParse_RequiresSecret(t *testing.T) {
	_, err := Parse([]byte(`http: {address: ":9000"}`))
	assert.Error(t, err)
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("SAFARPK_JWT_SECRET", "from-env")
	t.Setenv("SAFARPK_DB_PASSWORD", "pw")

	cfg, err := Parse([]byte(`auth: {jwt_secret: from-file}`))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "pw", cfg.Database.Password)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
  allowed_origins: ["http://localhost:5173"]
kafka:
  brokers: ["localhost:9092"]
auth:
  jwt_secret: s
  reset_url: http://localhost:5173/reset-password
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Address)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "http://localhost:5173/reset-password", cfg.Auth.ResetURL)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
