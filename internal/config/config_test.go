package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
app:
  port: "9090"
  timezone: Europe/Berlin
database:
  host: db
  dbname: leagues
auth:
  token_ttl: 2h
  admin_emails: [root@example.com]
leagues:
  join_policy: captain
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("AUTH_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("POSTGRES_PASSWORD", "pw")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 5*time.Second, cfg.App.ShutdownTimeout)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "pw", cfg.Database.Password)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"root@example.com"}, cfg.Auth.AdminEmails)
	assert.Equal(t, "captain", cfg.Leagues.JoinPolicy)
	assert.Equal(t, "Europe/Berlin", cfg.Location().String())
}

func TestLoadEnvOverridesPort(t *testing.T) {
	t.Setenv("AUTH_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("SERVER_PORT", "7000")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.App.Port)
}

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv("AUTH_SECRET", "short")

	_, err := Load(writeConfig(t, sampleConfig))
	assert.ErrorContains(t, err, "AUTH_SECRET")
}

func TestLoadRejectsUnknownJoinPolicy(t *testing.T) {
	t.Setenv("AUTH_SECRET", "0123456789abcdef0123456789abcdef")

	_, err := Load(writeConfig(t, `
database:
  host: db
  dbname: leagues
leagues:
  join_policy: anyone
`))
	assert.ErrorContains(t, err, "join policy")
}
