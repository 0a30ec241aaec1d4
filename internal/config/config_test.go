package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "clubwheel", cfg.DBName)
	assert.Equal(t, DefaultDBMaxConns, cfg.DBMaxConns)
	assert.Equal(t, DefaultReminderIntervalSecs, cfg.ReminderIntervalSecs)
	assert.Equal(t, DefaultLogDir, cfg.LogDir)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("PORT", "not-a-number")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestOperatorIDs(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("PRIMARY_OPERATOR_ID", "op-1")
	t.Setenv("SECONDARY_OPERATOR_IDS", "op-2, op-3,,op-4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"op-1", "op-2", "op-3", "op-4"}, cfg.OperatorIDs())
}

func TestOperatorIDsNoPrimary(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("PRIMARY_OPERATOR_ID", "")
	t.Setenv("SECONDARY_OPERATOR_IDS", "op-2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"op-2"}, cfg.OperatorIDs())
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "u",
		DBPassword: "p",
		DBHost:     "db",
		DBPort:     "5432",
		DBName:     "wheel",
	}
	assert.Equal(t, "postgres://u:p@db:5432/wheel?sslmode=disable", cfg.GetDBConnString())
}
