package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/saeidalz13/battleship-tracker/internal/config"
	cerr "github.com/saeidalz13/battleship-tracker/internal/error"
)

var configKeys = []string{
	"STAGE", "PORT", "DATABASE_URL", "GRID_ROWS", "GRID_COLS", "NUMBER_OF_SHIPS",
	"ALLOWED_ORIGINS", "SESSION_CLEANUP_INTERVAL", "SESSION_GRACE_PERIOD", "LOG_LEVEL",
}

// clearEnv blanks every key so the process environment does not leak in.
// t.Setenv restores the original values after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("STAGE", config.StageDev)

	cfg, err := config.Load(missingEnvFile(t))
	require.NoError(t, err)
	require.Equal(t, config.StageDev, cfg.Stage)
	require.Equal(t, "8000", cfg.Port)
	require.Empty(t, cfg.DatabaseUrl)
	require.Equal(t, 10, cfg.MatchDefaults.Rows)
	require.Equal(t, 10, cfg.MatchDefaults.Cols)
	require.Equal(t, 5, cfg.MatchDefaults.NumberOfShips)
	require.Empty(t, cfg.AllowedOrigins)
	require.Equal(t, time.Minute*20, cfg.SessionCleanupInterval)
	require.Equal(t, time.Minute*2, cfg.SessionGracePeriod)
	require.Equal(t, log.InfoLevel, cfg.LogLevel)
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), "test.env")
	content := "STAGE=dev\nPORT=9090\nGRID_ROWS=6\nGRID_COLS=8\nNUMBER_OF_SHIPS=3\n" +
		"ALLOWED_ORIGINS=https://a.example, https://b.example\nSESSION_GRACE_PERIOD=30s\nLOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := config.Load(envFile)
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, 6, cfg.MatchDefaults.Rows)
	require.Equal(t, 8, cfg.MatchDefaults.Cols)
	require.Equal(t, 3, cfg.MatchDefaults.NumberOfShips)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	require.Equal(t, time.Second*30, cfg.SessionGracePeriod)
	require.Equal(t, log.DebugLevel, cfg.LogLevel)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "invalid stage", env: map[string]string{"STAGE": "staging"}},
		{name: "invalid port", env: map[string]string{"STAGE": "dev", "PORT": "eighty"}},
		{name: "invalid rows", env: map[string]string{"STAGE": "dev", "GRID_ROWS": "ten"}},
		{name: "fleet does not fit", env: map[string]string{"STAGE": "dev", "GRID_ROWS": "2", "GRID_COLS": "2", "NUMBER_OF_SHIPS": "3"}},
		{name: "fleet overflows cell count", env: map[string]string{"STAGE": "dev", "GRID_ROWS": "1", "GRID_COLS": "1", "NUMBER_OF_SHIPS": "3037000500"}},
		{name: "invalid duration", env: map[string]string{"STAGE": "dev", "SESSION_CLEANUP_INTERVAL": "-1m"}},
		{name: "invalid log level", env: map[string]string{"STAGE": "dev", "LOG_LEVEL": "chatty"}},
		{name: "print is not a log level", env: map[string]string{"STAGE": "dev", "LOG_LEVEL": "print"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range test.env {
				t.Setenv(key, value)
			}

			_, err := config.Load(missingEnvFile(t))
			require.ErrorIs(t, err, cerr.ErrInvalidConfig)
		})
	}
}

func TestLoadLogLevelIgnoresCase(t *testing.T) {
	for level, want := range map[string]log.Level{"WARN": log.WarnLevel, "Error": log.ErrorLevel, "fatal": log.FatalLevel} {
		clearEnv(t)
		t.Setenv("STAGE", "dev")
		t.Setenv("LOG_LEVEL", level)

		cfg, err := config.Load(missingEnvFile(t))
		require.NoError(t, err)
		require.Equal(t, want, cfg.LogLevel)
	}
}

func TestLoadMissingStage(t *testing.T) {
	clearEnv(t)

	_, err := config.Load(missingEnvFile(t))
	require.Error(t, err)
}
