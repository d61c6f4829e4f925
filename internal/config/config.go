package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	cerr "github.com/saeidalz13/battleship-tracker/internal/error"
	mb "github.com/saeidalz13/battleship-tracker/models/battleship"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

const (
	defaultPort          = "8000"
	defaultGridRows      = 10
	defaultGridCols      = 10
	defaultNumberOfShips = 5
	defaultLogLevel      = "info"
)

type Config struct {
	Stage                  string
	Port                   string
	DatabaseUrl            string
	MatchDefaults          mb.Config
	AllowedOrigins         []string
	SessionCleanupInterval time.Duration
	SessionGracePeriod     time.Duration
	LogLevel               log.Level
}

// Load reads the environment. Outside prod the given env files (".env"
// when none) are loaded first; a missing file is not an error.
func Load(envFiles ...string) (Config, error) {
	if os.Getenv("STAGE") != StageProd {
		if len(envFiles) == 0 {
			envFiles = []string{".env"}
		}
		if err := godotenv.Load(envFiles...); err != nil {
			log.Warn("config [Load]", "msg", "env file not loaded", "err", err)
		}
	}

	var cfg Config

	stage, ok := os.LookupEnv("STAGE")
	if !ok {
		return cfg, cerr.ErrKeyNotExists("STAGE")
	}
	if stage != StageDev && stage != StageProd {
		return cfg, cerr.ErrInvalidStage(stage)
	}
	cfg.Stage = stage

	cfg.Port = getEnvOr("PORT", defaultPort)
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return cfg, cerr.ErrInvalidEnvValue("PORT", cfg.Port)
	}
	cfg.DatabaseUrl = os.Getenv("DATABASE_URL")

	var err error
	if cfg.MatchDefaults.Rows, err = getEnvInt("GRID_ROWS", defaultGridRows); err != nil {
		return cfg, err
	}
	if cfg.MatchDefaults.Cols, err = getEnvInt("GRID_COLS", defaultGridCols); err != nil {
		return cfg, err
	}
	if cfg.MatchDefaults.NumberOfShips, err = getEnvInt("NUMBER_OF_SHIPS", defaultNumberOfShips); err != nil {
		return cfg, err
	}
	if err := cfg.MatchDefaults.Validate(); err != nil {
		return cfg, err
	}

	cfg.AllowedOrigins = splitList(os.Getenv("ALLOWED_ORIGINS"))

	if cfg.SessionCleanupInterval, err = getEnvDuration("SESSION_CLEANUP_INTERVAL", time.Minute*20); err != nil {
		return cfg, err
	}
	if cfg.SessionGracePeriod, err = getEnvDuration("SESSION_GRACE_PERIOD", time.Minute*2); err != nil {
		return cfg, err
	}

	if cfg.LogLevel, err = parseLogLevel(getEnvOr("LOG_LEVEL", defaultLogLevel)); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// parseLogLevel rejects names log.ParseLevel would silently turn into info.
func parseLogLevel(level string) (log.Level, error) {
	lvl := log.ParseLevel(level)
	if lvl.String() != strings.ToLower(level) {
		return log.InfoLevel, cerr.ErrInvalidEnvValue("LOG_LEVEL", level)
	}
	return lvl, nil
}

func getEnvOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, cerr.ErrInvalidEnvValue(key, v)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, cerr.ErrInvalidEnvValue(key, v)
	}
	return d, nil
}

func splitList(v string) []string {
	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
