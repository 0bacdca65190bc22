package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// BarkConfig holds Bark notification settings.
type BarkConfig struct {
	URL     string
	Enabled bool
}

// Config holds all runtime configuration for the daemon.
type Config struct {
	Addr      string
	Mode      string // http, mcp, or both
	LogLevel  string
	AuthToken string

	// Timezone is the fallback IANA zone for shows that do not carry one.
	// Legacy schedule data was written against US Eastern.
	Timezone string

	// ShowsFile points at the YAML file supplying the show lineup. Shows
	// are configuration, not state: this process never writes them.
	ShowsFile string

	ShutdownGrace time.Duration
	Bark          BarkConfig
}

const (
	defaultAddr          = "0.0.0.0:7070"
	defaultMode          = "http"
	defaultLogLevel      = "info"
	defaultTimezone      = "America/New_York"
	defaultShutdownGrace = 5 * time.Second
)

// getEnvString returns the environment variable value or default
func getEnvString(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvBool returns the environment variable as bool or default
func getEnvBool(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		lower := strings.ToLower(val)
		return lower == "true" || lower == "1" || lower == "yes"
	}
	return defaultVal
}

// getEnvDuration returns the environment variable as duration or default
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// Parse parses command line flags and environment variables into Config.
// Priority: CLI flags > Environment variables > .env file > defaults
func Parse() (*Config, error) {
	// Load .env file if exists (silent fail if not present).
	envFiles := []string{".env"}
	if configDir, err := os.UserConfigDir(); err == nil {
		envFiles = append(envFiles, filepath.Join(configDir, "aircheck", ".env"))
	}
	_ = godotenv.Load(envFiles...)

	cfg := &Config{
		Addr:      getEnvString("AIRCHECK_ADDR", defaultAddr),
		Mode:      getEnvString("AIRCHECK_MODE", defaultMode),
		LogLevel:  getEnvString("AIRCHECK_LOG_LEVEL", defaultLogLevel),
		AuthToken: getEnvString("AIRCHECK_AUTH_TOKEN", ""),
		Timezone:  getEnvString("AIRCHECK_TZ", defaultTimezone),
		ShowsFile: getEnvString("AIRCHECK_SHOWS", ""),
		Bark: BarkConfig{
			URL:     getEnvString("AIRCHECK_BARK_URL", ""),
			Enabled: getEnvBool("AIRCHECK_BARK_ENABLED", false),
		},
		ShutdownGrace: getEnvDuration("AIRCHECK_SHUTDOWN_GRACE", defaultShutdownGrace),
	}

	var addr, mode, logLevel, timezone, showsFile string
	var shutdownGrace time.Duration

	flag.StringVar(&addr, "addr", "", "HTTP listen address (overrides env)")
	flag.StringVar(&mode, "mode", "", "Run mode: http, mcp, or both")
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&timezone, "tz", "", "Fallback IANA timezone for schedule resolution")
	flag.StringVar(&showsFile, "shows", "", "Path to the YAML shows file")
	flag.DurationVar(&shutdownGrace, "shutdown-grace", 0, "Grace period when shutting down")

	flag.Parse()

	if addr != "" {
		cfg.Addr = addr
	}
	if mode != "" {
		cfg.Mode = mode
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if timezone != "" {
		cfg.Timezone = timezone
	}
	if showsFile != "" {
		cfg.ShowsFile = showsFile
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "shutdown-grace" {
			cfg.ShutdownGrace = shutdownGrace
		}
	})

	switch cfg.Mode {
	case "http", "mcp", "both":
	default:
		return nil, fmt.Errorf("invalid mode %q (expected http, mcp, or both)", cfg.Mode)
	}

	if cfg.ShowsFile == "" {
		path, err := defaultShowsFile()
		if err != nil {
			return nil, fmt.Errorf("resolve default shows file: %w", err)
		}
		cfg.ShowsFile = path
	}

	return cfg, nil
}

func defaultShowsFile() (string, error) {
	baseDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(baseDir, "aircheck")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "shows.yaml"), nil
}
