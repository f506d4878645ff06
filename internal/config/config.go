package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/roster/internal/people"
)

// Config captures everything roster reads at startup.
type Config struct {
	Endpoint       string
	Limit          int
	LoadingDelay   time.Duration
	FilterDebounce time.Duration
	RequestTimeout time.Duration
	LogFile        string
}

const (
	defaultConfigPath     = "~/.config/roster/config.toml"
	defaultLogFile        = "~/.local/state/roster/roster.log"
	defaultLoadingDelay   = time.Second
	defaultFilterDebounce = 500 * time.Millisecond
)

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Endpoint:       people.DefaultEndpoint,
		LoadingDelay:   defaultLoadingDelay,
		FilterDebounce: defaultFilterDebounce,
		LogFile:        mustExpand(defaultLogFile),
	}
}

type fileConfig struct {
	Endpoint       string `toml:"endpoint"`
	Limit          int    `toml:"limit"`
	LoadingDelay   string `toml:"loading_delay"`
	FilterDebounce string `toml:"filter_debounce"`
	RequestTimeout string `toml:"request_timeout"`
	LogFile        string `toml:"log_file"`
}

type envConfig struct {
	Endpoint       *string        `env:"ROSTER_ENDPOINT"`
	Limit          *int           `env:"ROSTER_LIMIT"`
	LoadingDelay   *time.Duration `env:"ROSTER_LOADING_DELAY"`
	FilterDebounce *time.Duration `env:"ROSTER_FILTER_DEBOUNCE"`
	RequestTimeout *time.Duration `env:"ROSTER_REQUEST_TIMEOUT"`
	LogFile        *string        `env:"ROSTER_LOG_FILE"`
}

// Load reads the config file, falling back to defaults when it is missing, then
// applies ROSTER_* environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Defaults()
	if err := applyFile(&cfg, resolved); err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the loader cannot use.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return fmt.Errorf("endpoint is empty")
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", c.Limit)
	}
	for name, d := range map[string]time.Duration{
		"loading_delay":   c.LoadingDelay,
		"filter_debounce": c.FilterDebounce,
		"request_timeout": c.RequestTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative, got %s", name, d)
		}
	}
	return nil
}

func applyFile(cfg *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if endpoint := strings.TrimSpace(raw.Endpoint); endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if raw.Limit != 0 {
		cfg.Limit = raw.Limit
	}
	if err := parseDurationField("loading_delay", raw.LoadingDelay, &cfg.LoadingDelay); err != nil {
		return err
	}
	if err := parseDurationField("filter_debounce", raw.FilterDebounce, &cfg.FilterDebounce); err != nil {
		return err
	}
	if err := parseDurationField("request_timeout", raw.RequestTimeout, &cfg.RequestTimeout); err != nil {
		return err
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	return nil
}

func parseDurationField(name, value string, dest *time.Duration) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return fmt.Errorf("parse config: %s: %w", name, err)
	}
	*dest = d
	return nil
}

func applyEnv(cfg *Config) error {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if raw.Endpoint != nil && strings.TrimSpace(*raw.Endpoint) != "" {
		cfg.Endpoint = strings.TrimSpace(*raw.Endpoint)
	}
	if raw.Limit != nil {
		cfg.Limit = *raw.Limit
	}
	if raw.LoadingDelay != nil {
		cfg.LoadingDelay = *raw.LoadingDelay
	}
	if raw.FilterDebounce != nil {
		cfg.FilterDebounce = *raw.FilterDebounce
	}
	if raw.RequestTimeout != nil {
		cfg.RequestTimeout = *raw.RequestTimeout
	}
	if raw.LogFile != nil && strings.TrimSpace(*raw.LogFile) != "" {
		cfg.LogFile = mustExpand(*raw.LogFile)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

// ExpandPath resolves ~ and relative paths to an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
