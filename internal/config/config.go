// Package config loads settings from defaults, an optional TOML file and
// VANACLONE_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/application"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/auth"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/store"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/suggest"
)

// FileName is the config file looked up inside the data directory
const FileName = "config.toml"

// Config holds all application configuration.
type Config struct {
	// DataDir holds the slot store, the log file and the config file
	DataDir string `toml:"data_dir" split_words:"true"`

	// Backend selects the slot store: bolt, sqlite or memory
	Backend string `toml:"backend" split_words:"true"`

	Log LogConfig `toml:"log" split_words:"true"`
	AI  AIConfig  `toml:"ai" split_words:"true"`
	Web WebConfig `toml:"web" split_words:"true"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `toml:"level" split_words:"true"`
	Format string `toml:"format" split_words:"true"`

	// File overrides the log file used by the terminal UI
	File string `toml:"file" split_words:"true"`
}

// AIConfig holds suggestion service configuration.
type AIConfig struct {
	// APIKey is resolved from VANACLONE_AI_API_KEY, GEMINI_API_KEY,
	// API_KEY and then the file, in that order
	APIKey    string        `toml:"api_key" ignored:"true"`
	Model     string        `toml:"model" split_words:"true"`
	BaseURL   string        `toml:"base_url" split_words:"true"`
	Timeout   time.Duration `toml:"timeout" split_words:"true"`
	RateLimit float64       `toml:"rate_limit" split_words:"true"`
	Retries   int           `toml:"retries" split_words:"true"`

	// KeySource names where APIKey came from; empty when there is none
	KeySource string `toml:"-" ignored:"true"`
}

// WebConfig holds local API server configuration.
type WebConfig struct {
	Host string `toml:"host" split_words:"true"`
	Port int    `toml:"port" split_words:"true"`
}

// Default returns default configuration.
func Default() *Config {
	dir, err := application.GetApplicationDirectory()
	if err != nil {
		dir = "." + application.AppName
	}

	return &Config{
		DataDir: dir,
		Backend: string(store.BackendBolt),
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		AI: AIConfig{
			Model:     suggest.DefaultModel,
			BaseURL:   suggest.DefaultBaseURL,
			Timeout:   suggest.DefaultTimeout,
			RateLimit: 1,
			Retries:   2,
		},
		Web: WebConfig{
			Host: "127.0.0.1",
			Port: 8790,
		},
	}
}

// Load builds the configuration. path names the TOML file; when empty the
// file is looked up in the data directory and may be absent.
func Load(path string) (*Config, error) {
	cfg := Default()

	if dir := os.Getenv(application.EnvPrefix + "_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}

	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.DataDir, FileName)
	}

	if err := cfg.decodeFile(path, explicit); err != nil {
		return nil, err
	}

	if err := envconfig.Process(application.EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// The browser build read its key from GEMINI_API_KEY or API_KEY.
	key, _ := auth.NewResolver("Gemini").
		WithEnvs(application.EnvPrefix+"_AI_API_KEY", "GEMINI_API_KEY", "API_KEY").
		WithConfig(cfg.AI.APIKey).
		Lookup()
	cfg.AI.APIKey = key.Key
	cfg.AI.KeySource = key.Name

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) decodeFile(path string, required bool) error {
	_, err := toml.DecodeFile(path, c)
	if err == nil {
		return nil
	}

	if errors.Is(err, fs.ErrNotExist) && !required {
		return nil
	}

	return fmt.Errorf("failed to read config %s: %w", path, err)
}

// Validate checks enumerations and ranges.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("data_dir cannot be empty")
	}

	if _, err := store.ParseBackend(c.Backend); err != nil {
		return err
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}

	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.Log.Format)
	}

	if c.Web.Port < 0 || c.Web.Port > 65535 {
		return fmt.Errorf("web port %d out of range", c.Web.Port)
	}

	if c.AI.RateLimit < 0 {
		return fmt.Errorf("ai rate_limit cannot be negative")
	}

	return nil
}

// StoreBackend returns the parsed backend.
func (c *Config) StoreBackend() store.Backend {
	b, err := store.ParseBackend(c.Backend)
	if err != nil {
		return store.BackendBolt
	}

	return b
}

// LogFile is the log file used when the terminal owns stderr.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}

	return filepath.Join(c.DataDir, application.AppName+".log")
}

// WebAddr is the listen address of the local API.
func (c *Config) WebAddr() string {
	return fmt.Sprintf("%s:%d", c.Web.Host, c.Web.Port)
}

// SuggestOptions converts the AI section for the suggestion provider.
func (c *Config) SuggestOptions(logger *slog.Logger) suggest.Options {
	return suggest.Options{
		APIKey:    c.AI.APIKey,
		Model:     c.AI.Model,
		BaseURL:   c.AI.BaseURL,
		Timeout:   c.AI.Timeout,
		RateLimit: c.AI.RateLimit,
		Retries:   c.AI.Retries,
		Logger:    logger,
	}
}

// ParseLevel maps a level name to a slog level. Empty means warn.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}

	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Write encodes the configuration as TOML. The API key is never written.
func (c *Config) Write(w io.Writer) error {
	out := *c
	if out.AI.APIKey != "" {
		out.AI.APIKey = ""
	}

	return toml.NewEncoder(w).Encode(out)
}
