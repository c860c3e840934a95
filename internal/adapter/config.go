package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmcdole/loofah/internal/domain"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Sync    SyncConfig    `mapstructure:"sync"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds backend connection settings
type ServerConfig struct {
	URL     string        `mapstructure:"url"`     // Backend origin; "/api" is appended
	Timeout time.Duration `mapstructure:"timeout"` // Per-request timeout
}

// SyncConfig holds sync monitor timing
type SyncConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	Deadline     time.Duration `mapstructure:"deadline"`
}

// UIConfig holds dashboard preferences
type UIConfig struct {
	PageSize        int      `mapstructure:"page_size"`
	DefaultCategory string   `mapstructure:"default_category"`
	Browser         string   `mapstructure:"browser"`      // empty for system default
	BrowserArgs     []string `mapstructure:"browser_args"` // extra args before the URL
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:     "http://localhost:5000",
			Timeout: 30 * time.Second,
		},
		Sync: SyncConfig{
			PollInterval: 2 * time.Second,
			Deadline:     5 * time.Minute,
		},
		UI: UIConfig{
			PageSize:        20,
			DefaultCategory: "all",
			BrowserArgs:     []string{},
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "loofah", "loofah.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "loofah", "loofah.log")
	}
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "loofah")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "loofah")
	}
}

// LoadConfig loads configuration from file and environment. An empty path
// searches the default config directory and the working directory.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigDir())
		v.AddConfigPath(".")
	}

	// Environment variable overrides: LOOFAH_SERVER_URL, LOOFAH_SYNC_DEADLINE, ...
	v.SetEnvPrefix("LOOFAH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(path == "" && errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// are absent from the config file.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.url", cfg.Server.URL)
	v.SetDefault("server.timeout", cfg.Server.Timeout)
	v.SetDefault("sync.poll_interval", cfg.Sync.PollInterval)
	v.SetDefault("sync.deadline", cfg.Sync.Deadline)
	v.SetDefault("ui.page_size", cfg.UI.PageSize)
	v.SetDefault("ui.default_category", cfg.UI.DefaultCategory)
	v.SetDefault("ui.browser", cfg.UI.Browser)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// Validate rejects settings the client cannot run with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.URL) == "" {
		return fmt.Errorf("server URL is required")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Sync.PollInterval <= 0 {
		return fmt.Errorf("sync poll interval must be positive, got %s", c.Sync.PollInterval)
	}
	if c.Sync.Deadline < c.Sync.PollInterval {
		return fmt.Errorf("sync deadline (%s) must not be shorter than the poll interval (%s)",
			c.Sync.Deadline, c.Sync.PollInterval)
	}
	if _, err := domain.ParseCategory(c.UI.DefaultCategory); err != nil {
		return fmt.Errorf("ui.default_category: %w", err)
	}
	if c.UI.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.UI.PageSize)
	}
	return nil
}
