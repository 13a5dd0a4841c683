package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Storage driver names accepted in the config file.
const (
	StorageDriverJSON   = "json"
	StorageDriverSQLite = "sqlite"
)

// StorageConfig selects and locates the persistence medium.
type StorageConfig struct {
	// Driver is "json" (one document per slot under DataDir) or
	// "sqlite" (a single database file under DataDir).
	Driver string `mapstructure:"driver" yaml:"driver"`

	// DataDir is where slot files, the sqlite database, and the log
	// file live. Empty means ~/.local/share/techtrack.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
}

// GitHubConfig holds settings for the GitHub repository search source.
type GitHubConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	BaseURL  string `mapstructure:"base_url" yaml:"base_url"`
	PageSize int    `mapstructure:"page_size" yaml:"page_size"`
}

// QuotesConfig holds settings for the programming-quote source.
type QuotesConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	GitHub  GitHubConfig  `mapstructure:"github" yaml:"github"`
	Quotes  QuotesConfig  `mapstructure:"quotes" yaml:"quotes"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/techtrack/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "techtrack", "config.yaml")
}

// DefaultDataDir returns the default data directory,
// ~/.local/share/techtrack.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "techtrack")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{
			Driver:  StorageDriverJSON,
			DataDir: DefaultDataDir(),
		},
		GitHub: GitHubConfig{
			Enabled:  true,
			BaseURL:  "https://api.github.com",
			PageSize: 10,
		},
		Quotes: QuotesConfig{
			Enabled: true,
			BaseURL: "https://programming-quotes-api.herokuapp.com",
		},
		Display: DisplayConfig{
			Theme: "default",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("storage.driver", StorageDriverJSON)
	v.SetDefault("storage.data_dir", DefaultDataDir())
	v.SetDefault("github.enabled", true)
	v.SetDefault("github.base_url", "https://api.github.com")
	v.SetDefault("github.page_size", 10)
	v.SetDefault("quotes.enabled", true)
	v.SetDefault("quotes.base_url", "https://programming-quotes-api.herokuapp.com")
	v.SetDefault("display.theme", "default")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Storage.Driver != StorageDriverJSON && cfg.Storage.Driver != StorageDriverSQLite {
		return nil, fmt.Errorf(
			"config %s: unknown storage driver %q (want %q or %q)",
			path, cfg.Storage.Driver, StorageDriverJSON, StorageDriverSQLite,
		)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("github", cfg.GitHub)
	v.Set("quotes", cfg.Quotes)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
