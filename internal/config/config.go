package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Source       SourceConfig       `mapstructure:"source"`
	Profile      ProfileConfig      `mapstructure:"profile"`
	Connectivity ConnectivityConfig `mapstructure:"connectivity"`
	Controller   ControllerConfig   `mapstructure:"controller"`
	Search       SearchConfig       `mapstructure:"search"`
	UI           UIConfig           `mapstructure:"ui"`
	Server       ServerConfig       `mapstructure:"server"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// SourceConfig holds the restaurant listing endpoint configuration
type SourceConfig struct {
	URL          string        `mapstructure:"url"`
	Lat          float64       `mapstructure:"lat"`
	Lng          float64       `mapstructure:"lng"`
	Sections     []int         `mapstructure:"sections"` // Card indices holding the two restaurant grids
	ImageBaseURL string        `mapstructure:"image_base_url"`
	UserAgent    string        `mapstructure:"user_agent"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// ProfileConfig holds the profile card endpoint
type ProfileConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ConnectivityConfig controls the online probe
type ConnectivityConfig struct {
	ProbeAddr     string        `mapstructure:"probe_addr"` // host:port dialed to decide online/offline
	ProbeTimeout  time.Duration `mapstructure:"probe_timeout"`
	ProbeInterval time.Duration `mapstructure:"probe_interval"`
}

// ControllerConfig holds view controller behaviour switches
type ControllerConfig struct {
	TopRatedThreshold  float64 `mapstructure:"top_rated_threshold"`
	RefetchOnReconnect bool    `mapstructure:"refetch_on_reconnect"`
	VegLabel           string  `mapstructure:"veg_label"`
}

// SearchConfig selects the name matching strategy
type SearchConfig struct {
	Mode string `mapstructure:"mode"` // "substring" or "fuzzy"
}

// UIConfig holds UI configuration
type UIConfig struct {
	GridColumns int `mapstructure:"grid_columns"`
	CardWidth   int `mapstructure:"card_width"`
}

// ServerConfig holds the HTTP renderer configuration
type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Search modes
const (
	SearchModeSubstring = "substring"
	SearchModeFuzzy     = "fuzzy"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			URL:          "https://www.swiggy.com/dapi/restaurants/list/v5",
			Lat:          9.91850,
			Lng:          76.25580,
			Sections:     []int{1, 4},
			ImageBaseURL: "https://media-assets.swiggy.com/swiggy/image/upload/fl_lossy,f_auto,q_auto,w_660/",
			UserAgent:    "tiffin/1.0",
			Timeout:      20 * time.Second,
		},
		Profile: ProfileConfig{
			BaseURL: "https://api.github.com",
			Timeout: 10 * time.Second,
		},
		Connectivity: ConnectivityConfig{
			ProbeAddr:     "1.1.1.1:53",
			ProbeTimeout:  2 * time.Second,
			ProbeInterval: 5 * time.Second,
		},
		Controller: ControllerConfig{
			TopRatedThreshold:  4.5,
			RefetchOnReconnect: false,
			VegLabel:           "Veg",
		},
		Search: SearchConfig{
			Mode: SearchModeSubstring,
		},
		UI: UIConfig{
			GridColumns: 3,
			CardWidth:   30,
		},
		Server: ServerConfig{
			Addr:           ":3003",
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
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
		return filepath.Join(os.Getenv("APPDATA"), "tiffin", "tiffin.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "tiffin", "tiffin.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "tiffin")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "tiffin")
	}
}

// LoadConfig loads configuration from .env, config file and environment
func LoadConfig() (*Config, error) {
	// A missing .env is fine; anything else is worth reporting
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(defaultConfigPath())
	v.AddConfigPath(".")

	return load(v)
}

// LoadConfigFile loads configuration from an explicit file path
func LoadConfigFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v, DefaultConfig())

	// Environment variable overrides (TIFFIN_SOURCE_LAT, TIFFIN_SEARCH_MODE, ...)
	v.SetEnvPrefix("TIFFIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	// Every key has a registered default
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// never appear in a config file.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("source.url", cfg.Source.URL)
	v.SetDefault("source.lat", cfg.Source.Lat)
	v.SetDefault("source.lng", cfg.Source.Lng)
	v.SetDefault("source.sections", cfg.Source.Sections)
	v.SetDefault("source.image_base_url", cfg.Source.ImageBaseURL)
	v.SetDefault("source.user_agent", cfg.Source.UserAgent)
	v.SetDefault("source.timeout", cfg.Source.Timeout)

	v.SetDefault("profile.base_url", cfg.Profile.BaseURL)
	v.SetDefault("profile.timeout", cfg.Profile.Timeout)

	v.SetDefault("connectivity.probe_addr", cfg.Connectivity.ProbeAddr)
	v.SetDefault("connectivity.probe_timeout", cfg.Connectivity.ProbeTimeout)
	v.SetDefault("connectivity.probe_interval", cfg.Connectivity.ProbeInterval)

	v.SetDefault("controller.top_rated_threshold", cfg.Controller.TopRatedThreshold)
	v.SetDefault("controller.refetch_on_reconnect", cfg.Controller.RefetchOnReconnect)
	v.SetDefault("controller.veg_label", cfg.Controller.VegLabel)

	v.SetDefault("search.mode", cfg.Search.Mode)

	v.SetDefault("ui.grid_columns", cfg.UI.GridColumns)
	v.SetDefault("ui.card_width", cfg.UI.CardWidth)

	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.allowed_origins", cfg.Server.AllowedOrigins)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// Validate checks values the rest of the app relies on
func (c *Config) Validate() error {
	if c.Source.URL == "" {
		return fmt.Errorf("source.url is required")
	}
	if len(c.Source.Sections) != 2 {
		return fmt.Errorf("source.sections must name exactly two card indices, got %d", len(c.Source.Sections))
	}
	for _, idx := range c.Source.Sections {
		if idx < 0 {
			return fmt.Errorf("source.sections: negative index %d", idx)
		}
	}
	if t := c.Controller.TopRatedThreshold; t < 0 || t > 5 {
		return fmt.Errorf("controller.top_rated_threshold must be within [0, 5], got %v", t)
	}
	switch c.Search.Mode {
	case SearchModeSubstring, SearchModeFuzzy:
	default:
		return fmt.Errorf("search.mode must be %q or %q, got %q", SearchModeSubstring, SearchModeFuzzy, c.Search.Mode)
	}
	if c.UI.GridColumns < 1 {
		c.UI.GridColumns = 1
	}
	return nil
}
