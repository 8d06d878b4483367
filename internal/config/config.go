package config

import (
	"errors"
	"io/fs"
	"os"

	"chartspec/internal/theme"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the command line defaults. Chart files override the chart
// section per chart.
type Config struct {
	Chart struct {
		ColorScheme theme.Scheme `yaml:"color_scheme"`
		Locale      string       `yaml:"locale"`
		Strict      bool         `yaml:"strict"`
	} `yaml:"chart"`
	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`
	Cache struct {
		Size int `yaml:"size"`
	} `yaml:"cache"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.Chart.ColorScheme = theme.Light
	cfg.Chart.Locale = "en-US"
	cfg.Storage.Path = "chartspec.db"
	cfg.Cache.Size = 64
	return &cfg
}

// LoadConfig reads path on top of Default. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	}

	// 3. Override with Environment Variables if present
	if scheme := os.Getenv("CHARTSPEC_COLOR_SCHEME"); scheme != "" {
		cfg.Chart.ColorScheme = theme.Scheme(scheme)
	}
	if locale := os.Getenv("CHARTSPEC_LOCALE"); locale != "" {
		cfg.Chart.Locale = locale
	}
	if db := os.Getenv("CHARTSPEC_DB"); db != "" {
		cfg.Storage.Path = db
	}

	return cfg, nil
}
