package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"profitlogic/internal/model"
)

// FileName config file looked up next to the executable
const FileName = "config.toml"

// AppConfig application configuration
type AppConfig struct {
	Server  ServerConfig        `toml:"server"`
	Pricing model.PricingConfig `toml:"pricing"`
	VIN     VINConfig           `toml:"vin"`
	Market  MarketConfig        `toml:"market"`
	Batch   BatchConfig         `toml:"batch"`
}

// ServerConfig HTTP server
type ServerConfig struct {
	Port    int  `toml:"port" env:"PROFITLOGIC_PORT" validate:"gte=1,lte=65535"`
	DevMode bool `toml:"dev_mode" env:"PROFITLOGIC_DEV_MODE"`
}

// VINConfig VIN decoding strategy
type VINConfig struct {
	Mode           string `toml:"mode" env:"PROFITLOGIC_VIN_MODE" validate:"oneof=static vpic"`
	BaseURL        string `toml:"base_url" env:"PROFITLOGIC_VIN_BASE_URL" validate:"omitempty,url"`
	TimeoutSeconds int    `toml:"timeout_seconds" env:"PROFITLOGIC_VIN_TIMEOUT_SECONDS" validate:"gte=1,lte=60"`
}

// Timeout decode request timeout
func (c VINConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MarketConfig synthetic comparables
type MarketConfig struct {
	ListingCount int `toml:"listing_count" env:"PROFITLOGIC_MARKET_LISTINGS" validate:"gte=1,lte=100"`
}

// BatchConfig batch appraisal worker pool
type BatchConfig struct {
	Workers int `toml:"workers" env:"PROFITLOGIC_BATCH_WORKERS" validate:"gte=1,lte=64"`
}

// LoadConfigInfo config load metadata
type LoadConfigInfo struct {
	Path          string
	FileFound     bool
	PortSpecified bool
}

// DefaultConfig default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20261,
			DevMode: false,
		},
		Pricing: model.DefaultPricingConfig(),
		VIN: VINConfig{
			Mode:           "static",
			BaseURL:        "https://vpic.nhtsa.dot.gov/api",
			TimeoutSeconds: 5,
		},
		Market: MarketConfig{
			ListingCount: 10,
		},
		Batch: BatchConfig{
			Workers: 4,
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir directory of the running executable
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo loads config.toml next to the executable, then .env and PROFITLOGIC_* overrides
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	_ = godotenv.Load()
	return LoadFile(filepath.Join(exeDir, FileName))
}

// LoadFile loads a config file; a missing file yields defaults.
// Environment variables override file values.
func LoadFile(path string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		info.FileFound = true
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, info, err
	}

	if err := env.Parse(config); err != nil {
		return nil, info, fmt.Errorf("parse environment: %w", err)
	}
	config.Pricing.BuyFees = model.DefaultBuyFees

	if err := Validate(config); err != nil {
		return nil, info, err
	}
	return config, info, nil
}

var validate = validator.New()

// Validate checks value ranges of every section
func Validate(config *AppConfig) error {
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
