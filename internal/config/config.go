// Package config loads application settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App    AppConfig
	Kite   KiteConfig
	Market MarketConfig
}

type AppConfig struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`
	Verbosity  int    `envconfig:"VERBOSITY" default:"1"`
	ReportDir  string `envconfig:"REPORT_DIR" default:"reports"`
}

type KiteConfig struct {
	APIKey      string `envconfig:"KITE_API_KEY"`
	AccessToken string `envconfig:"KITE_ACCESS_TOKEN"`
}

// Enabled reports whether live Kite data can be used.
func (c KiteConfig) Enabled() bool {
	return c.APIKey != "" && c.AccessToken != ""
}

type MarketConfig struct {
	Index        string  `envconfig:"INDEX" default:"NIFTY"`
	RiskFreeRate float64 `envconfig:"RISK_FREE_RATE" default:"0.065"`
	TickSize     float64 `envconfig:"TICK_SIZE" default:"0.05"`
	Timezone     string  `envconfig:"MARKET_TZ" default:"Asia/Kolkata"`
}

// Load reads configuration from a .env file (if present) and the
// environment. Environment variables win over .env values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing environment config: %w", err)
	}
	return &cfg, nil
}
