package app

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "namebot/core/config"
	coredatabase "namebot/core/database"
	"namebot/internal/payments"
)

// BotConfig holds product settings outside the reusable core.
type BotConfig struct {
	// SupportChannel is shown in the feedback prompt.
	SupportChannel string `yaml:"support_channel" envconfig:"SUPPORT_CHANNEL"`
}

// Config is the full application configuration: the shared core config
// inlined at the top level plus the bot's own sections.
type Config struct {
	Core     coreconfig.Config   `yaml:",inline"`
	Database coredatabase.Config `yaml:"database"`
	Payments payments.Config     `yaml:"payments"`
	Bot      BotConfig           `yaml:"bot"`
}

// CoreConfig implements cmd.ConfigCarrier.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Core
}

// LoadConfig reads YAML, applies environment overrides and validates the
// core sections.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	return &cfg, nil
}
