// Package config loads assistant configuration from a JSON config file, a
// local .env file, and environment variables.
package config

import (
	"fmt"
	"path/filepath"
)

// Known provider names.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config is the resolved assistant configuration.
type Config struct {
	Provider string `json:"provider" mapstructure:"provider"`
	Model    string `json:"model" mapstructure:"model"`
	APIKey   string `json:"api_key" mapstructure:"api_key"`
	BaseURL  string `json:"base_url" mapstructure:"base_url"`

	// DataDir holds the session file and logs; default ~/.eduguide.
	DataDir string `json:"data_dir" mapstructure:"data_dir"`

	// MemoryFile is the session backing store; default edu_memory.json
	// under DataDir.
	MemoryFile string `json:"memory_file" mapstructure:"memory_file"`

	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	File   string `json:"file" mapstructure:"file"`
	Pretty bool   `json:"pretty" mapstructure:"pretty"`
}

// DefaultConfig returns the baseline configuration before file and
// environment overrides.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Logging: LoggingConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}

// Validate checks the resolved configuration.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("unsupported provider %q (want %s or %s)",
			c.Provider, ProviderOpenAI, ProviderAnthropic)
	}
	if c.MemoryFile == "" {
		return fmt.Errorf("memory file path is empty")
	}
	return nil
}

// KeyEnv returns the environment variable the selected provider's SDK reads
// its API key from when none is configured explicitly.
func (c *Config) KeyEnv() string {
	if c.Provider == ProviderAnthropic {
		return "ANTHROPIC_API_KEY"
	}
	return "OPENAI_API_KEY"
}

func (c *Config) applyPathDefaults(home string) {
	if c.DataDir == "" {
		c.DataDir = filepath.Join(home, ".eduguide")
	}
	if c.MemoryFile == "" {
		c.MemoryFile = filepath.Join(c.DataDir, "edu_memory.json")
	}
	if c.Logging.File == "" {
		c.Logging.File = filepath.Join(c.DataDir, "eduguide.log")
	}
}
