package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Load resolves configuration in order: defaults, JSON config file, then
// environment variables (EDUGUIDE_* first, legacy OpenAI-style names as a
// fallback). A missing config file is not an error; a malformed one is.
func Load(configPath string) (*Config, error) {
	// Best-effort .env for local runs; absence is the normal case.
	_ = gotenv.Load()

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	if configPath == "" {
		configPath = filepath.Join(home, ".eduguide", "eduguide.json")
	}

	cfg := DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		v := viper.New()
		v.SetConfigFile(configPath)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := v.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	applyEnv(cfg)
	cfg.applyPathDefaults(home)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv layers environment overrides onto cfg. The legacy names are the
// ones the assistant has always honored for its OpenAI backend.
func applyEnv(cfg *Config) {
	setIfEnv(&cfg.Provider, "EDUGUIDE_PROVIDER")
	setIfEnv(&cfg.Model, "EDUGUIDE_MODEL", "MODEL_NAME")
	setIfEnv(&cfg.APIKey, "EDUGUIDE_API_KEY")
	setIfEnv(&cfg.BaseURL, "EDUGUIDE_BASE_URL", "OPENAI_BASE_URL")
	setIfEnv(&cfg.DataDir, "EDUGUIDE_DATA_DIR")
	setIfEnv(&cfg.MemoryFile, "EDUGUIDE_MEMORY_FILE")
	setIfEnv(&cfg.Logging.Level, "EDUGUIDE_LOG_LEVEL")
	setIfEnv(&cfg.Logging.File, "EDUGUIDE_LOG_FILE")
}

func setIfEnv(dst *string, names ...string) {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			*dst = v
			return
		}
	}
}
