package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eduguide/eduguide/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"EDUGUIDE_PROVIDER", "EDUGUIDE_MODEL", "EDUGUIDE_API_KEY",
		"EDUGUIDE_BASE_URL", "EDUGUIDE_DATA_DIR", "EDUGUIDE_MEMORY_FILE",
		"EDUGUIDE_LOG_LEVEL", "EDUGUIDE_LOG_FILE",
		"MODEL_NAME", "OPENAI_BASE_URL",
	} {
		t.Setenv(name, "")
	}
}

func TestLoad_MissingFile_UsesDefaults(t *testing.T) {
	clearEnv(t)
	dataDir := t.TempDir()
	t.Setenv("EDUGUIDE_DATA_DIR", dataDir)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	require.Equal(t, config.ProviderOpenAI, cfg.Provider)
	require.Equal(t, filepath.Join(dataDir, "edu_memory.json"), cfg.MemoryFile)
	require.Equal(t, filepath.Join(dataDir, "eduguide.log"), cfg.Logging.File)
	require.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "eduguide.json")
	doc := `{
  "provider": "anthropic",
  "model": "claude-3-7-sonnet-latest",
  "memory_file": "` + filepath.ToSlash(filepath.Join(dir, "mem.json")) + `",
  "logging": {"level": "debug"}
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, config.ProviderAnthropic, cfg.Provider)
	require.Equal(t, "claude-3-7-sonnet-latest", cfg.Model)
	require.Equal(t, filepath.Join(dir, "mem.json"), cfg.MemoryFile)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, "ANTHROPIC_API_KEY", cfg.KeyEnv())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "eduguide.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"model": "gpt-4o-mini"}`), 0o644))

	t.Setenv("EDUGUIDE_DATA_DIR", dir)
	t.Setenv("EDUGUIDE_MODEL", "gpt-4.1-mini")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "gpt-4.1-mini", cfg.Model)
}

func TestLoad_LegacyEnvNames(t *testing.T) {
	clearEnv(t)
	t.Setenv("EDUGUIDE_DATA_DIR", t.TempDir())
	t.Setenv("MODEL_NAME", "gpt-4o")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:9999/v1")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	require.Equal(t, "gpt-4o", cfg.Model)
	require.Equal(t, "http://localhost:9999/v1", cfg.BaseURL)
}

func TestLoad_MalformedFile_Errors(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "eduguide.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoad_UnsupportedProvider_Errors(t *testing.T) {
	clearEnv(t)
	t.Setenv("EDUGUIDE_DATA_DIR", t.TempDir())
	t.Setenv("EDUGUIDE_PROVIDER", "vertex")

	_, err := config.Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported provider")
}
