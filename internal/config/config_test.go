package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, key := range []string{
		"WHOGOESFIRST_ROOT_PATH",
		"WHOGOESFIRST_LANG",
		"WHOGOESFIRST_STATE_BACKEND",
		"WHOGOESFIRST_STATE_PATH",
		"WHOGOESFIRST_DEBUG",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, filepath.Join(dir, "data", "whogoesfirst"), cfg.StateDir())
	assert.Equal(t, filepath.Join(dir, "config", "whogoesfirst", "config.toml"), GetConfigFilePath())

	_, err = os.Stat(GetConfigFilePath())
	assert.True(t, os.IsNotExist(err), "loading must not create the config file")
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
root_path = "https://example.com"
preferred_language = "fr"
state_backend = "sqlite"
`), 0644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", cfg.RootPath)
	assert.Equal(t, "fr", cfg.PreferredLanguage)
	assert.Equal(t, "sqlite", cfg.StateBackend)
	assert.False(t, cfg.Debug)

	t.Setenv("WHOGOESFIRST_LANG", "de")
	t.Setenv("WHOGOESFIRST_DEBUG", "true")
	t.Setenv("WHOGOESFIRST_STATE_PATH", "/tmp/state")

	cfg, err = LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", cfg.RootPath)
	assert.Equal(t, "de", cfg.PreferredLanguage)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "/tmp/state", cfg.StateDir())
}

func TestLoadConfigBadEnv(t *testing.T) {
	isolate(t)
	t.Setenv("WHOGOESFIRST_DEBUG", "not-a-bool")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoadConfigBadFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("root_path = "), 0644))

	_, err := LoadConfigFile(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.ErrorIs(t, cfg.Validate(), ErrMissingRootPath)

	cfg.RootPath = "https://example.com"
	require.NoError(t, cfg.Validate())

	cfg.PreferredLanguage = " "
	require.ErrorIs(t, cfg.Validate(), ErrMissingPreferredLanguage)
}

func TestInitConfig(t *testing.T) {
	isolate(t)

	cfg, created, err := InitConfig()
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, DefaultConfig(), cfg)

	require.NoError(t, SetPreferredLanguage("fr"))

	cfg, created, err = InitConfig()
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "fr", cfg.PreferredLanguage)
}

func TestSetPreferredLanguageRequiresValue(t *testing.T) {
	isolate(t)
	require.ErrorIs(t, SetPreferredLanguage(""), ErrMissingPreferredLanguage)
}
