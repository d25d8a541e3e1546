package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "")
	v := viper.New()

	require.NoError(t, Init(v, ""))
	cfg := FromViper(v)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local/share/finanzas/finanzas.db"), cfg.DatabasePath)
	assert.Equal(t, "finance_app_data_v1", cfg.StorageKey)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, ".", cfg.BackupDir)
}

func TestInit_ConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`
database:
  path: ":memory:"
storage:
  key: pruebas
logging:
  level: debug
`), 0600))
	t.Setenv("FINANZAS_LOGGING_FORMAT", "json")
	t.Setenv("FINANZAS_BACKUP_DIR", "$HOME/respaldos")
	t.Setenv("HOME", dir)

	v := viper.New()
	require.NoError(t, Init(v, cfgFile))
	cfg := FromViper(v)

	assert.Equal(t, ":memory:", cfg.DatabasePath)
	assert.Equal(t, "pruebas", cfg.StorageKey)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, filepath.Join(dir, "respaldos"), cfg.BackupDir)
}

func TestInit_BadConfigFile(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("logging: [unclosed"), 0600))

	assert.Error(t, Init(viper.New(), cfgFile))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("FINANZAS_TEST_DOTENV=cargado\n"), 0600))
	t.Cleanup(func() { _ = os.Unsetenv("FINANZAS_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(envFile))
	assert.Equal(t, "cargado", os.Getenv("FINANZAS_TEST_DOTENV"))

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("FINANZAS_TEST_DIR", "/srv/datos")

	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "~", want: home},
		{input: "~/finanzas.db", want: filepath.Join(home, "finanzas.db")},
		{input: "$FINANZAS_TEST_DIR/finanzas.db", want: "/srv/datos/finanzas.db"},
		{input: "/abs/path.db", want: "/abs/path.db"},
		{input: ":memory:", want: ":memory:"},
		{input: "~otro/finanzas.db", want: "~otro/finanzas.db"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}

func TestDefaultDatabasePath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/srv/xdg")
	assert.Equal(t, "/srv/xdg/finanzas/finanzas.db", DefaultDatabasePath())

	t.Setenv("XDG_DATA_HOME", "")
	assert.Equal(t, "~/.local/share/finanzas/finanzas.db", DefaultDatabasePath())
}
