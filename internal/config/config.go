// Package config resolves finanzas settings from flags, config files and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// FINANZAS_DATABASE_PATH.
const EnvPrefix = "FINANZAS"

// Config keys.
const (
	KeyDatabasePath = "database.path"
	KeyStorageKey   = "storage.key"
	KeyLogLevel     = "logging.level"
	KeyLogFormat    = "logging.format"
	KeyBackupDir    = "backup.dir"
)

// envKeyReplacer maps "database.path" to DATABASE_PATH.
var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// Config is the resolved application configuration.
type Config struct {
	DatabasePath string
	StorageKey   string
	LogLevel     string
	LogFormat    string
	BackupDir    string
}

// SetDefaults registers the default for every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath())
	v.SetDefault(KeyStorageKey, "finance_app_data_v1")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyBackupDir, ".")
}

// LoadDotEnv loads variables from a .env file in the working directory.
// A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Init points v at cfgFile, or at config.yaml in the standard locations
// when cfgFile is empty, and reads it. A missing config file is fine.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".config", "finanzas"))
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// FromViper resolves the configuration, expanding ~ and $VAR in paths.
func FromViper(v *viper.Viper) Config {
	return Config{
		DatabasePath: ExpandPath(v.GetString(KeyDatabasePath)),
		StorageKey:   v.GetString(KeyStorageKey),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFormat:    v.GetString(KeyLogFormat),
		BackupDir:    ExpandPath(v.GetString(KeyBackupDir)),
	}
}
