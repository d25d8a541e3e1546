package config

import (
	"os"
	"path/filepath"
	"strings"
)

// MemoryPath as the database path keeps the ledger in memory for the
// lifetime of the process.
const MemoryPath = ":memory:"

// ExpandPath replaces a leading ~ with the home directory and expands $VAR
// references. MemoryPath comes back unchanged.
func ExpandPath(path string) string {
	if path == "" || path == MemoryPath {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + path[1:]
		}
	}

	return os.ExpandEnv(path)
}

// DefaultDatabasePath follows XDG_DATA_HOME when it is set and falls back
// to ~/.local/share otherwise.
func DefaultDatabasePath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "finanzas", "finanzas.db")
	}
	return "~/.local/share/finanzas/finanzas.db"
}
