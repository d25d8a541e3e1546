// Package backup exports the ledger to date-named JSON files and restores
// it from them.
package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/finanzas/internal/common"
	"github.com/Veraticus/finanzas/internal/ledger"
)

const (
	filePrefix = "finanzas_backup_"
	fileSuffix = ".json"

	// maxBackupSize bounds how much a restore will read.
	maxBackupSize = 64 << 20
)

// Common errors.
var (
	ErrBackupExists   = errors.New("backup already exists")
	ErrBackupTooLarge = errors.New("backup file too large")
)

// Info describes a backup file on disk.
type Info struct {
	Date time.Time
	Path string
	Name string
	Size int64
}

// Manager writes and lists backups in one directory.
type Manager struct {
	dir string
}

// NewManager creates a manager for dir, creating it if needed.
func NewManager(dir string) (*Manager, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}
	return &Manager{dir: dir}, nil
}

// Dir returns the backup directory.
func (m *Manager) Dir() string {
	return m.dir
}

// FileName returns the backup name for now, using its UTC calendar date.
func FileName(now time.Time) string {
	return filePrefix + now.UTC().Format("2006-01-02") + fileSuffix
}

// Export writes the store's document to w, indented with two spaces.
func Export(w io.Writer, store *ledger.Store) error {
	data, err := ledger.Encode(store.Document(), true)
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// Create writes a backup of store named for now. An existing file of the
// same name is only replaced when overwrite is set.
func (m *Manager) Create(store *ledger.Store, now time.Time, overwrite bool) (*Info, error) {
	name := FileName(now)
	path := filepath.Join(m.dir, name)

	if _, err := os.Stat(path); err == nil && !overwrite {
		return nil, fmt.Errorf("%s: %w", name, ErrBackupExists)
	}

	var buf bytes.Buffer
	if err := Export(&buf, store); err != nil {
		return nil, err
	}

	// Write to a temporary file first so a failed write never clobbers an
	// existing backup.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0600); err != nil {
		return nil, fmt.Errorf("failed to write backup: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			slog.Error("failed to remove temporary backup", "error", rmErr)
		}
		return nil, fmt.Errorf("failed to finalize backup: %w", err)
	}

	slog.Info("Backup written", "path", path, "transactions", store.Len())

	return &Info{
		Name: name,
		Path: path,
		Date: dateOf(name),
		Size: int64(buf.Len()),
	}, nil
}

// List returns the backups in the directory, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := make([]Info, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		date := dateOf(name)
		if date.IsZero() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// Skip files removed while listing
			continue
		}
		backups = append(backups, Info{
			Name: name,
			Path: filepath.Join(m.dir, name),
			Date: date,
			Size: info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Date.After(backups[j].Date)
	})
	return backups, nil
}

// Restore replaces the store's collection with the document read from r.
// The store is left untouched unless the whole document is valid.
func Restore(ctx context.Context, store *ledger.Store, r io.Reader) error {
	data, err := io.ReadAll(io.LimitReader(r, maxBackupSize+1))
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}
	if len(data) > maxBackupSize {
		return common.NewImportFormatError("file exceeds 64 MiB", ErrBackupTooLarge)
	}
	return store.ReplaceRaw(ctx, data)
}

// RestoreFile restores the store from the backup at path.
func RestoreFile(ctx context.Context, store *ledger.Store, path string) error {
	// #nosec G304 - the path is chosen by the local user
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open backup: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("failed to close backup file", "error", err)
		}
	}()

	if err := Restore(ctx, store, f); err != nil {
		return err
	}
	slog.Info("Backup restored", "path", path, "transactions", store.Len())
	return nil
}

func dateOf(name string) time.Time {
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
	date, err := time.Parse("2006-01-02", stamp)
	if err != nil {
		return time.Time{}
	}
	return date
}
