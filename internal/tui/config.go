package tui

import (
	"context"
	"time"

	"github.com/Veraticus/finanzas/internal/ledger"
	"github.com/Veraticus/finanzas/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme  themes.Theme
	Ctx    context.Context
	Store  *ledger.Store
	Now    func() time.Time
	Width  int
	Height int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:  themes.Default,
		Ctx:    context.Background(),
		Now:    time.Now,
		Width:  80,
		Height: 24,
	}
}

// WithStore sets the ledger the dashboard reads and edits.
func WithStore(store *ledger.Store) Option {
	return func(c *Config) {
		c.Store = store
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithClock overrides the clock used to decide the current month.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		if now != nil {
			c.Now = now
		}
	}
}

// WithContext sets the context passed to store writes.
func WithContext(ctx context.Context) Option {
	return func(c *Config) {
		if ctx != nil {
			c.Ctx = ctx
		}
	}
}
