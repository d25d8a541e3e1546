package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoStore is returned when the dashboard is started without a ledger.
var ErrNoStore = errors.New("tui: store is required")

// New builds the dashboard model.
func New(opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Store == nil {
		return Model{}, ErrNoStore
	}
	return newModel(cfg), nil
}

// Run starts the dashboard and blocks until the user quits or ctx ends.
func Run(ctx context.Context, opts ...Option) error {
	opts = append(opts, WithContext(ctx))
	m, err := New(opts...)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}
