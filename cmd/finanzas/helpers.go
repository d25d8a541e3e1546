package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/finanzas/internal/common"
	"github.com/Veraticus/finanzas/internal/config"
	"github.com/Veraticus/finanzas/internal/ledger"
	"github.com/Veraticus/finanzas/internal/model"
	"github.com/Veraticus/finanzas/internal/query"
	"github.com/Veraticus/finanzas/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// clock is the wall clock used by every command.
var clock = time.Now

// initLedger opens the configured storage and loads the ledger from it.
// The returned cleanup closes the storage.
func initLedger(ctx context.Context) (*ledger.Store, func(), error) {
	cfg := config.FromViper(viper.GetViper())

	kv, err := storage.New(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, nil, common.NewUserError("no se pudo abrir la base de datos", err)
	}

	cleanup := func() {
		if closeErr := kv.Close(); closeErr != nil {
			slog.Error("Failed to close storage", "error", closeErr)
		}
	}

	store := ledger.Load(ctx, kv, ledger.WithKey(cfg.StorageKey), ledger.WithClock(clock))
	slog.Debug("Ledger loaded", "path", cfg.DatabasePath, "transactions", store.Len())

	return store, cleanup, nil
}

func parseType(s string) (model.TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "ingreso":
		return model.TypeIncome, nil
	case "expense", "gasto":
		return model.TypeExpense, nil
	default:
		return "", common.NewValidationError("type", fmt.Sprintf("%q is not income or expense", s))
	}
}

func parseCategory(s string) (model.Category, error) {
	c := model.Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", common.NewValidationError("category", fmt.Sprintf("%q is not a known category", s))
	}
	return c, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, common.NewValidationError("id", fmt.Sprintf("%q is not a transaction id", s))
	}
	return id, nil
}

// parseEntryDate reads a calendar date and keeps now's time of day, so
// backdated entries still order naturally within their day.
func parseEntryDate(s string, now time.Time) (time.Time, error) {
	day, err := query.ParseDate(s, now.Location())
	if err != nil {
		return time.Time{}, common.NewValidationError("date", err.Error())
	}
	h, m, sec := now.Clock()
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, sec, 0, now.Location()), nil
}

// rangeFlags is the --range/--from/--to trio shared by list and stats.
type rangeFlags struct {
	name string
	from string
	to   string
}

func (f *rangeFlags) register(cmd *cobra.Command, def string) {
	cmd.Flags().StringVarP(&f.name, "range", "r", def, "time range (week, month, year, all)")
	cmd.Flags().StringVar(&f.from, "from", "", "custom range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "custom range end (YYYY-MM-DD), inclusive")
}

func (f rangeFlags) resolve(loc *time.Location) (query.Range, error) {
	if f.from == "" && f.to == "" {
		r, err := query.ParseRange(f.name)
		if err != nil {
			return query.All, common.NewValidationError("range", err.Error())
		}
		return r, nil
	}
	if f.from == "" || f.to == "" {
		return query.All, common.NewValidationError("range", "--from and --to must be used together")
	}

	start, err := query.ParseDate(f.from, loc)
	if err != nil {
		return query.All, common.NewValidationError("from", err.Error())
	}
	end, err := query.ParseDate(f.to, loc)
	if err != nil {
		return query.All, common.NewValidationError("to", err.Error())
	}
	if end.Before(start) {
		return query.All, common.NewValidationError("range", "--to is before --from")
	}
	return query.CustomRange(start, end), nil
}

// unsavedError reports a change that was applied but not persisted.
func unsavedError(err error) error {
	common.LogError(err, "Change applied but not saved", nil)
	return common.NewUserError("el cambio se aplicó pero no se pudo guardar", err)
}
