package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/finanzas/internal/cli"
	"github.com/Veraticus/finanzas/internal/common"
	"github.com/Veraticus/finanzas/internal/model"
	"github.com/Veraticus/finanzas/internal/ofx"
	"github.com/spf13/cobra"
)

func importOFXCmd() *cobra.Command {
	var (
		dryRun          bool
		allowDuplicates bool
	)

	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Importar movimientos desde archivos OFX/QFX",
		Long: `Importa los movimientos de extractos OFX o QFX descargados de tu banco.

Los débitos se registran como gastos y los créditos como ingresos; la
categoría se deduce del comercio. Los movimientos que ya existen (misma
fecha, tipo, monto y descripción) se omiten.`,
		Example: `  # Importar un extracto
  finanzas import-ofx ~/Descargas/bancolombia_sep.ofx

  # Importar todos los extractos de una carpeta
  finanzas import-ofx ~/Descargas/*.qfx

  # Ver qué se importaría sin guardar
  finanzas import-ofx --dry-run extracto.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			handler := cli.NewInterruptHandler(out)
			ctx := handler.HandleInterrupts(cmd.Context(), "Importación")
			defer handler.Stop()

			store, cleanup, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			slog.Info("Importing OFX files", "file_count", len(files), "dry_run", dryRun)

			parser := ofx.NewParser()
			progress := cli.NewProgress(cmd.ErrOrStderr(), len(files), "Leyendo extractos")

			var (
				entries []ofx.Entry
				results = make([]fileResult, 0, len(files))
				seen    = make(map[string]bool)
			)
			if !allowDuplicates {
				for _, txn := range store.Snapshot() {
					seen[duplicateKey(txn.Date, txn.Type, txn.Amount.String(), txn.Description)] = true
				}
			}

			for _, path := range files {
				if handler.WasInterrupted() {
					return ctx.Err()
				}

				parsed, accounts, err := parseOFXFile(ctx, parser, path)
				progress.Step()
				if err != nil {
					common.LogError(err, "Failed to parse OFX file", common.Fields{"file": path})
					results = append(results, fileResult{name: filepath.Base(path), err: err})
					continue
				}

				added := 0
				for _, e := range parsed {
					key := duplicateKey(e.Date, e.Type, e.Amount.String(), e.Description)
					if !allowDuplicates && seen[key] {
						continue
					}
					seen[key] = true
					entries = append(entries, e)
					added++
				}
				results = append(results, fileResult{name: filepath.Base(path), accounts: accounts, found: len(parsed), added: added})
			}
			progress.Finish()

			if err := printImportSummary(out, results, entries); err != nil {
				return err
			}

			if len(entries) == 0 {
				return allFailed(results)
			}
			if dryRun {
				_, err := fmt.Fprintln(out, cli.FormatInfo("Simulación: no se guardó nada."))
				return err
			}
			if handler.WasInterrupted() {
				return ctx.Err()
			}

			added, err := store.AddAll(ctx, ofx.NewTransactions(entries))
			if errors.Is(err, common.ErrPersistence) {
				return unsavedError(err)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%d movimientos importados.", len(added))))
			return err
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "preview the import without saving")
	cmd.Flags().BoolVar(&allowDuplicates, "allow-duplicates", false, "import lines that match an existing transaction")

	return cmd
}

type fileResult struct {
	err      error
	name     string
	accounts []string
	found    int
	added    int
}

// expandFiles resolves globs, keeping plain paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, common.NewValidationError("pattern", fmt.Sprintf("invalid pattern %s: %v", pattern, err))
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, common.NewUserError("no se encontraron archivos para importar", nil)
	}
	return files, nil
}

// parseOFXFile returns the file's entries and the accounts its statements cover.
func parseOFXFile(ctx context.Context, parser *ofx.Parser, path string) ([]ofx.Entry, []string, error) {
	// #nosec G304 - the path is chosen by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	entries, err := parser.ParseFile(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	accounts, err := parser.GetAccounts(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}

	slog.Debug("Parsed OFX file", "file", path, "accounts", len(accounts), "entries", len(entries))
	return entries, accounts, nil
}

// maskAccount keeps the last four characters of an account number.
func maskAccount(id string) string {
	runes := []rune(id)
	if len(runes) <= 4 {
		return id
	}
	return "****" + string(runes[len(runes)-4:])
}

// duplicateKey identifies a movement by local day, type, amount and description.
func duplicateKey(date time.Time, typ model.TransactionType, amount, description string) string {
	return strings.Join([]string{
		date.Local().Format("2006-01-02"),
		string(typ),
		amount,
		strings.ToLower(strings.TrimSpace(description)),
	}, "|")
}

func printImportSummary(out io.Writer, results []fileResult, entries []ofx.Entry) error {
	if _, err := fmt.Fprintln(out, cli.FormatTitle("Archivos importados")); err != nil {
		return err
	}
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(out, "  %s %s: %v\n", cli.ErrorIcon, r.name, r.err)
			continue
		}
		fmt.Fprintf(out, "  %s %s: %d movimientos, %d nuevos\n", cli.SuccessIcon, r.name, r.found, r.added)
		if len(r.accounts) > 0 {
			masked := make([]string, len(r.accounts))
			for i, id := range r.accounts {
				masked[i] = maskAccount(id)
			}
			fmt.Fprintf(out, "      cuentas: %s\n", strings.Join(masked, ", "))
		}
	}

	if len(entries) == 0 {
		_, err := fmt.Fprintln(out, cli.FormatWarning("No hay movimientos nuevos."))
		return err
	}

	fmt.Fprintln(out)
	for i, e := range entries {
		if i >= 5 {
			fmt.Fprintf(out, "  … y %d más\n", len(entries)-5)
			break
		}
		txn := model.Transaction{Type: e.Type, Amount: e.Amount, Category: e.Category, Description: e.Description, Date: e.Date}
		fmt.Fprintf(out, "  %s  %-30s %-16s %s\n",
			cli.FormatDate(txn.Date),
			txn.Description,
			cli.CategoryLabel(txn.Category),
			cli.StyleAmount(txn),
		)
	}
	_, err := fmt.Fprintln(out)
	return err
}

// allFailed returns an error when no file could be read at all.
func allFailed(results []fileResult) error {
	for _, r := range results {
		if r.err == nil {
			return nil
		}
	}
	return common.NewUserError("no se pudo leer ningún extracto", results[0].err)
}
