package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/finanzas/internal/cli"
	"github.com/Veraticus/finanzas/internal/common"
	"github.com/Veraticus/finanzas/internal/model"
	"github.com/Veraticus/finanzas/internal/query"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	var (
		month  string
		offset int
		rf     rangeFlags
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Listar movimientos",
		Long: `Lista los movimientos del mes actual, más recientes primero.

Usa --offset para moverte entre meses, --month para un mes concreto o
--range/--from/--to para un rango de fechas.`,
		Example: `  finanzas list
  finanzas list --offset -1
  finanzas list --month 2026-09
  finanzas list --range week
  finanzas list --from 2026-01-01 --to 2026-03-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			flags := cmd.Flags()

			store, cleanup, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			view := query.NewView(store.Snapshot(), clock())

			var (
				txns  []model.Transaction
				title string
			)
			switch {
			case flags.Changed("month"):
				m, err := query.ParseMonth(month)
				if err != nil {
					return common.NewValidationError("month", err.Error())
				}
				txns = view.ByYearMonth(m)
				title = m.Label()
			case flags.Changed("range") || flags.Changed("from") || flags.Changed("to"):
				r, err := rf.resolve(view.Now().Location())
				if err != nil {
					return err
				}
				txns = view.ByRange(r)
				title = cli.RangeLabel(r)
			default:
				txns = view.ByMonthOffset(offset)
				title = view.CurrentMonth().Add(offset).Label()
			}

			return printTransactions(cmd.OutOrStdout(), title, txns)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "calendar month (YYYY-MM)")
	cmd.Flags().IntVarP(&offset, "offset", "o", 0, "months relative to the current one (-1 is last month)")
	rf.register(cmd, "all")
	cmd.MarkFlagsMutuallyExclusive("month", "offset", "range")
	cmd.MarkFlagsMutuallyExclusive("month", "offset", "from")

	return cmd
}

func printTransactions(out io.Writer, title string, txns []model.Transaction) error {
	if _, err := fmt.Fprintln(out, cli.FormatTitle(title)); err != nil {
		return err
	}

	if len(txns) == 0 {
		_, err := fmt.Fprintln(out, cli.SubtleStyle.Render("No hay movimientos."))
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join([]string{"ID", "FECHA", "TIPO", "CATEGORÍA", "MONTO", "DESCRIPCIÓN"}, "\t"))
	for _, txn := range txns {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			txn.ID,
			cli.FormatDate(txn.Date),
			cli.TypeLabel(txn.Type),
			cli.CategoryLabel(txn.Category),
			cli.FormatSignedAmount(txn),
			txn.Description,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "\n%d movimientos\n", len(txns))
	return err
}
