package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/finanzas/internal/cli"
	"github.com/Veraticus/finanzas/internal/common"
	"github.com/Veraticus/finanzas/internal/query"
	"github.com/Veraticus/finanzas/internal/report"
	"github.com/spf13/cobra"
)

func summaryCmd() *cobra.Command {
	var offset int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Resumen de ingresos, gastos y balance del mes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, cleanup, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			view := query.NewView(store.Snapshot(), clock())
			month := view.CurrentMonth().Add(offset)
			r := report.Monthly(view.All(), month, view.Now().Location())

			return printMonthly(cmd.OutOrStdout(), r)
		},
	}

	cmd.Flags().IntVarP(&offset, "offset", "o", 0, "months relative to the current one (-1 is last month)")

	return cmd
}

func statsCmd() *cobra.Command {
	var rf rangeFlags

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Gastos por categoría en un rango",
		Example: `  finanzas stats
  finanzas stats --range year
  finanzas stats --from 2026-01-01 --to 2026-06-30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, cleanup, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			now := clock()
			r, err := rf.resolve(now.Location())
			if err != nil {
				return err
			}

			return printPeriod(cmd.OutOrStdout(), report.PeriodFor(store.Snapshot(), now, r))
		},
	}

	rf.register(cmd, "month")

	return cmd
}

func suggestCmd() *cobra.Command {
	var offset int

	cmd := &cobra.Command{
		Use:     "suggest",
		Aliases: []string{"suggestions"},
		Short:   "Sugerencias de ahorro según tus gastos del mes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			store, cleanup, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			view := query.NewView(store.Snapshot(), clock())
			suggestions := report.Suggestions(view.ByMonthOffset(offset))

			if len(suggestions) == 0 {
				_, err := fmt.Fprintln(out, cli.FormatInfo("Aún no hay gastos suficientes para darte sugerencias."))
				return err
			}

			for _, s := range suggestions {
				body := s.Tip
				title := cli.TipIcon + " " + cli.SuggestionTitle(s)
				if s.Kind == report.SuggestionAttention {
					title = cli.AlertIcon + " " + cli.SuggestionTitle(s)
					body = fmt.Sprintf("%s (%d%% de tus gastos)\n%s", cli.FormatMoney(s.Amount), s.Percentage, s.Tip)
				}
				if _, err := fmt.Fprintln(out, cli.RenderBox(title, body)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&offset, "offset", "o", 0, "months relative to the current one (-1 is last month)")

	return cmd
}

func reportCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Reporte mensual de meses anteriores",
		Long: `Sin --month, muestra un resumen de cada mes anterior con movimientos,
del más reciente al más antiguo. Con --month, el reporte detallado de ese mes.`,
		Example: `  finanzas report
  finanzas report --month 2026-09`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			store, cleanup, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			view := query.NewView(store.Snapshot(), clock())
			loc := view.Now().Location()

			if month != "" {
				m, err := query.ParseMonth(month)
				if err != nil {
					return common.NewValidationError("month", err.Error())
				}
				return printMonthly(out, report.Monthly(view.All(), m, loc))
			}

			months := view.AvailableMonths()
			if len(months) == 0 {
				_, err := fmt.Fprintln(out, cli.FormatInfo("Aún no hay meses anteriores para reportar."))
				return err
			}

			if _, err := fmt.Fprintln(out, cli.FormatTitle("Reporte mensual")); err != nil {
				return err
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, strings.Join([]string{"MES", "INGRESOS", "GASTOS", "BALANCE", "CATEGORÍA PRINCIPAL"}, "\t"))
			for _, m := range months {
				r := report.Monthly(view.All(), m, loc)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					r.Label,
					cli.FormatMoney(r.Totals.Income),
					cli.FormatMoney(r.Totals.Expense),
					cli.FormatMoney(r.Balance),
					cli.TopCategoryLabel(r),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "calendar month (YYYY-MM)")

	return cmd
}

func printMonthly(out io.Writer, r report.MonthlyReport) error {
	lines := []string{
		fmt.Sprintf("%-22s %s", "Ingresos:", cli.IncomeStyle.Render(cli.FormatMoney(r.Totals.Income))),
		fmt.Sprintf("%-22s %s", "Gastos:", cli.ExpenseStyle.Render(cli.FormatMoney(r.Totals.Expense))),
		fmt.Sprintf("%-22s %s", "Balance:", cli.StyleBalance(r.Balance)),
		fmt.Sprintf("%-22s %s", "Categoría principal:", cli.TopCategoryLabel(r)),
		fmt.Sprintf("%-22s %d", "Movimientos:", r.Count),
		"",
		r.Advice.Message(),
	}
	_, err := fmt.Fprintln(out, cli.RenderBox(cli.CalendarIcon+" "+r.Label, strings.Join(lines, "\n")))
	return err
}

func printPeriod(out io.Writer, stats report.PeriodStats) error {
	if _, err := fmt.Fprintln(out, cli.FormatTitle("Estadísticas: "+cli.RangeLabel(stats.Range))); err != nil {
		return err
	}

	fmt.Fprintf(out, "%-12s %s\n", "Ingresos:", cli.IncomeStyle.Render(cli.FormatMoney(stats.Totals.Income)))
	fmt.Fprintf(out, "%-12s %s\n", "Gastos:", cli.ExpenseStyle.Render(cli.FormatMoney(stats.Totals.Expense)))
	fmt.Fprintf(out, "%-12s %s\n", "Balance:", cli.StyleBalance(stats.Balance))
	fmt.Fprintf(out, "%-12s %d\n\n", "Movimientos:", stats.Count)

	rows := stats.Breakdown.Sorted()
	if len(rows) == 0 {
		_, err := fmt.Fprintln(out, cli.SubtleStyle.Render("Sin gastos en este rango."))
		return err
	}

	total := stats.Breakdown.Total()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join([]string{"CATEGORÍA", "MONTO", "%"}, "\t"))
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%d%%\n",
			cli.CategoryLabel(row.Category),
			cli.FormatMoney(row.Amount),
			report.PercentageOfTotal(row.Amount, total),
		)
	}
	return w.Flush()
}
