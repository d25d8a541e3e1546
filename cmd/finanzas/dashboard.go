package main

import (
	"github.com/Veraticus/finanzas/internal/tui"
	"github.com/Veraticus/finanzas/internal/tui/themes"
	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Abrir el panel interactivo",
		Long: `Panel interactivo con cuatro vistas: movimientos del mes, estadísticas por
rango, sugerencias y reporte mensual. Pulsa ? para ver los atajos.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, cleanup, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.Run(ctx,
				tui.WithStore(store),
				tui.WithTheme(themes.GetTheme(theme)),
				tui.WithClock(clock),
			)
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "default", "color theme (default, light, catppuccin-mocha)")

	return cmd
}
