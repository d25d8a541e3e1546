package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/finanzas/internal/backup"
	"github.com/Veraticus/finanzas/internal/cli"
	"github.com/Veraticus/finanzas/internal/common"
	"github.com/Veraticus/finanzas/internal/config"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func backupCmd() *cobra.Command {
	var (
		dir    string
		force  bool
		list   bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Guardar una copia de seguridad en JSON",
		Long: `Escribe todos los movimientos en finanzas_backup_<AAAA-MM-DD>.json dentro del
directorio de copias (backup.dir, por defecto el directorio actual).`,
		Example: `  finanzas backup
  finanzas backup --dir ~/Documentos/finanzas
  finanzas backup --list
  finanzas backup --stdout > copia.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if !cmd.Flags().Changed("dir") {
				dir = config.FromViper(viper.GetViper()).BackupDir
			}

			if list {
				manager, err := backup.NewManager(config.ExpandPath(dir))
				if err != nil {
					return err
				}
				return printBackups(cmd, manager)
			}

			store, cleanup, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if stdout {
				return backup.Export(out, store)
			}

			manager, err := backup.NewManager(config.ExpandPath(dir))
			if err != nil {
				return err
			}

			info, err := manager.Create(store, clock(), force)
			if errors.Is(err, backup.ErrBackupExists) {
				return common.NewUserError("ya existe una copia de hoy; usa --force para reemplazarla", err)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(out, "%s (%d movimientos, %s)\n",
				cli.FormatSuccess("Copia guardada en "+info.Path),
				store.Len(),
				humanize.Bytes(uint64(info.Size)),
			)
			return err
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "backup directory (default: backup.dir)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace today's backup if it exists")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list existing backups")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "write the backup to standard output")
	cmd.MarkFlagsMutuallyExclusive("list", "stdout")

	return cmd
}

func printBackups(cmd *cobra.Command, manager *backup.Manager) error {
	out := cmd.OutOrStdout()

	backups, err := manager.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		_, err := fmt.Fprintln(out, cli.SubtleStyle.Render("No hay copias en "+manager.Dir()))
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join([]string{"ARCHIVO", "FECHA", "TAMAÑO"}, "\t"))
	for _, b := range backups {
		fmt.Fprintf(w, "%s\t%s\t%s\n", b.Name, humanize.Time(b.Date), humanize.Bytes(uint64(b.Size)))
	}
	return w.Flush()
}

func restoreCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restaurar movimientos desde una copia de seguridad",
		Long: `Reemplaza todos los movimientos actuales por los del archivo. Si el archivo
no es una copia válida, no se cambia nada.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			path := config.ExpandPath(args[0])

			if _, err := os.Stat(path); err != nil {
				return common.NewUserError("no se encontró el archivo "+args[0], err)
			}

			store, cleanup, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if !yes && store.Len() > 0 {
				question := fmt.Sprintf("Esto reemplazará tus %d movimientos actuales. ¿Continuar?", store.Len())
				ok, err := cli.Confirm(ctx, cli.NewLineReader(cmd.InOrStdin()), out, question)
				if err != nil {
					return err
				}
				if !ok {
					_, err = fmt.Fprintln(out, cli.FormatInfo("Restauración cancelada."))
					return err
				}
			}

			if err := backup.RestoreFile(ctx, store, path); err != nil {
				if errors.Is(err, common.ErrImportFormat) || errors.Is(err, common.ErrValidation) {
					return common.NewUserError("el archivo no es una copia de seguridad válida", err)
				}
				return err
			}

			_, err = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Datos restaurados: %d movimientos.", store.Len())))
			return err
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")

	return cmd
}
