package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/Veraticus/finanzas/internal/cli"
	"github.com/Veraticus/finanzas/internal/common"
	"github.com/Veraticus/finanzas/internal/ledger"
	"github.com/Veraticus/finanzas/internal/model"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	var (
		category    string
		description string
		date        string
	)

	cmd := &cobra.Command{
		Use:   "add <income|expense> <amount>",
		Short: "Registrar un ingreso o un gasto",
		Example: `  finanzas add income 1000000 --category salary --description "Nómina"
  finanzas add expense 250000 -c food -d "Mercado" --date 2026-10-03`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			in := ledger.NewTransaction{Description: description}

			var err error
			if in.Type, err = parseType(args[0]); err != nil {
				return err
			}
			if in.Amount, err = model.ParseAmount(args[1]); err != nil {
				return err
			}
			if in.Category, err = parseCategory(category); err != nil {
				return err
			}
			if date != "" {
				if in.Date, err = parseEntryDate(date, clock()); err != nil {
					return err
				}
			}

			store, cleanup, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			txn, err := store.Add(ctx, in)
			if errors.Is(err, common.ErrPersistence) {
				return unsavedError(err)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"%s registrado (#%d): %s en %s",
				cli.TypeLabel(txn.Type), txn.ID, cli.FormatSignedAmount(txn), cli.CategoryLabel(txn.Category),
			)))
			return err
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", string(model.CategoryOther), "category (food, transport, utilities, entertainment, shopping, health, salary, other)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "free-text description")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD), default today")

	return cmd
}

func editCmd() *cobra.Command {
	var (
		typ         string
		amount      string
		category    string
		description string
		date        string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Modificar un movimiento",
		Example: `  finanzas edit 1760434200000 --amount 260000
  finanzas edit 1760434200000 --category shopping --description "Regalo"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var patch ledger.Patch
			flags := cmd.Flags()
			if flags.Changed("type") {
				t, err := parseType(typ)
				if err != nil {
					return err
				}
				patch.Type = &t
			}
			if flags.Changed("amount") {
				a, err := model.ParseAmount(amount)
				if err != nil {
					return err
				}
				patch.Amount = &a
			}
			if flags.Changed("category") {
				c, err := parseCategory(category)
				if err != nil {
					return err
				}
				patch.Category = &c
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("date") {
				d, err := parseEntryDate(date, clock())
				if err != nil {
					return err
				}
				patch.Date = &d
			}
			if patch.IsEmpty() {
				return common.NewUserError("no hay nada que cambiar; usa --type, --amount, --category, --description o --date", nil)
			}

			store, cleanup, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			txn, err := store.Update(ctx, id, patch)
			if errors.Is(err, common.ErrPersistence) {
				return unsavedError(err)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Movimiento #%d actualizado.", txn.ID)))
			if err != nil {
				return err
			}
			return printTransaction(cmd.OutOrStdout(), txn)
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", "", "income or expense")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "new amount")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&date, "date", "", "new date (YYYY-MM-DD)")

	return cmd
}

func deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Eliminar un movimiento",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			store, cleanup, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			// Get first so an unknown id is reported instead of silently ignored.
			txn, err := store.Get(id)
			if err != nil {
				return err
			}

			if !yes {
				if err := printTransaction(out, txn); err != nil {
					return err
				}
				ok, err := cli.Confirm(ctx, cli.NewLineReader(cmd.InOrStdin()), out, "¿Eliminar este movimiento?")
				if err != nil {
					return err
				}
				if !ok {
					_, err = fmt.Fprintln(out, cli.FormatInfo("Eliminación cancelada."))
					return err
				}
			}

			if err := store.Remove(ctx, id); err != nil {
				return unsavedError(err)
			}

			_, err = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Movimiento #%d eliminado.", id)))
			return err
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")

	return cmd
}

func printTransaction(w io.Writer, txn model.Transaction) error {
	desc := txn.Description
	if desc == "" {
		desc = "-"
	}
	_, err := fmt.Fprintf(w, "  #%d  %s  %s  %s  %s\n",
		txn.ID,
		cli.FormatDate(txn.Date),
		cli.StyleAmount(txn),
		cli.CategoryLabel(txn.Category),
		desc,
	)
	return err
}
