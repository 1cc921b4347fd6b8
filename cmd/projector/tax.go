package main

import (
	"fmt"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/rpgo/savings-projector/internal/output"
	"github.com/spf13/cobra"
)

func (app *cli) taxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Inspect the marginal tax bracket table",
	}
	cmd.AddCommand(app.taxLookupCmd(), app.taxTableCmd())
	return cmd
}

func (app *cli) taxLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "lookup INCOME",
		Short:   "Print the marginal rate for an annual income",
		Example: "  projector tax lookup 50000",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			income, err := domain.ParseAmount(args[0])
			if err != nil {
				return fmt.Errorf("invalid income %q", args[0])
			}
			table, err := app.taxTable()
			if err != nil {
				return err
			}
			rate, err := table.Lookup(income)
			if err != nil {
				return err
			}
			tax, err := table.EstimateTax(income)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Income %s falls in the %s bracket (%s if applied to all income).\n",
				output.FormatCurrency(income), output.FormatRate(rate), output.FormatCurrency(tax))
			return nil
		},
	}
}

func (app *cli) taxTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the bracket table in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := app.taxTable()
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(table))
			for _, b := range table {
				upper := "and above"
				if b.Max.Valid {
					upper = output.FormatCurrency(b.Max.Decimal)
				}
				rows = append(rows, []string{output.FormatCurrency(b.Min), upper, output.FormatRate(b.Rate)})
			}
			fmt.Fprint(cmd.OutOrStdout(), output.RenderTable(output.Table{
				Title:   "Marginal tax brackets",
				Headers: []string{"From", "To", "Rate"},
				Rows:    rows,
			}))
			return nil
		},
	}
}
