package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func (app *cli) historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear saved profiles",
	}
	cmd.AddCommand(app.historyListCmd(), app.historyClearCmd())
	return cmd
}

func (app *cli) historyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the saved profiles, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := app.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No saved profiles.")
				return nil
			}
			for i, e := range entries {
				saved := "unknown"
				if !e.SavedAt.IsZero() {
					saved = humanize.Time(e.SavedAt)
				}
				fmt.Fprintf(out, "%d: %s (saved %s)\n", i+1, e.Profile.Summary(), saved)
			}
			return nil
		},
	}
}

func (app *cli) historyClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := app.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}
}
