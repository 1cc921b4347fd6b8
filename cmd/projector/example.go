package main

import (
	"fmt"

	"github.com/rpgo/savings-projector/internal/config"
	"github.com/spf13/cobra"
)

func (app *cli) exampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [FILE]",
		Short: "Write the worked example profile",
		Long:  "Example prints the worked example profile as YAML, or writes it to FILE.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			profile := parser.CreateExampleProfile()
			if len(args) == 0 {
				data, err := parser.MarshalProfile(profile)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := parser.WriteProfile(args[0], profile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example profile written to %s\n", args[0])
			return nil
		},
	}
}
