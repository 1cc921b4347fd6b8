package main

import (
	"errors"
	"fmt"

	"github.com/rpgo/savings-projector/internal/calculation"
	"github.com/rpgo/savings-projector/internal/config"
	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/rpgo/savings-projector/internal/history"
	"github.com/rpgo/savings-projector/internal/output"
	"github.com/spf13/cobra"
)

func (app *cli) solveCmd() *cobra.Command {
	var (
		profileFile string
		fromHistory int
		fields      []string
		target      string
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find the contribution rate that reaches a savings target",
		Long: `Solve searches for the smallest annual contribution, to a hundredth of a
percent of income, whose projected balance at retirement reaches the target.
All other profile fields stay as given.`,
		Example: `  projector solve --profile profile.yaml
  projector solve --from-history 3 --target 1500000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			goal := calculation.RecommendationThreshold
			if target != "" {
				v, err := domain.ParseAmount(target)
				if err != nil || v.IsNegative() {
					return fmt.Errorf("invalid --target %q", target)
				}
				goal = v
			}

			profile, err := app.loadProfile(cmd, profileFile, fromHistory, fields)
			if err != nil {
				return err
			}
			engine, err := app.newEngine()
			if err != nil {
				return err
			}

			pct, err := engine.RequiredContribution(cmd.Context(), *profile, goal)
			if errors.Is(err, calculation.ErrTargetUnreachable) {
				fmt.Fprintf(cmd.OutOrStdout(), "No contribution rate reaches %s by age %d.\n",
					output.FormatCurrency(goal), profile.RetirementAge)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contributing %s of income reaches %s by age %d (currently %s).\n",
				output.FormatPercentage(pct), output.FormatCurrency(goal), profile.RetirementAge,
				output.FormatRate(profile.AnnualContribPct))
			return nil
		},
	}
	cmd.Flags().StringVarP(&profileFile, "profile", "p", "", "profile file (YAML or JSON)")
	cmd.Flags().IntVar(&fromHistory, "from-history", 0, "use saved profile N (1 = oldest)")
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "set a profile field, key=value (repeatable)")
	cmd.Flags().StringVar(&target, "target", "", "savings target at retirement (default 1,000,000)")
	cmd.MarkFlagsMutuallyExclusive("profile", "from-history")
	return cmd
}

// loadProfile builds a profile non-interactively from a file, a history
// entry or --field flags. Nothing is saved.
func (app *cli) loadProfile(cmd *cobra.Command, profileFile string, fromHistory int, fieldFlags []string) (*domain.ProfileInput, error) {
	overrides, err := parseFieldFlags(fieldFlags)
	if err != nil {
		return nil, err
	}

	var profile *domain.ProfileInput
	switch {
	case fromHistory != 0:
		store, err := app.openStore()
		if err != nil {
			return nil, err
		}
		defer store.Close()
		entries, err := store.Load(cmd.Context())
		if err != nil {
			return nil, err
		}
		entry, err := history.Select(entries, fromHistory)
		if err != nil {
			return nil, err
		}
		profile = &entry.Profile
	case profileFile != "":
		if profile, err = config.NewInputParser().LoadFromFile(profileFile); err != nil {
			return nil, err
		}
	case len(overrides) == 0:
		return nil, errors.New("no profile given: use --profile, --from-history or --field")
	}

	if len(overrides) == 0 {
		return profile, nil
	}
	return config.NewInputParser().ApplyOverrides(profile, overrides)
}
