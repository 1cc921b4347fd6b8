package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpgo/savings-projector/internal/config"
	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/rpgo/savings-projector/internal/history"
	"github.com/rpgo/savings-projector/internal/logging"
	"github.com/rpgo/savings-projector/internal/output"
	"github.com/rpgo/savings-projector/internal/prompt"
	"github.com/spf13/cobra"
)

type projectOptions struct {
	profileFile string
	fields      []string
	fromHistory int
	interactive bool
	accessible  bool
	format      string
	outputFile  string
	noSave      bool
	solve       bool
}

func (app *cli) projectCmd() *cobra.Command {
	opts := &projectOptions{}
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project retirement savings and the sustainable withdrawal",
		Long: `Project runs the accumulation and drawdown simulation for one profile and
prints the report.

The profile comes from --profile, --from-history or, when neither is given
and no --field flags are set, an interactive form that first offers the last
saved profiles. --field key=value overrides individual fields of any source.`,
		Example: `  projector project --profile profile.yaml
  projector project --from-history 2 --field expected_return=6
  projector project --profile profile.yaml --format html --output report.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.runProject(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.profileFile, "profile", "p", "", "profile file (YAML or JSON)")
	cmd.Flags().StringArrayVarP(&opts.fields, "field", "f", nil, "set a profile field, key=value (repeatable)")
	cmd.Flags().IntVar(&opts.fromHistory, "from-history", 0, "reuse saved profile N (1 = oldest)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "enter the profile in an interactive form")
	cmd.Flags().BoolVar(&opts.accessible, "accessible", false, "use plain line-by-line prompts instead of the full-screen form")
	cmd.Flags().StringVar(&opts.format, "format", "", "report format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().StringVarP(&opts.outputFile, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "do not add the profile to history")
	cmd.Flags().BoolVar(&opts.solve, "solve", true, "when short of the target, compute the contribution that reaches it")
	_ = app.v.BindPFlag("output.format", cmd.Flags().Lookup("format"))
	cmd.MarkFlagsMutuallyExclusive("profile", "from-history", "interactive")
	return cmd
}

func (app *cli) runProject(cmd *cobra.Command, opts *projectOptions) error {
	ctx := cmd.Context()

	overrides, err := parseFieldFlags(opts.fields)
	if err != nil {
		return err
	}

	store, err := app.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	profile, save, err := app.resolveProfile(ctx, cmd, store, opts)
	if err != nil {
		return err
	}
	if len(overrides) > 0 {
		profile, err = config.NewInputParser().ApplyOverrides(profile, overrides)
		if err != nil {
			return err
		}
		save = true
	}
	if save && !opts.noSave {
		entry, err := store.Save(ctx, *profile)
		if err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		logging.Sugar().Debugf("saved profile %s", entry.ID)
	}

	engine, err := app.newEngine()
	if err != nil {
		return err
	}
	engine.SolveShortfall = opts.solve
	report, err := engine.BuildReport(ctx, *profile)
	if err != nil {
		return err
	}

	format := app.v.GetString("output.format")
	if opts.outputFile != "" {
		path, err := output.GenerateReport(report, format, opts.outputFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
		return nil
	}
	return output.Render(cmd.OutOrStdout(), report, format)
}

// resolveProfile picks the profile source. save reports whether the profile
// is new and belongs in history. A nil profile means --field flags alone
// describe it.
func (app *cli) resolveProfile(ctx context.Context, cmd *cobra.Command, store history.Store, opts *projectOptions) (*domain.ProfileInput, bool, error) {
	switch {
	case opts.fromHistory != 0:
		entries, err := store.Load(ctx)
		if err != nil {
			return nil, false, err
		}
		entry, err := history.Select(entries, opts.fromHistory)
		if err != nil {
			return nil, false, err
		}
		return &entry.Profile, false, nil

	case opts.profileFile != "":
		p, err := config.NewInputParser().LoadFromFile(opts.profileFile)
		if err != nil {
			return nil, false, err
		}
		return p, true, nil

	case opts.interactive || len(opts.fields) == 0:
		p, err := newCollector(cmd, store, opts).Collect(ctx)
		if err != nil {
			return nil, false, err
		}
		// the collector has already saved a new profile unless overrides follow
		return &p, false, nil

	default:
		return nil, false, nil
	}
}

// newCollector configures the interactive prompt. With --field overrides the
// collector does not save: runProject stores the overridden profile once.
func newCollector(cmd *cobra.Command, store history.Store, opts *projectOptions) *prompt.Collector {
	collector := prompt.NewCollector(store)
	collector.Logger = logging.Sugar()
	collector.Out = cmd.ErrOrStderr()
	collector.Accessible = opts.accessible
	collector.SkipSave = opts.noSave || len(opts.fields) > 0
	return collector
}

// parseFieldFlags turns key=value flags into a field map.
func parseFieldFlags(flags []string) (map[string]string, error) {
	out := make(map[string]string, len(flags))
	for _, kv := range flags {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --field %q: want key=value", kv)
		}
		out[key] = value
	}
	return out, nil
}
