package main

import (
	"errors"
	"fmt"

	"github.com/rpgo/savings-projector/internal/calculation"
	"github.com/rpgo/savings-projector/internal/config"
	"github.com/rpgo/savings-projector/internal/history"
	"github.com/rpgo/savings-projector/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli carries the state shared by every command of one invocation.
type cli struct {
	v        *viper.Viper
	cfgFile  string
	settings *config.Settings
}

func newRootCmd() *cobra.Command {
	app := &cli{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "projector",
		Short: "Retirement savings projection calculator",
		Long: `projector estimates how retirement savings grow until retirement, the level
annual withdrawal that depletes them by life expectancy, and whether the
projected balance is on track.

Profiles come from a YAML/JSON file, --field flags, saved history or an
interactive form.`,
		PersistentPreRunE: app.initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/projector/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("data-dir", "", "directory for saved history (default: $XDG_DATA_HOME/projector)")
	flags.String("history-backend", "", "history storage backend (json, sqlite)")
	flags.String("tax-table", "", "tax bracket table file (YAML, JSON or TOML)")

	// Bind flags to viper
	_ = app.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = app.v.BindPFlag("logging.format", flags.Lookup("log-format"))
	_ = app.v.BindPFlag("data_dir", flags.Lookup("data-dir"))
	_ = app.v.BindPFlag("history.backend", flags.Lookup("history-backend"))
	_ = app.v.BindPFlag("tax.table_path", flags.Lookup("tax-table"))

	// Add commands
	rootCmd.AddCommand(app.projectCmd())
	rootCmd.AddCommand(app.solveCmd())
	rootCmd.AddCommand(app.historyCmd())
	rootCmd.AddCommand(app.taxCmd())
	rootCmd.AddCommand(app.exampleCmd())
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

func (app *cli) initConfig(_ *cobra.Command, _ []string) error {
	settings, err := config.Load(app.v, app.cfgFile)
	if err != nil {
		return err
	}
	app.settings = settings

	// Set up logging
	if err := logging.Init(logging.LogLevel(settings.Logging.Level), settings.Logging.Format); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}

func (app *cli) openStore() (history.Store, error) {
	store, err := history.Open(app.settings.History.Backend, app.settings.HistoryPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return store, nil
}

// taxTable returns the configured table, or the built-in one when none is set.
func (app *cli) taxTable() (calculation.TaxTable, error) {
	if app.settings.Tax.TablePath == "" {
		return calculation.DefaultTaxTable(), nil
	}
	return config.LoadTaxTable(app.settings.Tax.TablePath)
}

// newEngine builds the projection engine. A missing tax table file only drops
// the tax line from reports.
func (app *cli) newEngine() (*calculation.Engine, error) {
	table, err := app.taxTable()
	if errors.Is(err, config.ErrTaxTableUnavailable) {
		logging.Sugar().Warnf("projecting without tax information: %v", err)
		table, err = nil, nil
	}
	if err != nil {
		return nil, err
	}
	engine := calculation.NewEngineWithTaxTable(table)
	engine.SetLogger(logging.Sugar())
	return engine, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "projector version %s\n", version)
		},
	}
}
