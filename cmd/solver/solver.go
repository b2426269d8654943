package main

import (
	"os"
	"time"

	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/config"
	"github.com/Barabas5532/shenzhen-solitaire-solver/solver"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app holds the global flags and the resolved configuration.
type app struct {
	configPath    string
	logLevel      string
	maxExpansions int
	timeout       time.Duration
	workers       int

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:               "solver",
		Short:             "Solve Shenzhen Solitaire deals",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.IntVar(&a.maxExpansions, "max-expansions", 0, "expanded node limit per search, 0 means unlimited")
	pf.DurationVar(&a.timeout, "timeout", 0, "time limit per search, 0 means none")
	pf.IntVar(&a.workers, "workers", 0, "concurrent searches of bench, 0 means one per CPU")

	root.AddCommand(a.solveCmd(), a.benchCmd(), a.serveCmd())
	return root
}

// setup loads the configuration file, applies the flags set on the
// command line and configures logging.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("max-expansions") {
		cfg.Search.MaxExpansions = a.maxExpansions
	}
	if flags.Changed("timeout") {
		cfg.Search.Timeout = a.timeout
	}
	if flags.Changed("workers") {
		cfg.Batch.Workers = a.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.TimeOnly})

	a.cfg = cfg
	return nil
}

func (a *app) searchOptions() solver.Options {
	return solver.Options{MaxExpansions: a.cfg.Search.MaxExpansions}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
