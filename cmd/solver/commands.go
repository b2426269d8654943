package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/batch"
	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/board"
	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/fixture"
	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/server"
	"github.com/Barabas5532/shenzhen-solitaire-solver/solver"
	"github.com/spf13/cobra"
)

func (a *app) solveCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "solve [file|-]",
		Short: "Solve a board read from a JSON file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readBoard(cmd, args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if a.cfg.Search.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, a.cfg.Search.Timeout)
				defer cancel()
			}

			result, err := solver.Play(ctx, b, a.searchOptions())
			if asJSON {
				return printJSON(cmd.OutOrStdout(), result, err)
			}
			if err != nil {
				return err
			}
			return printSteps(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the serialized solution")
	return cmd
}

func readBoard(cmd *cobra.Command, args []string) (*board.Board, error) {
	if len(args) == 0 || args[0] == "-" {
		return board.Decode(cmd.InOrStdin())
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return board.Decode(f)
}

func printJSON(w io.Writer, result *solver.Result, err error) error {
	var steps []solver.Step
	if err == nil {
		steps = result.Steps
	} else if !errors.Is(err, solver.ErrNoSolution) {
		return err
	}

	data, merr := json.Marshal(steps)
	if merr != nil {
		return merr
	}
	fmt.Fprintln(w, string(data))
	return err
}

func printSteps(w io.Writer, result *solver.Result) error {
	for i, step := range result.Steps {
		if _, err := fmt.Fprintf(w, "Step %d: %s\n%s\n", i, step.Move, step.Board); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "solved in %d moves, %d expanded, %d visited\n", len(result.Steps)-1, result.Expanded, result.Visited)
	return err
}

func (a *app) benchCmd() *cobra.Command {
	var fixturesPath string
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Solve sample deals concurrently and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deals, err := loadDeals(fixturesPath)
			if err != nil {
				return err
			}

			outcomes := batch.Run(cmd.Context(), deals, batch.Options{
				Workers: a.cfg.Workers(),
				Search:  a.searchOptions(),
				Timeout: a.cfg.Search.Timeout,
			})

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-16s %-7s %6s %10s %12s\n", "DEAL", "SOLVED", "MOVES", "EXPANDED", "DURATION")
			for _, o := range outcomes {
				fmt.Fprintf(w, "%-16s %-7t %6d %10d %12s\n", o.Name, o.Solved, o.Moves, o.Expanded, o.Duration.Round(time.Microsecond))
			}

			s := batch.Summarize(outcomes)
			fmt.Fprintf(w, "solved %d of %d deals, %d expanded\n", s.Solved, s.Deals, s.Expanded)
			if s.Solved != s.Deals {
				return fmt.Errorf("%d of %d deals unsolved", s.Deals-s.Solved, s.Deals)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fixturesPath, "fixtures", "", "YAML deal file, defaults to the built-in deals")
	return cmd
}

func loadDeals(path string) ([]fixture.Deal, error) {
	if path == "" {
		return fixture.Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return fixture.Load(f)
}

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(a.cfg).Run(ctx)
		},
	}
}
