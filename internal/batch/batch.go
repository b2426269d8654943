// Package batch solves many deals concurrently.
package batch

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/fixture"
	"github.com/Barabas5532/shenzhen-solitaire-solver/solver"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Options configures a batch run.
type Options struct {
	// Workers is the number of concurrent searches, 0 means runtime.NumCPU().
	Workers int
	Search  solver.Options
	// Timeout bounds each search, 0 means no timeout.
	Timeout time.Duration
}

// Outcome is the result of solving one deal.
type Outcome struct {
	ID       uuid.UUID
	Name     string
	Solved   bool
	// Moves is the length of the solution, without the start state.
	Moves    int
	Expanded int
	Visited  int
	Duration time.Duration
	Err      error
}

// Run solves deals and returns one outcome per deal, in input order.
// Every search runs on its own engine, a failing deal does not stop the others.
func Run(ctx context.Context, deals []fixture.Deal, opts Options) []Outcome {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	log.Info().Int("deals", len(deals)).Int("workers", workers).Msg("batch-started")
	start := time.Now()

	outcomes := make([]Outcome, len(deals))
	g := errgroup.Group{}
	g.SetLimit(workers)
	for i, deal := range deals {
		i, deal := i, deal
		g.Go(func() error {
			outcomes[i] = solve(ctx, deal, opts)
			return nil
		})
	}
	_ = g.Wait() // workers report through their outcome

	log.Info().Dur("duration", time.Since(start)).Int("solved", Summarize(outcomes).Solved).Msg("batch-finished")
	return outcomes
}

func solve(ctx context.Context, deal fixture.Deal, opts Options) Outcome {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	o := Outcome{ID: uuid.New(), Name: deal.Name}
	start := time.Now()
	result, err := solver.Play(ctx, deal.Board, opts.Search)
	o.Duration = time.Since(start)
	o.Err = err

	if result != nil {
		o.Solved = err == nil
		if len(result.Steps) > 0 {
			o.Moves = len(result.Steps) - 1
		}
		o.Expanded = result.Expanded
		o.Visited = result.Visited
	}

	ev := log.Debug()
	if err != nil && !errors.Is(err, solver.ErrNoSolution) {
		ev = log.Error().Err(err)
	}
	ev.Str("id", o.ID.String()).Str("deal", o.Name).Bool("solved", o.Solved).
		Int("moves", o.Moves).Int("expanded", o.Expanded).Dur("duration", o.Duration).Msg("deal-finished")
	return o
}

// Summary aggregates outcomes.
type Summary struct {
	Deals    int
	Solved   int
	Expanded int
	Duration time.Duration
}

// Summarize aggregates outcomes. Duration is the sum of the search times.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Deals: len(outcomes)}
	for _, o := range outcomes {
		if o.Solved {
			s.Solved++
		}
		s.Expanded += o.Expanded
		s.Duration += o.Duration
	}
	return s
}
