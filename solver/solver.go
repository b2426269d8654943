// Package solver is the embedding boundary of the solver: it accepts a
// serialized board and returns the serialized solution.
package solver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/board"
	engine "github.com/Barabas5532/shenzhen-solitaire-solver/internal/solver"
	"github.com/rs/zerolog/log"
)

var (
	// ErrMalformed is returned for input that is not a valid serialized board.
	ErrMalformed = board.ErrMalformed
	// ErrNoSolution is returned if no solution was found.
	ErrNoSolution = engine.ErrNoSolution
	// ErrInternal is returned if the search aborted on an internal inconsistency.
	ErrInternal = errors.New("internal solver error")
)

// Options configures a search.
type Options = engine.Options

// Result is the outcome of a search.
type Result = engine.Result

// Step is one element of a solution.
type Step = engine.Step

// Play searches a solution for b. Internal inconsistencies abort the
// search and are reported as ErrInternal.
func Play(ctx context.Context, b *board.Board, opts Options) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("search-aborted")
			result, err = nil, fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()
	return engine.New(opts).Play(ctx, b)
}

// Solve decodes a serialized board, searches a solution and returns it as
// a JSON array of {"state", "move"} objects starting with the initial
// board. If no solution is found it returns JSON null and ErrNoSolution.
func Solve(ctx context.Context, data []byte, opts Options) ([]byte, error) {
	b, err := board.Parse(data)
	if err != nil {
		return nil, err
	}

	result, err := Play(ctx, b, opts)
	if errors.Is(err, ErrNoSolution) {
		return []byte("null"), err
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(result.Steps)
}

// DecodeSolution decodes the output of Solve. A null solution decodes to nil.
func DecodeSolution(data []byte) ([]Step, error) {
	var steps []Step
	if err := json.Unmarshal(data, &steps); err != nil {
		return nil, err
	}
	return steps, nil
}
