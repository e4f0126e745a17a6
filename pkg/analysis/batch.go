package analysis

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	log "github.com/symbolic-mc/graphsolve/internal/logging"
	"github.com/symbolic-mc/graphsolve/pkg/bdd"
	"github.com/symbolic-mc/graphsolve/pkg/symerrors"
)

// Result is the outcome of running a query against one model file.
type Result[T any] struct {
	Path  string
	Value T
}

// Query runs against the Analyzer of a single model.
type Query[T any] func(ctx context.Context, a *Analyzer) (T, error)

// RunAll opens every model file and runs query against each of them, with at
// most concurrency models in flight. Every model gets its own decision
// diagram manager, so queries never share symbolic state. Results are
// returned in the order of paths; the first error cancels the remaining
// queries.
func RunAll[T any](ctx context.Context, paths []string, concurrency int, query Query[T], opts ...bdd.ConfigOption) ([]Result[T], error) {
	results := make([]Result[T], len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			logger := log.Component("analysis").With().Str("path", path).Logger()
			ctx := logger.WithContext(ctx)

			a, err := Open(path, opts...)
			if err != nil {
				warnOnResourceError(ctx, err)
				return err
			}

			value, err := query(ctx, a)
			if err != nil {
				warnOnResourceError(ctx, err)
				return fmt.Errorf("error when analyzing model file %s: %w", path, err)
			}

			results[i] = Result[T]{Path: path, Value: value}
			log.Ctx(ctx).Trace().Msg("analyzed model")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func warnOnResourceError(ctx context.Context, err error) {
	if rerr, ok := symerrors.AsResourceError(err); ok {
		log.Ctx(ctx).Warn().
			Str("operation", rerr.Operation).
			Msg("decision diagram tables exhausted, consider raising the node or cache size")
	}
}
