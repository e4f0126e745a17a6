// Package analysis runs the symbolic engines on explicit models and reports
// results by state name.
package analysis

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	log "github.com/symbolic-mc/graphsolve/internal/logging"
	"github.com/symbolic-mc/graphsolve/pkg/attractor"
	"github.com/symbolic-mc/graphsolve/pkg/bdd"
	"github.com/symbolic-mc/graphsolve/pkg/decompose"
	"github.com/symbolic-mc/graphsolve/pkg/game"
	"github.com/symbolic-mc/graphsolve/pkg/genutil/slicez"
	"github.com/symbolic-mc/graphsolve/pkg/model"
	"github.com/symbolic-mc/graphsolve/pkg/symerrors"
)

var tracer = otel.Tracer("graphsolve/pkg/analysis")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Analyzer answers queries about a single encoded model. An Analyzer must not
// be used from several goroutines at once.
type Analyzer struct {
	model *model.Encoded
}

// New returns an Analyzer for an encoded model.
func New(e *model.Encoded) *Analyzer {
	return &Analyzer{model: e}
}

// Open loads, validates and encodes the model file at path.
func Open(path string, opts ...bdd.ConfigOption) (a *Analyzer, err error) {
	defer symerrors.RecoverResource(&err)

	doc, err := model.Load(path)
	if err != nil {
		return nil, err
	}

	e, err := doc.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("error when encoding model file %s: %w", path, err)
	}
	return New(e), nil
}

// Model returns the encoded model.
func (a *Analyzer) Model() *model.Encoded {
	return a.model
}

// Components returns the components of the model, each as the names of its
// states in declaration order.
func (a *Analyzer) Components(ctx context.Context, opts ...decompose.ConfigOption) (components [][]string, err error) {
	cfg := decompose.NewConfigWithOptionsAndDefaults(opts...)
	ctx, span := tracer.Start(ctx, "Components", trace.WithAttributes(
		attribute.String("mode", cfg.Mode.String()),
	))
	defer span.End()
	defer symerrors.RecoverResource(&err)

	g := a.model.Graph
	var found []bdd.Func
	for component := range decompose.NewIterator(g, g.Nodes, cfg.ToOption()).All() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found = append(found, component)
	}
	components = slicez.Map(found, a.model.Names)

	span.SetAttributes(attribute.Int("components", len(components)))
	log.Ctx(ctx).Debug().
		Str("mode", cfg.Mode.String()).
		Int("components", len(components)).
		Str("nodes", humanize.BigComma(g.Space.CountNodes(g.Nodes))).
		Msg("decomposed model")
	return components, nil
}

// GameResult holds the regions won by each player.
type GameResult struct {
	Even []string
	Odd  []string
}

// SolveGame solves the parity game given by the state priorities of the
// model.
func (a *Analyzer) SolveGame(ctx context.Context, opts ...game.ConfigOption) (result GameResult, err error) {
	ctx, span := tracer.Start(ctx, "SolveGame")
	defer span.End()
	defer symerrors.RecoverResource(&err)

	g := a.model.Graph
	solver, err := game.NewSolver(g, a.model.Priorities, opts...)
	if err != nil {
		return GameResult{}, err
	}
	if deadlocks := g.Deadlocks(); !deadlocks.IsFalse() {
		log.Ctx(ctx).Warn().Strs("states", a.model.Names(deadlocks)).Msg("game has states without successors")
	}

	even, odd, err := solver.Solve(g.Nodes)
	if err != nil {
		return GameResult{}, err
	}
	result = GameResult{Even: a.model.Names(even), Odd: a.model.Names(odd)}

	span.SetAttributes(
		attribute.Int("even", len(result.Even)),
		attribute.Int("odd", len(result.Odd)),
	)
	log.Ctx(ctx).Debug().Int("even", len(result.Even)).Int("odd", len(result.Odd)).Msg("solved game")
	return result, nil
}

// ReachRequest describes a reachability query.
type ReachRequest struct {
	// Target names the states to reach.
	Target []string `validate:"required,min=1,dive,required"`

	// Blocked names the states that must not be passed through.
	Blocked []string `validate:"dive,required"`

	// Domain restricts the query to the named states. Empty means every
	// state.
	Domain []string `validate:"dive,required"`

	// Minimize asks for the worst resolution of the even player's choices.
	Minimize bool

	// AlmostSure asks for reaching the target with probability one.
	AlmostSure bool
}

// Reach returns the states from which the request's target is reached.
func (a *Analyzer) Reach(ctx context.Context, req ReachRequest) (states []string, err error) {
	ctx, span := tracer.Start(ctx, "Reach", trace.WithAttributes(
		attribute.Bool("minimize", req.Minimize),
		attribute.Bool("almost-sure", req.AlmostSure),
	))
	defer span.End()
	defer symerrors.RecoverResource(&err)

	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid reach request: %w", err)
	}

	target, err := a.model.Set(req.Target...)
	if err != nil {
		return nil, err
	}
	blocked, err := a.model.Set(req.Blocked...)
	if err != nil {
		return nil, err
	}

	g := a.model.Graph
	domain := g.Nodes
	if len(req.Domain) > 0 {
		if domain, err = a.model.Set(req.Domain...); err != nil {
			return nil, err
		}
	}

	reached := attractor.New(g).ReachPre(target, domain, blocked, req.Minimize, req.AlmostSure)
	states = a.model.Names(reached)

	span.SetAttributes(attribute.Int("states", len(states)))
	log.Ctx(ctx).Debug().Int("states", len(states)).Msg("computed reachability")
	return states, nil
}
