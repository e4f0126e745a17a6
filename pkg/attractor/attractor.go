// Package attractor computes attractors: the nodes from which a target can be
// forced, under a per-node quantification of choices, within a domain.
package attractor

import (
	"github.com/prometheus/client_golang/prometheus"

	log "github.com/symbolic-mc/graphsolve/internal/logging"
	"github.com/symbolic-mc/graphsolve/pkg/bdd"
	"github.com/symbolic-mc/graphsolve/pkg/symbolic"
	"github.com/symbolic-mc/graphsolve/pkg/symerrors"
)

var attractorIterationsHistogram = prometheus.NewHistogram(prometheus.HistogramOpts{
	Name:    "graphsolve_attractor_iterations",
	Help:    "number of one-step predecessor rounds until an attractor reaches its fixpoint",
	Buckets: []float64{1, 2, 5, 10, 25, 100, 250, 1000},
})

func init() {
	prometheus.MustRegister(attractorIterationsHistogram)
}

// Attractor computes attractors over a fixed edge relation.
type Attractor struct {
	space   *symbolic.Space
	players symbolic.Players

	trans   bdd.Func
	enabled bdd.Func
}

// New returns an Attractor over the edges of g.
func New(g *symbolic.Graph) *Attractor {
	return newAttractor(g.Space, g.Players, g.Trans)
}

func newAttractor(space *symbolic.Space, players symbolic.Players, trans bdd.Func) *Attractor {
	return &Attractor{
		space:   space,
		players: players,
		trans:   trans,
		enabled: trans.Exist(space.Next()),
	}
}

// Restricted returns an Attractor over the subgraph induced by nodes.
func (a *Attractor) Restricted(nodes bdd.Func) *Attractor {
	return newAttractor(a.space, a.players, a.space.Restrict(a.trans, nodes))
}

// WithValidActions returns an Attractor in which only the node/action pairs
// of valid may be chosen.
func (a *Attractor) WithValidActions(valid bdd.Func) *Attractor {
	return newAttractor(a.space, a.players, a.trans.And(valid))
}

// Trans returns the edge relation the Attractor works on.
func (a *Attractor) Trans() bdd.Func {
	return a.trans
}

// Quantify derives a quantification from the node owners of the graph.
func (a *Attractor) Quantify(attracting symbolic.Player, nature symbolic.Polarity) Quantification {
	return Quantify(a.players, attracting, nature)
}

// Attract returns the least fixpoint containing target obtained by adding
// nodes of domain whose quantified choices lead into the fixpoint. The result
// contains target and is contained in domain ∪ target.
func (a *Attractor) Attract(target, domain bdd.Func, q Quantification) bdd.Func {
	symerrors.DebugAssertf(func() bool {
		return target.DependsOnly(a.space.Present()) && domain.DependsOnly(a.space.Present())
	}, "attractor arguments must be node sets")

	attracted := target
	remaining := domain.Diff(target)

	iterations := 0
	for !remaining.IsFalse() {
		iterations++
		added := a.cpre(attracted, remaining, q)
		if added.IsFalse() {
			break
		}
		attracted = attracted.Or(added)
		remaining = remaining.Diff(added)
	}

	attractorIterationsHistogram.Observe(float64(iterations))
	log.Trace().Int("iterations", iterations).Msg("attractor reached fixpoint")
	return attracted
}

// cpre returns the nodes of candidates attracted in one step to target.
func (a *Attractor) cpre(target, candidates bdd.Func, q Quantification) bdd.Func {
	space := a.space
	added := space.Manager().False()

	var hits, misses bdd.Func
	hitPairs := func() bdd.Func {
		if !hits.IsValid() {
			hits = a.trans.AndExist(space.ToNext(target), space.Next())
		}
		return hits
	}
	missPairs := func() bdd.Func {
		if !misses.IsValid() {
			misses = a.trans.AndExist(space.ToNext(target.Not()), space.Next())
		}
		return misses
	}

	for role := Forall; role < roleCount; role++ {
		nodes := q.Of(role).And(candidates)
		if nodes.IsFalse() {
			continue
		}

		var pre bdd.Func
		switch role {
		case Forall:
			// Some choice, and no choice that may leave the target.
			pre = a.enabled.Exist(space.Actions()).Diff(missPairs().Exist(space.Actions()))
		case Exists:
			pre = hitPairs().Exist(space.Actions())
		case ForallThenExists:
			pre = a.enabled.Diff(missPairs()).Exist(space.Actions())
		case ExistsThenForall:
			pre = a.enabled.Exist(space.Actions()).
				And(a.enabled.Not().Or(hitPairs()).Forall(space.Actions()))
		}
		added = added.Or(nodes.And(pre))
	}
	return added
}
