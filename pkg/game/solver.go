// Package game solves qualitative parity games on symbolic graphs.
//
// A play is won by the even player when the least priority seen infinitely
// often is even. Stochastic nodes are resolved by nature, whose polarity is
// configurable, and the choices of mixed nodes belong to the even player.
package game

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	log "github.com/symbolic-mc/graphsolve/internal/logging"
	"github.com/symbolic-mc/graphsolve/pkg/attractor"
	"github.com/symbolic-mc/graphsolve/pkg/bdd"
	"github.com/symbolic-mc/graphsolve/pkg/symbolic"
	"github.com/symbolic-mc/graphsolve/pkg/symerrors"
)

var solveLevelsHistogram = prometheus.NewHistogram(prometheus.HistogramOpts{
	Name:    "graphsolve_game_solve_levels",
	Help:    "deepest priority level reached while solving a parity game",
	Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34},
})

func init() {
	prometheus.MustRegister(solveLevelsHistogram)
}

// Solver computes winning regions by peeling priorities off the game.
type Solver struct {
	cfg        *Config
	graph      *symbolic.Graph
	priorities []bdd.Func
	attractor  *attractor.Attractor

	deepest int
}

// NewSolver returns a Solver for the parity game played on g. priorities
// holds one node set per priority, indexed by priority; the sets must be
// disjoint and cover the nodes of g.
func NewSolver(g *symbolic.Graph, priorities []bdd.Func, opts ...ConfigOption) (*Solver, error) {
	covered := g.Space.Manager().False()
	for i, class := range priorities {
		if !class.DependsOnly(g.Space.Present()) {
			return nil, fmt.Errorf("priority %d must only depend on present-state variables", i)
		}
		if class.Intersects(covered) {
			for j := range i {
				if class.Intersects(priorities[j]) {
					return nil, fmt.Errorf("priorities %d and %d overlap", j, i)
				}
			}
		}
		covered = covered.Or(class)
	}
	if !g.Nodes.Implies(covered) {
		return nil, fmt.Errorf("some nodes have no priority")
	}

	return &Solver{
		cfg:        NewConfigWithOptionsAndDefaults(opts...),
		graph:      g,
		priorities: priorities,
		attractor:  attractor.New(g),
	}, nil
}

// Solve partitions the nodes of domain into the regions won by the even and
// by the odd player.
func (s *Solver) Solve(domain bdd.Func) (winEven, winOdd bdd.Func, err error) {
	s.deepest = 0
	winEven, winOdd, err = s.solve(domain.And(s.graph.Nodes), 1)
	if err != nil {
		return bdd.Func{}, bdd.Func{}, err
	}
	solveLevelsHistogram.Observe(float64(s.deepest))

	symerrors.DebugAssertf(func() bool {
		return !winEven.Intersects(winOdd) && winEven.Or(winOdd).Equal(domain.And(s.graph.Nodes))
	}, "winning regions must partition the domain")
	return winEven, winOdd, nil
}

func (s *Solver) solve(p bdd.Func, level int) (winEven, winOdd bdd.Func, err error) {
	s.deepest = max(s.deepest, level)
	none := s.graph.Space.Manager().False()
	if p.IsFalse() {
		return none, none, nil
	}

	m, parities := s.minPriority(p)
	if m < 0 {
		return bdd.Func{}, bdd.Func{}, symerrors.MustBugf("nodes without a priority reached the solver")
	}
	if parities[1] == 0 {
		return p, none, nil
	}
	if parities[0] == 0 {
		return none, p, nil
	}

	player := symbolic.Even
	if m%2 == 1 {
		player = symbolic.Odd
	}
	opponent := player.Opponent()
	log.Trace().Int("level", level).Int("priority", m).Stringer("player", player).Msg("peeling minimal priority")

	opponentWon := none
	for {
		top := s.priorities[m].And(p)
		if top.IsFalse() {
			// The minimal priority was removed with the opponent's region.
			restEven, restOdd, err := s.solve(p, level+1)
			if err != nil {
				return bdd.Func{}, bdd.Func{}, err
			}
			winEven, winOdd = s.arrange(opponent, opponentWon, restEven, restOdd)
			return winEven, winOdd, nil
		}

		a := s.attractor.Restricted(p)
		attracted := a.Attract(top, p, a.Quantify(player, s.cfg.nature(player)))

		subEven, subOdd, err := s.solve(p.Diff(attracted), level+1)
		if err != nil {
			return bdd.Func{}, bdd.Func{}, err
		}
		lost := subOdd
		if opponent == symbolic.Even {
			lost = subEven
		}
		if lost.IsFalse() {
			if player == symbolic.Even {
				return p, opponentWon, nil
			}
			return opponentWon, p, nil
		}

		grown := s.opponentRegion(a, opponent, lost, p)
		opponentWon = opponentWon.Or(grown)
		p = p.Diff(grown)
		if p.IsFalse() {
			winEven, winOdd = s.arrange(opponent, opponentWon, none, none)
			return winEven, winOdd, nil
		}
	}
}

// opponentRegion extends a region won by opponent to everything within p
// from which opponent forces it.
func (s *Solver) opponentRegion(a *attractor.Attractor, opponent symbolic.Player, won, p bdd.Func) bdd.Func {
	if s.cfg.StrictEven {
		return a.Attract(won, p, a.Quantify(opponent, s.cfg.nature(opponent)))
	}
	return weakAttractor(a, s.graph, opponent, won, p)
}

// arrange adds the region won by player to the matching side of a solved
// remainder.
func (s *Solver) arrange(player symbolic.Player, won, restEven, restOdd bdd.Func) (bdd.Func, bdd.Func) {
	if player == symbolic.Even {
		return restEven.Or(won), restOdd
	}
	return restEven, restOdd.Or(won)
}

// minPriority returns the least priority occurring in p, or -1, together with
// the number of even and odd priorities occurring in p.
func (s *Solver) minPriority(p bdd.Func) (int, [2]int) {
	m := -1
	var parities [2]int
	for i := len(s.priorities) - 1; i >= 0; i-- {
		if s.priorities[i].Intersects(p) {
			m = i
			parities[i%2]++
		}
	}
	return m, parities
}
