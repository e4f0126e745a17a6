package game

import (
	"github.com/symbolic-mc/graphsolve/pkg/attractor"
	"github.com/symbolic-mc/graphsolve/pkg/bdd"
	"github.com/symbolic-mc/graphsolve/pkg/symbolic"
)

// weakAttractor returns the nodes of domain from which player reaches target
// with probability one. Stochastic nodes move at random and mixed nodes are
// resolved by the even player.
//
// The candidate set starts at domain. Each round computes the plain attractor
// of player within the candidates, using only choices that cannot leave them,
// and peels the opponent's attractor to whatever was not attracted. The
// rounds stop once the candidates are their own attractor.
func weakAttractor(a *attractor.Attractor, g *symbolic.Graph, player symbolic.Player, target, domain bdd.Func) bdd.Func {
	space := g.Space
	owners := g.Players
	attracting := a.Quantify(player, symbolic.Exists)
	opponent := a.Quantify(player.Opponent(), symbolic.Exists)

	trans := a.Trans()
	enabled := trans.Exist(space.Next())

	target = target.And(domain)
	candidates := domain
	for {
		leaving := trans.AndExist(space.ToNext(candidates.Not()), space.Next())

		var unsafe bdd.Func
		choosing := a
		if player == symbolic.Even {
			choosing = a.WithValidActions(enabled.Diff(leaving.And(owners.Mixed)))
			unsafe = owners.Stochastic.And(leaving.Exist(space.Actions()))
		} else {
			unsafe = owners.Stochastic.Or(owners.Mixed).And(leaving.Exist(space.Actions()))
		}

		attracted := choosing.Attract(target, candidates.Diff(unsafe), attracting)
		if attracted.Equal(candidates) {
			return candidates
		}

		escape := candidates.Diff(attracted)
		candidates = candidates.Diff(a.Attract(escape, candidates.Diff(target), opponent))
	}
}
