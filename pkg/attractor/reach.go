package attractor

import (
	"github.com/symbolic-mc/graphsolve/pkg/bdd"
	"github.com/symbolic-mc/graphsolve/pkg/symbolic"
)

// ReachPre returns the nodes of domain from which target is reached without
// passing through blocked.
//
// With almostSure unset the result holds the nodes reaching target with
// positive probability, under the best (or with minimize, the worst)
// resolution of the even player's choices. With almostSure set the target
// must be reached with probability one. The odd player always opposes the
// even player.
func (a *Attractor) ReachPre(target, domain, blocked bdd.Func, minimize, almostSure bool) bdd.Func {
	allowed := domain.Diff(blocked)
	target = target.And(allowed)

	switch {
	case !almostSure && !minimize:
		return a.Attract(target, allowed, a.Quantify(symbolic.Even, symbolic.Exists))

	case !almostSure:
		return a.Attract(target, allowed, a.Quantify(symbolic.Odd, symbolic.Exists))

	case minimize:
		// Nodes from which the even player can avoid target forever with
		// positive probability are those reaching, with positive
		// probability, a node where even the worst resolution never
		// reaches target.
		never := domain.Diff(a.Attract(target, allowed, a.Quantify(symbolic.Odd, symbolic.Exists)))
		escape := a.Attract(never, domain.Diff(target), a.Quantify(symbolic.Even, symbolic.Exists))
		return domain.Diff(escape)

	default:
		return a.almostSureMax(target, allowed)
	}
}

// almostSureMax shrinks the candidate set until every candidate reaches
// target with positive probability using only choices that cannot leave the
// candidate set.
func (a *Attractor) almostSureMax(target, allowed bdd.Func) bdd.Func {
	space := a.space
	q := a.Quantify(symbolic.Even, symbolic.Exists)

	candidates := allowed
	for {
		leaving := a.trans.AndExist(space.ToNext(candidates.Not()), space.Next())

		mixedSafe := a.trans.And(a.players.Mixed).Diff(leaving)
		trans := a.trans.Diff(a.players.Mixed).Or(mixedSafe)
		domain := candidates.Diff(a.players.Stochastic.And(leaving.Exist(space.Actions())))

		next := newAttractor(space, a.players, trans).Attract(target.And(candidates), domain, q)
		if next.Equal(candidates) {
			return candidates
		}
		candidates = next
	}
}
