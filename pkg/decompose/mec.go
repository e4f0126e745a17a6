package decompose

import (
	log "github.com/symbolic-mc/graphsolve/internal/logging"
	"github.com/symbolic-mc/graphsolve/pkg/bdd"
)

// acceptEndComponent refines a strongly connected candidate into an end
// component. A candidate that loses neither nodes nor choices is a maximal
// end component. Otherwise what is left of it may still contain end
// components and is searched again once the current search is exhausted.
func (it *Iterator) acceptEndComponent(candidate bdd.Func) (bdd.Func, bool) {
	if candidate.IsFalse() {
		return it.none, false
	}

	refined, choicesRemoved := it.refine(candidate)
	if refined.IsFalse() {
		return it.none, false
	}

	if !choicesRemoved && refined.Equal(candidate) {
		if it.cfg.BottomOnly && !it.isBottom(refined) {
			return it.none, false
		}
		return refined, true
	}

	it.recheck = it.recheck.Or(refined)
	return it.none, false
}

// refine removes from candidate the choices that may leave it, then the
// nodes unable to stay inside, until nothing changes. Even nodes stay with
// one successor inside. Odd and stochastic nodes stay when all of their
// successors are inside. Mixed nodes stay when one of their valid actions
// keeps all outcomes inside.
func (it *Iterator) refine(candidate bdd.Func) (bdd.Func, bool) {
	space := it.space
	players := it.graph.Players
	trans := it.graph.Trans
	actions := space.Actions()
	forced := players.Odd.Or(players.Stochastic)

	removed := false
	current := candidate
	for {
		leaving := trans.AndExist(space.ToNext(current.Not()), space.Next()).And(current)
		if dropped := leaving.And(players.Mixed).And(it.valid); !dropped.IsFalse() {
			it.valid = it.valid.Diff(dropped)
			removed = true
		}

		hasChoice := it.valid.Exist(actions)
		stay := players.Even.And(space.Pre(current, trans.And(it.valid))).
			Or(forced.And(hasChoice).Diff(leaving.Exist(actions))).
			Or(players.Mixed.And(hasChoice))

		next := current.And(stay)
		if next.Equal(current) {
			return current, removed
		}
		current = next
	}
}

// restartOnRecheck starts a new search over the refined candidates, using
// only the choices that are still valid.
func (it *Iterator) restartOnRecheck() {
	pool := it.recheck
	it.recheck = it.none
	mecRechecksCounter.Inc()
	log.Trace().Msg("searching refined end component candidates again")

	edges := it.space.StripActions(it.graph.Trans.And(it.valid))
	it.push(frame{
		phase: descend,
		nodes: pool,
		edges: it.space.Restrict(edges, pool),
		spine: Spine{Set: it.none, Node: it.none},
	})
}
