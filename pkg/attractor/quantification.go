package attractor

import (
	"fmt"

	"github.com/symbolic-mc/graphsolve/pkg/bdd"
	"github.com/symbolic-mc/graphsolve/pkg/symbolic"
)

// Role selects how a node's choices are quantified when deciding whether the
// node is attracted to the current target.
type Role int

const (
	// Forall nodes are attracted when every successor, under every action,
	// lies in the target.
	Forall Role = iota

	// Exists nodes are attracted when some successor, under some action, lies
	// in the target.
	Exists

	// ForallThenExists nodes are attracted when some valid action has all of
	// its successors in the target.
	ForallThenExists

	// ExistsThenForall nodes are attracted when every valid action has some
	// successor in the target.
	ExistsThenForall

	roleCount
)

func (r Role) String() string {
	switch r {
	case Forall:
		return "forall"
	case Exists:
		return "exists"
	case ForallThenExists:
		return "forall-then-exists"
	case ExistsThenForall:
		return "exists-then-forall"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Quantification assigns a Role to each node. Nodes absent from every role
// are never attracted unless they are part of the target.
type Quantification struct {
	roles [roleCount]bdd.Func
}

// NewQuantification returns a quantification assigning no role to any node.
func NewQuantification(m *bdd.Manager) Quantification {
	var q Quantification
	for i := range q.roles {
		q.roles[i] = m.False()
	}
	return q
}

// With returns a copy of q in which nodes additionally carry role.
func (q Quantification) With(role Role, nodes bdd.Func) Quantification {
	q.roles[role] = q.roles[role].Or(nodes)
	return q
}

// Of returns the nodes carrying role.
func (q Quantification) Of(role Role) bdd.Func {
	return q.roles[role]
}

// Quantify derives the quantification used when player attracts towards a
// target. The attracting player's nodes are existential and its opponent's
// nodes universal. Stochastic nodes follow nature. The action choice of mixed
// nodes belongs to the even player, while their outcome follows nature.
func Quantify(players symbolic.Players, attracting symbolic.Player, nature symbolic.Polarity) Quantification {
	q := NewQuantification(players.Even.Manager()).
		With(Exists, players.Choosing(attracting)).
		With(Forall, players.Choosing(attracting.Opponent()))

	if nature == symbolic.Exists {
		q = q.With(Exists, players.Stochastic)
	} else {
		q = q.With(Forall, players.Stochastic)
	}

	switch {
	case attracting == symbolic.Even && nature == symbolic.Exists:
		q = q.With(Exists, players.Mixed)
	case attracting == symbolic.Even:
		q = q.With(ForallThenExists, players.Mixed)
	case nature == symbolic.Exists:
		q = q.With(ExistsThenForall, players.Mixed)
	default:
		q = q.With(Forall, players.Mixed)
	}
	return q
}
