package symbolic

import (
	"fmt"
	"strings"

	"github.com/symbolic-mc/graphsolve/pkg/bdd"
)

// Owner identifies who resolves the choice at a node.
type Owner int

const (
	// OwnerEven nodes pick a successor on behalf of the even player.
	OwnerEven Owner = iota

	// OwnerOdd nodes pick a successor on behalf of the odd player.
	OwnerOdd

	// OwnerStochastic nodes move to a random successor.
	OwnerStochastic

	// OwnerMixed nodes pick an action on behalf of the even player, after
	// which a random successor of that action is taken.
	OwnerMixed
)

var ownerNames = map[Owner]string{
	OwnerEven:       "even",
	OwnerOdd:        "odd",
	OwnerStochastic: "stochastic",
	OwnerMixed:      "mixed",
}

func (o Owner) String() string {
	if name, ok := ownerNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Owner(%d)", int(o))
}

// ParseOwner parses an owner name. The player aliases "protagonist" and
// "adversary" are accepted for even and odd.
func ParseOwner(name string) (Owner, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "even", "protagonist":
		return OwnerEven, nil
	case "odd", "adversary":
		return OwnerOdd, nil
	case "stochastic", "random":
		return OwnerStochastic, nil
	case "mixed", "nondeterministic":
		return OwnerMixed, nil
	default:
		return 0, fmt.Errorf("unknown node owner %q", name)
	}
}

// Player is one of the two players of a game.
type Player int

const (
	Even Player = iota
	Odd
)

// Opponent returns the other player.
func (p Player) Opponent() Player {
	if p == Even {
		return Odd
	}
	return Even
}

func (p Player) String() string {
	if p == Even {
		return "even"
	}
	return "odd"
}

// Polarity selects how random choices are quantified.
type Polarity int

const (
	// Exists treats a random choice as possibly going anywhere useful.
	Exists Polarity = iota

	// Forall treats a random choice as possibly going anywhere harmful.
	Forall
)

// Dual returns the opposite polarity.
func (p Polarity) Dual() Polarity {
	if p == Exists {
		return Forall
	}
	return Exists
}

func (p Polarity) String() string {
	if p == Exists {
		return "exists"
	}
	return "forall"
}

// ParsePolarity parses "exists" or "forall".
func ParsePolarity(name string) (Polarity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "exists", "exist", "some":
		return Exists, nil
	case "forall", "all":
		return Forall, nil
	default:
		return 0, fmt.Errorf("unknown polarity %q", name)
	}
}

// Players partitions the nodes of a graph by owner.
type Players struct {
	Even       bdd.Func
	Odd        bdd.Func
	Stochastic bdd.Func
	Mixed      bdd.Func
}

// OwnedBy returns a labeling in which every node of nodes has the given owner.
func OwnedBy(owner Owner, nodes bdd.Func) Players {
	none := nodes.Manager().False()
	p := Players{Even: none, Odd: none, Stochastic: none, Mixed: none}
	switch owner {
	case OwnerEven:
		p.Even = nodes
	case OwnerOdd:
		p.Odd = nodes
	case OwnerStochastic:
		p.Stochastic = nodes
	case OwnerMixed:
		p.Mixed = nodes
	}
	return p
}

// Of returns the nodes with the given owner.
func (p Players) Of(owner Owner) bdd.Func {
	switch owner {
	case OwnerEven:
		return p.Even
	case OwnerOdd:
		return p.Odd
	case OwnerStochastic:
		return p.Stochastic
	default:
		return p.Mixed
	}
}

// Choosing returns the nodes at which the given player picks a successor
// directly.
func (p Players) Choosing(player Player) bdd.Func {
	if player == Even {
		return p.Even
	}
	return p.Odd
}

// All returns the union of all labeled nodes.
func (p Players) All() bdd.Func {
	return p.Even.Or(p.Odd).Or(p.Stochastic).Or(p.Mixed)
}

// Validate checks that the four owner sets are pairwise disjoint and cover
// nodes.
func (p Players) Validate(nodes bdd.Func) error {
	sets := []Owner{OwnerEven, OwnerOdd, OwnerStochastic, OwnerMixed}
	for i, a := range sets {
		for _, b := range sets[i+1:] {
			if p.Of(a).Intersects(p.Of(b)) {
				return fmt.Errorf("nodes are owned by both %s and %s", a, b)
			}
		}
	}
	if !nodes.Implies(p.All()) {
		return fmt.Errorf("some nodes have no owner")
	}
	return nil
}
