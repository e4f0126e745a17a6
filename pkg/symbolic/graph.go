package symbolic

import (
	"fmt"

	"github.com/symbolic-mc/graphsolve/pkg/bdd"
)

// Graph is a symbolic transition system together with its node ownership.
// It is a read-only view shared by every analysis run on the system.
type Graph struct {
	Space *Space

	// Trans is the edge relation over present, action and next variables.
	Trans bdd.Func

	// Nodes is the node set of the system. Edges leaving Nodes are ignored.
	Nodes bdd.Func

	// Initial nodes are preferred when a decomposition picks a seed.
	Initial bdd.Func

	Players Players
}

// NewGraph validates and returns a Graph.
func NewGraph(space *Space, trans, nodes, initial bdd.Func, players Players) (*Graph, error) {
	if !trans.DependsOnly(space.all) {
		return nil, fmt.Errorf("edge relation depends on variables outside of the state space")
	}
	if !nodes.DependsOnly(space.present) || !initial.DependsOnly(space.present) {
		return nil, fmt.Errorf("node sets must only depend on present-state variables")
	}
	if !initial.Implies(nodes) {
		return nil, fmt.Errorf("initial nodes must be part of the node set")
	}
	if err := players.Validate(nodes); err != nil {
		return nil, err
	}

	return &Graph{
		Space:   space,
		Trans:   space.Restrict(trans, nodes),
		Nodes:   nodes,
		Initial: initial,
		Players: players,
	}, nil
}

// Edges returns the action-free edge relation.
func (g *Graph) Edges() bdd.Func {
	return g.Space.StripActions(g.Trans)
}

// Enabled returns the node/action pairs that have at least one successor.
func (g *Graph) Enabled() bdd.Func {
	return g.Trans.Exist(g.Space.Next())
}

// Deadlocks returns the nodes without successors.
func (g *Graph) Deadlocks() bdd.Func {
	return g.Nodes.Diff(g.Space.Pre(g.Nodes, g.Trans))
}
