// Package symbolic describes transition systems whose nodes and edges are
// Boolean functions, and computes images (predecessors and successors) of
// node sets through them.
//
// A node set is a function over the present-state variables. An edge relation
// is a function over present-state, next-state and, optionally, action
// variables.
package symbolic

import (
	"fmt"
	"math/big"

	"github.com/symbolic-mc/graphsolve/pkg/bdd"
	"github.com/symbolic-mc/graphsolve/pkg/symerrors"
)

// Space is the variable layout of a transition system.
type Space struct {
	m *bdd.Manager

	present bdd.Cube
	next    bdd.Cube
	actions bdd.Cube

	nextAndActions    bdd.Cube
	presentAndActions bdd.Cube
	all               bdd.Cube

	toNext    *bdd.Permutation
	toPresent *bdd.Permutation
}

// NewSpace creates a Space in which present[i] and next[i] are the two copies
// of the i-th state bit.
func NewSpace(m *bdd.Manager, present, next, actions []int) (*Space, error) {
	if len(present) == 0 {
		return nil, fmt.Errorf("a state space needs at least one present-state variable")
	}
	if len(present) != len(next) {
		return nil, fmt.Errorf("present and next variables differ in number: %d and %d", len(present), len(next))
	}

	toNext, err := m.Permutation(present, next)
	if err != nil {
		return nil, err
	}
	toPresent, err := toNext.Inverse()
	if err != nil {
		return nil, err
	}

	s := &Space{
		m:         m,
		present:   m.Cube(present...),
		next:      m.Cube(next...),
		actions:   m.Cube(actions...),
		toNext:    toNext,
		toPresent: toPresent,
	}
	if s.present.Len() != len(present) || s.next.Len() != len(next) {
		return nil, fmt.Errorf("duplicate state variables")
	}
	if s.present.Union(s.next).Union(s.actions).Len() != len(present)+len(next)+s.actions.Len() {
		return nil, fmt.Errorf("present, next and action variables must be disjoint")
	}

	s.nextAndActions = s.next.Union(s.actions)
	s.presentAndActions = s.present.Union(s.actions)
	s.all = s.presentAndActions.Union(s.next)
	return s, nil
}

func (s *Space) Manager() *bdd.Manager { return s.m }

func (s *Space) Present() bdd.Cube { return s.present }

func (s *Space) Next() bdd.Cube { return s.next }

func (s *Space) Actions() bdd.Cube { return s.actions }

// HasActions returns true if edges carry action variables.
func (s *Space) HasActions() bool { return !s.actions.IsEmpty() }

// ToNext renames a node set into the next-state variables.
func (s *Space) ToNext(nodes bdd.Func) bdd.Func {
	return nodes.Permute(s.toNext)
}

// ToPresent renames a function over next-state variables into present-state
// variables.
func (s *Space) ToPresent(f bdd.Func) bdd.Func {
	return f.Permute(s.toPresent)
}

// Pre returns the nodes with at least one edge of trans into nodes. Action
// variables of trans are eliminated along with the next-state variables.
func (s *Space) Pre(nodes, trans bdd.Func) bdd.Func {
	s.assertNodeSet(nodes)
	s.assertRelation(trans)
	return trans.AndExist(s.ToNext(nodes), s.nextAndActions)
}

// Post returns the nodes reached by at least one edge of trans from nodes.
func (s *Space) Post(nodes, trans bdd.Func) bdd.Func {
	s.assertNodeSet(nodes)
	s.assertRelation(trans)
	return s.ToPresent(trans.AndExist(nodes, s.presentAndActions))
}

// Restrict keeps the edges of trans whose source and target both lie in
// nodes.
func (s *Space) Restrict(trans, nodes bdd.Func) bdd.Func {
	s.assertNodeSet(nodes)
	return trans.And(nodes).And(s.ToNext(nodes))
}

// StripActions eliminates the action variables of trans.
func (s *Space) StripActions(trans bdd.Func) bdd.Func {
	return trans.Exist(s.actions)
}

// PickNode returns a single node of nodes, or false if nodes is empty.
func (s *Space) PickNode(nodes bdd.Func) bdd.Func {
	return nodes.PickOne(s.present)
}

// CountNodes returns the number of nodes in the set.
func (s *Space) CountNodes(nodes bdd.Func) *big.Int {
	return nodes.Count(s.present)
}

func (s *Space) assertNodeSet(nodes bdd.Func) {
	symerrors.DebugAssertf(func() bool { return nodes.DependsOnly(s.present) },
		"node set depends on non present-state variables")
}

func (s *Space) assertRelation(trans bdd.Func) {
	symerrors.DebugAssertf(func() bool { return trans.DependsOnly(s.all) },
		"edge relation depends on variables outside of the state space")
}
