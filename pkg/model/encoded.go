package model

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/symbolic-mc/graphsolve/pkg/bdd"
	"github.com/symbolic-mc/graphsolve/pkg/symbolic"
)

// Encoded is an explicit graph together with its symbolic encoding.
type Encoded struct {
	Graph *symbolic.Graph

	// Priorities holds one node set per priority, indexed by priority.
	Priorities []bdd.Func

	names []string
	index map[string]int
	nodes []bdd.Func

	actions    []string
	actionSets []bdd.Func
}

// States returns the state names in declaration order.
func (e *Encoded) States() []string {
	return append([]string(nil), e.names...)
}

// Actions returns the action labels in order of first use.
func (e *Encoded) Actions() []string {
	return append([]string(nil), e.actions...)
}

// Set returns the node set holding the named states.
func (e *Encoded) Set(names ...string) (bdd.Func, error) {
	set := e.Graph.Space.Manager().False()
	for _, name := range names {
		i, ok := e.index[name]
		if !ok {
			if suggestion := e.closest(name); suggestion != "" {
				return bdd.Func{}, fmt.Errorf("unknown state `%s`; did you mean `%s`?", name, suggestion)
			}
			return bdd.Func{}, fmt.Errorf("unknown state `%s`", name)
		}
		set = set.Or(e.nodes[i])
	}
	return set, nil
}

// closest returns the declared state most similar to name, or "" if none is
// close enough to be a likely typo.
func (e *Encoded) closest(name string) string {
	ranks := fuzzy.RankFindFold(name, e.names)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDistance := "", len(name)/3+1
	for _, candidate := range e.names {
		if d := fuzzy.LevenshteinDistance(name, candidate); d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best
}

// Names returns the states of set in declaration order.
func (e *Encoded) Names(set bdd.Func) []string {
	var names []string
	for i, node := range e.nodes {
		if node.Implies(set) {
			names = append(names, e.names[i])
		}
	}
	return names
}

// Action returns the encoding of an action label over the action variables.
func (e *Encoded) Action(label string) (bdd.Func, bool) {
	for i, a := range e.actions {
		if a == label {
			return e.actionSets[i], true
		}
	}
	return bdd.Func{}, false
}
