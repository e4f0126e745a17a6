package testing

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/symbolic-mc/graphsolve/pkg/model"
	"github.com/symbolic-mc/graphsolve/pkg/symbolic"
)

// Explicit is a small explicit game graph, used to cross-check the symbolic
// engines against straightforward enumerative algorithms.
type Explicit struct {
	Owners     []symbolic.Owner
	Priorities []int

	// Choices[s][a] lists the successors of s under its a-th action.
	Choices [][][]int
}

// GraphOptions bounds the graphs drawn by DrawGraph.
type GraphOptions struct {
	MaxStates   int
	MaxActions  int
	MaxPriority int

	// Owners are the owners nodes are drawn from. Defaults to even only.
	Owners []symbolic.Owner

	// Total makes every node have at least one successor.
	Total bool
}

// Name returns the state name of node i.
func Name(i int) string {
	return "s" + strconv.Itoa(i)
}

// Len returns the number of nodes.
func (g *Explicit) Len() int {
	return len(g.Owners)
}

// Successors returns the successors of s over all of its actions.
func (g *Explicit) Successors(s int) []int {
	seen := make([]bool, g.Len())
	var succ []int
	for _, targets := range g.Choices[s] {
		for _, t := range targets {
			if !seen[t] {
				seen[t] = true
				succ = append(succ, t)
			}
		}
	}
	return succ
}

// Encode builds the symbolic encoding of the graph.
func (g *Explicit) Encode(t require.TestingT) *model.Encoded {
	b := model.NewBuilder()
	for i, owner := range g.Owners {
		require.NoError(t, b.AddState(model.State{
			Name:     Name(i),
			Owner:    owner.String(),
			Initial:  i == 0,
			Priority: g.Priorities[i],
		}))
	}
	for s, choices := range g.Choices {
		for a, targets := range choices {
			names := make([]string, 0, len(targets))
			for _, target := range targets {
				names = append(names, Name(target))
			}
			require.NoError(t, b.AddTransition(Name(s), "a"+strconv.Itoa(a), names...))
		}
	}

	e, err := b.Build()
	require.NoError(t, err)
	return e
}

// Names returns the state names of the members of nodes.
func Names(nodes []bool) []string {
	var names []string
	for i, in := range nodes {
		if in {
			names = append(names, Name(i))
		}
	}
	return names
}

// DrawGraph draws a random explicit graph.
func DrawGraph(t *rapid.T, opts GraphOptions) *Explicit {
	owners := opts.Owners
	if len(owners) == 0 {
		owners = []symbolic.Owner{symbolic.OwnerEven}
	}
	maxStates := max(opts.MaxStates, 1)
	maxActions := max(opts.MaxActions, 1)

	n := rapid.IntRange(1, maxStates).Draw(t, "states")
	g := &Explicit{
		Owners:     make([]symbolic.Owner, n),
		Priorities: make([]int, n),
		Choices:    make([][][]int, n),
	}

	minSucc := 0
	if opts.Total {
		minSucc = 1
	}

	target := rapid.IntRange(0, n-1)
	for s := range n {
		label := Name(s)
		g.Owners[s] = rapid.SampledFrom(owners).Draw(t, label+"-owner")
		g.Priorities[s] = rapid.IntRange(0, max(opts.MaxPriority, 0)).Draw(t, label+"-priority")

		actions := 1
		if g.Owners[s] == symbolic.OwnerMixed {
			actions = rapid.IntRange(1, maxActions).Draw(t, label+"-actions")
		}
		for a := range actions {
			succ := rapid.SliceOfNDistinct(target, minSucc, min(n, 3), rapid.ID[int]).
				Draw(t, label+"-a"+strconv.Itoa(a))
			if len(succ) > 0 {
				g.Choices[s] = append(g.Choices[s], succ)
			}
		}
	}
	return g
}

// CheckWithGraph runs handler against random graphs and their encodings.
func CheckWithGraph(t *testing.T, opts GraphOptions, handler func(t *rapid.T, g *Explicit, e *model.Encoded)) {
	t.Helper()
	rapid.Check(t, func(t *rapid.T) {
		g := DrawGraph(t, opts)
		handler(t, g, g.Encode(t))
	})
}
