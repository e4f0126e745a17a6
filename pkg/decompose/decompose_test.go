package decompose_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"pgregory.net/rapid"

	"github.com/symbolic-mc/graphsolve/pkg/bdd"
	"github.com/symbolic-mc/graphsolve/pkg/decompose"
	"github.com/symbolic-mc/graphsolve/pkg/model"
	modeltesting "github.com/symbolic-mc/graphsolve/pkg/model/testing"
	"github.com/symbolic-mc/graphsolve/pkg/symbolic"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type transition struct {
	from   string
	action string
	to     []string
}

func build(t *testing.T, states []model.State, transitions []transition) *model.Encoded {
	t.Helper()
	b := model.NewBuilder()
	for _, s := range states {
		require.NoError(t, b.AddState(s))
	}
	for _, tr := range transitions {
		require.NoError(t, b.AddTransition(tr.from, tr.action, tr.to...))
	}
	e, err := b.Build()
	require.NoError(t, err)
	return e
}

func names(e *model.Encoded, components []bdd.Func) [][]string {
	out := make([][]string, 0, len(components))
	for _, c := range components {
		out = append(out, e.Names(c))
	}
	return out
}

var kernels = []struct {
	name string
	opt  decompose.ConfigOption
}{
	{"seed", decompose.WithUseFwdIntersectU(false)},
	{"fwd intersect", decompose.WithUseFwdIntersectU(true)},
}

func TestDecompose(t *testing.T) {
	tcs := []struct {
		name        string
		states      []model.State
		transitions []transition
		opts        []decompose.ConfigOption
		expected    [][]string
	}{
		{
			name:        "single self loop",
			states:      []model.State{{Name: "n"}},
			transitions: []transition{{"n", "", []string{"n"}}},
			expected:    [][]string{{"n"}},
		},
		{
			name:        "single self loop end component",
			states:      []model.State{{Name: "n"}},
			transitions: []transition{{"n", "", []string{"n"}}},
			opts:        []decompose.ConfigOption{decompose.WithMode(decompose.ModeMEC)},
			expected:    [][]string{{"n"}},
		},
		{
			name:   "two cycle",
			states: []model.State{{Name: "a", Owner: "odd", Priority: 1}, {Name: "b", Owner: "odd", Priority: 2}},
			transitions: []transition{
				{"a", "", []string{"b"}},
				{"b", "", []string{"a"}},
			},
			expected: [][]string{{"a", "b"}},
		},
		{
			name:   "chain",
			states: []model.State{{Name: "a"}, {Name: "b"}, {Name: "c"}},
			transitions: []transition{
				{"a", "", []string{"b"}},
				{"b", "", []string{"b"}},
				{"c", "", []string{"a", "c"}},
			},
			expected: [][]string{{"a"}, {"b"}, {"c"}},
		},
		{
			name:   "chain without transient components",
			states: []model.State{{Name: "a"}, {Name: "b"}, {Name: "c"}},
			transitions: []transition{
				{"a", "", []string{"b"}},
				{"b", "", []string{"b"}},
				{"c", "", []string{"a", "c"}},
			},
			opts:     []decompose.ConfigOption{decompose.WithSkipTransient(true)},
			expected: [][]string{{"b"}, {"c"}},
		},
		{
			name:   "chain bottom components",
			states: []model.State{{Name: "a"}, {Name: "b"}, {Name: "c"}},
			transitions: []transition{
				{"a", "", []string{"b"}},
				{"b", "", []string{"b"}},
				{"c", "", []string{"a", "c"}},
			},
			opts:     []decompose.ConfigOption{decompose.WithBottomOnly(true)},
			expected: [][]string{{"b"}},
		},
		{
			name:   "mixed node keeps its staying action",
			states: []model.State{{Name: "s", Owner: "mixed"}, {Name: "t", Owner: "stochastic"}, {Name: "out"}},
			transitions: []transition{
				{"s", "stay", []string{"t"}},
				{"s", "leave", []string{"out"}},
				{"t", "", []string{"s"}},
				{"out", "", []string{"out"}},
			},
			opts:     []decompose.ConfigOption{decompose.WithMode(decompose.ModeMEC)},
			expected: [][]string{{"s", "t"}, {"out"}},
		},
		{
			name:   "stochastic node leaving the candidate",
			states: []model.State{{Name: "s"}, {Name: "t", Owner: "stochastic"}, {Name: "out"}},
			transitions: []transition{
				{"s", "", []string{"t", "s"}},
				{"t", "", []string{"s", "out"}},
				{"out", "", []string{"out"}},
			},
			opts:     []decompose.ConfigOption{decompose.WithMode(decompose.ModeMEC)},
			expected: [][]string{{"s"}, {"out"}},
		},
		{
			name:   "odd node with a successor outside",
			states: []model.State{{Name: "a", Owner: "odd"}, {Name: "b", Owner: "odd"}},
			transitions: []transition{
				{"a", "", []string{"a", "b"}},
				{"b", "", []string{"b"}},
			},
			opts:     []decompose.ConfigOption{decompose.WithMode(decompose.ModeMEC)},
			expected: [][]string{{"b"}},
		},
		{
			name:   "even node with a successor outside",
			states: []model.State{{Name: "a"}, {Name: "b"}},
			transitions: []transition{
				{"a", "", []string{"a", "b"}},
				{"b", "", []string{"b"}},
			},
			opts:     []decompose.ConfigOption{decompose.WithMode(decompose.ModeMEC)},
			expected: [][]string{{"a"}, {"b"}},
		},
		{
			name:   "bottom end components",
			states: []model.State{{Name: "s"}, {Name: "t", Owner: "stochastic"}, {Name: "out"}},
			transitions: []transition{
				{"s", "", []string{"t", "s"}},
				{"t", "", []string{"s", "out"}},
				{"out", "", []string{"out"}},
			},
			opts: []decompose.ConfigOption{
				decompose.WithMode(decompose.ModeMEC),
				decompose.WithBottomOnly(true),
			},
			expected: [][]string{{"out"}},
		},
	}

	for _, tc := range tcs {
		for _, kernel := range kernels {
			t.Run(fmt.Sprintf("%s/%s", tc.name, kernel.name), func(t *testing.T) {
				e := build(t, tc.states, tc.transitions)
				opts := append([]decompose.ConfigOption{kernel.opt}, tc.opts...)
				components := slices.Collect(decompose.NewIterator(e.Graph, e.Graph.Nodes, opts...).All())
				require.ElementsMatch(t, tc.expected, names(e, components))
			})
		}
	}
}

func TestDecomposeWithinSubset(t *testing.T) {
	e := build(t,
		[]model.State{{Name: "a"}, {Name: "b"}, {Name: "c"}},
		[]transition{
			{"a", "", []string{"b"}},
			{"b", "", []string{"c"}},
			{"c", "", []string{"a"}},
		},
	)

	all := slices.Collect(decompose.NewIterator(e.Graph, e.Graph.Nodes).All())
	require.Equal(t, [][]string{{"a", "b", "c"}}, names(e, all))

	subset, err := e.Set("a", "b")
	require.NoError(t, err)
	split := slices.Collect(decompose.NewIterator(e.Graph, subset).All())
	require.ElementsMatch(t, [][]string{{"a"}, {"b"}}, names(e, split))
}

func TestIteratorIsLazy(t *testing.T) {
	e := build(t,
		[]model.State{{Name: "a"}, {Name: "b"}},
		[]transition{
			{"a", "", []string{"a", "b"}},
			{"b", "", []string{"b"}},
		},
	)

	it := decompose.NewIterator(e.Graph, e.Graph.Nodes)
	first, ok := it.Next()
	require.True(t, ok)
	require.Len(t, e.Names(first), 1)

	var rest []bdd.Func
	for c := range it.All() {
		rest = append(rest, c)
	}
	require.Len(t, rest, 1)
	require.False(t, first.Intersects(rest[0]))

	last, ok := it.Next()
	require.False(t, ok)
	require.True(t, last.IsFalse())
}

func TestComponentsMatchTarjan(t *testing.T) {
	opts := modeltesting.GraphOptions{MaxStates: 10}
	for _, kernel := range kernels {
		t.Run(kernel.name, func(t *testing.T) {
			modeltesting.CheckWithGraph(t, opts, func(t *rapid.T, g *modeltesting.Explicit, e *model.Encoded) {
				skipTransient := rapid.Bool().Draw(t, "skipTransient")

				var expected [][]string
				for _, scc := range g.SCCs(g.All()) {
					if skipTransient && len(scc) == 1 && !hasSelfLoop(g, scc[0]) {
						continue
					}
					expected = append(expected, sccNames(scc))
				}

				components := slices.Collect(decompose.NewIterator(e.Graph, e.Graph.Nodes, kernel.opt, decompose.WithSkipTransient(skipTransient)).All())
				require.ElementsMatch(t, expected, names(e, components))
			})
		})
	}
}

func TestEndComponentsMatchOracle(t *testing.T) {
	opts := modeltesting.GraphOptions{
		MaxStates:  8,
		MaxActions: 3,
		Owners:     []symbolic.Owner{symbolic.OwnerEven, symbolic.OwnerOdd, symbolic.OwnerStochastic, symbolic.OwnerMixed},
	}
	for _, kernel := range kernels {
		t.Run(kernel.name, func(t *testing.T) {
			modeltesting.CheckWithGraph(t, opts, func(t *rapid.T, g *modeltesting.Explicit, e *model.Encoded) {
				expected := make([][]string, 0)
				for _, mec := range g.MECs() {
					expected = append(expected, sccNames(mec))
				}

				components := slices.Collect(decompose.NewIterator(e.Graph, e.Graph.Nodes, kernel.opt, decompose.WithMode(decompose.ModeMEC)).All())
				require.ElementsMatch(t, expected, names(e, components))
			})
		})
	}
}

func TestParseMode(t *testing.T) {
	for _, tc := range []struct {
		name     string
		expected decompose.Mode
		err      string
	}{
		{"scc", decompose.ModeSCC, ""},
		{"MEC", decompose.ModeMEC, ""},
		{"bcc", 0, `unknown decomposition mode "bcc"`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			mode, err := decompose.ParseMode(tc.name)
			if tc.err != "" {
				require.EqualError(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, mode)
			require.Equal(t, tc.expected, must(decompose.ParseMode(mode.String())))
		})
	}
}

func TestConfigDebugMap(t *testing.T) {
	cfg := decompose.NewConfigWithOptionsAndDefaults(decompose.WithMode(decompose.ModeMEC), decompose.WithBottomOnly(true))
	debug := cfg.DebugMap()
	require.Contains(t, debug, "Mode")
	require.Contains(t, debug, "BottomOnly")
	require.Equal(t, decompose.ModeMEC, cfg.Mode)
	require.False(t, cfg.SkipTransient)
}

func hasSelfLoop(g *modeltesting.Explicit, s int) bool {
	for _, succ := range g.Successors(s) {
		if succ == s {
			return true
		}
	}
	return false
}

func sccNames(scc []int) []string {
	out := make([]string, 0, len(scc))
	for _, s := range scc {
		out = append(out, modeltesting.Name(s))
	}
	return out
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
