package bdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, varnum int) *Manager {
	t.Helper()
	m, err := New(varnum, WithNodeSize(1000), WithCacheSize(500))
	require.NoError(t, err)
	return m
}

func TestNewRejectsEmptyManager(t *testing.T) {
	_, err := New(0)
	require.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	cfg := NewConfigWithOptionsAndDefaults()
	require.Equal(t, 10000, cfg.NodeSize)
	require.Equal(t, 5000, cfg.CacheSize)

	cfg = NewConfigWithOptionsAndDefaults(WithNodeSize(42))
	require.Equal(t, 42, cfg.NodeSize)
	require.Contains(t, cfg.DebugMap(), "NodeSize")
}

func TestConstants(t *testing.T) {
	m := newTestManager(t, 2)

	require.True(t, m.True().IsTrue())
	require.True(t, m.False().IsFalse())
	require.True(t, m.True().Not().IsFalse())
	require.False(t, m.Var(0).IsFalse())
	require.False(t, m.Var(0).IsTrue())
	require.True(t, m.Var(0).And(m.NotVar(0)).IsFalse())
	require.True(t, m.Var(0).Or(m.NotVar(0)).IsTrue())
}

func TestConnectives(t *testing.T) {
	m := newTestManager(t, 3)
	x, y := m.Var(0), m.Var(1)

	tcs := []struct {
		name     string
		got      Func
		expected Func
	}{
		{"and commutes", x.And(y), y.And(x)},
		{"or commutes", x.Or(y), y.Or(x)},
		{"de morgan", x.And(y).Not(), x.Not().Or(y.Not())},
		{"diff", x.Diff(y), x.And(y.Not())},
		{"absorption", x.Or(x.And(y)), x},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.True(t, tc.got.Equal(tc.expected))
		})
	}

	require.True(t, x.And(y).Implies(x))
	require.False(t, x.Implies(x.And(y)))
	require.True(t, x.Intersects(y))
	require.False(t, x.Intersects(x.Not()))
}

func TestQuantification(t *testing.T) {
	m := newTestManager(t, 3)
	x, y, z := m.Var(0), m.Var(1), m.Var(2)
	onlyY := m.Cube(1)

	f := x.And(y).Or(z.And(y.Not()))

	require.True(t, f.Exist(onlyY).Equal(x.Or(z)))
	require.True(t, f.Forall(onlyY).Equal(x.And(z)))
	require.True(t, f.Exist(m.Cube()).Equal(f))
	require.True(t, f.Forall(m.Cube()).Equal(f))

	require.True(t, x.AndExist(y, onlyY).Equal(x))
	require.True(t, x.AndExist(y.Not().And(y), onlyY).IsFalse())
	require.True(t, x.AndExist(z, m.Cube()).Equal(x.And(z)))
}

func TestCube(t *testing.T) {
	m := newTestManager(t, 4)

	c := m.Cube(2, 0, 2)
	require.Equal(t, []int{0, 2}, c.Vars())
	require.Equal(t, 2, c.Len())
	require.False(t, c.IsEmpty())
	require.True(t, m.Cube().IsEmpty())
	require.Equal(t, []int{1, 3}, c.Complement().Vars())
	require.Equal(t, []int{0, 1, 2}, c.Union(m.Cube(1)).Vars())

	require.Panics(t, func() { m.Cube(4) })
}

func TestPermute(t *testing.T) {
	m := newTestManager(t, 4)

	toOdd, err := m.Permutation([]int{0, 2}, []int{1, 3})
	require.NoError(t, err)
	back, err := toOdd.Inverse()
	require.NoError(t, err)

	f := m.Var(0).And(m.NotVar(2))
	moved := f.Permute(toOdd)
	require.True(t, moved.Equal(m.Var(1).And(m.NotVar(3))))
	require.True(t, moved.Permute(back).Equal(f))

	_, err = m.Permutation([]int{0}, []int{1, 2})
	require.Error(t, err)
}

func TestPickOne(t *testing.T) {
	m := newTestManager(t, 4)
	present := m.Cube(0, 2)

	t.Run("from false", func(t *testing.T) {
		require.True(t, m.False().PickOne(present).IsFalse())
	})

	t.Run("single minterm", func(t *testing.T) {
		f := m.Var(0).Or(m.Var(2))
		picked := f.PickOne(present)
		require.True(t, picked.Implies(f))
		require.Equal(t, int64(1), picked.Count(present).Int64())
	})

	t.Run("from true", func(t *testing.T) {
		picked := m.True().PickOne(present)
		require.True(t, picked.Equal(m.NotVar(0).And(m.NotVar(2))))
	})

	t.Run("projects other variables", func(t *testing.T) {
		f := m.Var(0).And(m.Var(1))
		picked := f.PickOne(present)
		require.True(t, picked.Implies(m.Var(0)))
		require.True(t, picked.DependsOnly(present))
	})
}

func TestCount(t *testing.T) {
	m := newTestManager(t, 4)
	present := m.Cube(0, 2)

	require.Equal(t, int64(0), m.False().Count(present).Int64())
	require.Equal(t, int64(4), m.True().Count(present).Int64())
	require.Equal(t, int64(3), m.Var(0).Or(m.Var(2)).Count(present).Int64())
	require.Equal(t, int64(16), m.True().Count(m.Cube(0, 1, 2, 3)).Int64())
}

func TestDependsOnly(t *testing.T) {
	m := newTestManager(t, 4)

	require.True(t, m.Var(0).And(m.Var(2)).DependsOnly(m.Cube(0, 2)))
	require.False(t, m.Var(0).And(m.Var(1)).DependsOnly(m.Cube(0, 2)))
	require.True(t, m.True().DependsOnly(m.Cube()))
}

func TestNodeCount(t *testing.T) {
	m := newTestManager(t, 3)

	require.Positive(t, m.Var(0).NodeCount())
	require.GreaterOrEqual(t, m.Var(0).And(m.Var(1)).NodeCount(), m.Var(0).NodeCount())
}
