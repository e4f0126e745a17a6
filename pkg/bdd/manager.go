// Package bdd is the Boolean function algebra used by the symbolic engines.
//
// Functions are canonical binary decision diagrams held by a Manager. A Func
// is an immutable value: every operation returns a new Func and never mutates
// its operands. Node lifetime is handled by the backend through the Go garbage
// collector, so holding a Func keeps its diagram alive and dropping the last
// reference releases it; there is no explicit retain/release.
//
// The backend is not safe for concurrent use. All functions of a Manager must
// be used from a single goroutine at a time.
package bdd

import (
	"fmt"
	"slices"

	"github.com/dalzilio/rudd"

	"github.com/symbolic-mc/graphsolve/pkg/symerrors"
)

// Manager owns the shared table of canonical Boolean functions over a fixed
// number of variables.
type Manager struct {
	b      *rudd.BDD
	varnum int

	one  Func
	zero Func
}

// New creates a Manager with varnum variables, numbered [0, varnum).
func New(varnum int, opts ...ConfigOption) (*Manager, error) {
	if varnum <= 0 {
		return nil, fmt.Errorf("a decision diagram needs at least one variable, got %d", varnum)
	}

	cfg := NewConfigWithOptionsAndDefaults(opts...)
	backendOpts := options(rudd.Nodesize(max(cfg.NodeSize, 1)))
	if cfg.CacheSize > 0 {
		backendOpts = append(backendOpts, rudd.Cachesize(cfg.CacheSize))
	}
	if cfg.CacheRatio > 0 {
		backendOpts = append(backendOpts, rudd.Cacheratio(cfg.CacheRatio))
	}

	b, err := rudd.New(varnum, backendOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize decision diagram backend: %w", err)
	}

	m := &Manager{b: b, varnum: varnum}
	m.one = Func{m: m, n: b.True()}
	m.zero = Func{m: m, n: b.False()}
	return m, nil
}

func options[O any](opts ...O) []O {
	return opts
}

// Varnum returns the number of variables of the manager.
func (m *Manager) Varnum() int {
	return m.varnum
}

// True returns the constant true function.
func (m *Manager) True() Func {
	return m.one
}

// False returns the constant false function.
func (m *Manager) False() Func {
	return m.zero
}

// Var returns the function that is true iff variable i is set.
func (m *Manager) Var(i int) Func {
	m.checkVar(i)
	return m.wrap("ithvar", m.b.Ithvar(i))
}

// NotVar returns the function that is true iff variable i is unset.
func (m *Manager) NotVar(i int) Func {
	m.checkVar(i)
	return m.wrap("nithvar", m.b.NIthvar(i))
}

// Cube returns the variable set containing the given variables.
func (m *Manager) Cube(vars ...int) Cube {
	sorted := slices.Clone(vars)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	for _, v := range sorted {
		m.checkVar(v)
	}

	if len(sorted) == 0 {
		return Cube{m: m, n: m.one.n}
	}
	return Cube{m: m, vars: sorted, n: m.wrap("makeset", m.b.Makeset(sorted)).n}
}

// Permutation returns a renaming of variable from[i] into to[i]. The result
// of applying it is only meaningful when the function does not depend on the
// variables in to that are not also in from.
func (m *Manager) Permutation(from, to []int) (*Permutation, error) {
	if len(from) != len(to) {
		return nil, fmt.Errorf("permutation needs as many sources as targets, got %d and %d", len(from), len(to))
	}

	r, err := m.b.NewReplacer(from, to)
	if err != nil {
		return nil, fmt.Errorf("unable to build variable permutation: %w", err)
	}
	return &Permutation{m: m, r: r, from: slices.Clone(from), to: slices.Clone(to)}, nil
}

// Stats returns a human readable summary of the backend tables.
func (m *Manager) Stats() string {
	return m.b.Stats()
}

func (m *Manager) checkVar(i int) {
	if i < 0 || i >= m.varnum {
		symerrors.MustPanic("variable %d out of range [0, %d)", i, m.varnum)
	}
}

// wrap turns a backend node into a Func, raising a ResourceError when the
// backend signalled a failure by returning a nil node.
func (m *Manager) wrap(operation string, n rudd.Node) Func {
	if n == nil {
		panic(symerrors.NewResourceError(operation, m.b.Error()))
	}
	return Func{m: m, n: n}
}

// Cube is a set of variables, used for quantification and for restricting
// satisfying assignments.
type Cube struct {
	m    *Manager
	vars []int
	n    rudd.Node
}

// Vars returns the sorted variables of the cube.
func (c Cube) Vars() []int {
	return slices.Clone(c.vars)
}

// Len returns the number of variables in the cube.
func (c Cube) Len() int {
	return len(c.vars)
}

// IsEmpty returns true if the cube contains no variables.
func (c Cube) IsEmpty() bool {
	return len(c.vars) == 0
}

// Union returns the cube holding the variables of both cubes.
func (c Cube) Union(other Cube) Cube {
	return c.m.Cube(append(slices.Clone(c.vars), other.vars...)...)
}

// Complement returns the cube of every manager variable not in c.
func (c Cube) Complement() Cube {
	rest := make([]int, 0, c.m.varnum-len(c.vars))
	for v := range c.m.varnum {
		if _, found := slices.BinarySearch(c.vars, v); !found {
			rest = append(rest, v)
		}
	}
	return c.m.Cube(rest...)
}

// Permutation renames variables of a function.
type Permutation struct {
	m    *Manager
	r    rudd.Replacer
	from []int
	to   []int
}

// Inverse returns the permutation renaming to[i] back into from[i].
func (p *Permutation) Inverse() (*Permutation, error) {
	return p.m.Permutation(p.to, p.from)
}
