package bdd

import (
	"errors"
	"math/big"
	"slices"

	"github.com/dalzilio/rudd"

	"github.com/symbolic-mc/graphsolve/pkg/symerrors"
)

var errAssignmentFound = errors.New("assignment found")

// Func is a Boolean function held by a Manager.
type Func struct {
	m *Manager
	n rudd.Node
}

// Manager returns the manager holding the function.
func (f Func) Manager() *Manager {
	return f.m
}

// IsValid returns false for the zero Func.
func (f Func) IsValid() bool {
	return f.m != nil && f.n != nil
}

// IsFalse returns true if the function is the constant false.
func (f Func) IsFalse() bool {
	return *f.n == *f.m.zero.n
}

// IsTrue returns true if the function is the constant true.
func (f Func) IsTrue() bool {
	return *f.n == *f.m.one.n
}

// Equal returns true if both functions are the same canonical diagram.
func (f Func) Equal(g Func) bool {
	f.sameManager(g)
	return *f.n == *g.n
}

func (f Func) And(g Func) Func {
	f.sameManager(g)
	return f.m.wrap("and", f.m.b.And(f.n, g.n))
}

func (f Func) Or(g Func) Func {
	f.sameManager(g)
	return f.m.wrap("or", f.m.b.Or(f.n, g.n))
}

func (f Func) Not() Func {
	return f.m.wrap("not", f.m.b.Not(f.n))
}

// Diff returns f ∧ ¬g.
func (f Func) Diff(g Func) Func {
	f.sameManager(g)
	return f.m.wrap("diff", f.m.b.And(f.n, f.m.b.Not(g.n)))
}

// Implies returns true if every assignment satisfying f satisfies g.
func (f Func) Implies(g Func) bool {
	return f.Diff(g).IsFalse()
}

// Intersects returns true if f ∧ g is satisfiable.
func (f Func) Intersects(g Func) bool {
	return !f.And(g).IsFalse()
}

// Exist eliminates the variables of c existentially.
func (f Func) Exist(c Cube) Func {
	if c.IsEmpty() {
		return f
	}
	return f.m.wrap("exist", f.m.b.Exist(f.n, c.n))
}

// Forall eliminates the variables of c universally.
func (f Func) Forall(c Cube) Func {
	if c.IsEmpty() {
		return f
	}
	return f.Not().Exist(c).Not()
}

// AndExist returns ∃c. f ∧ g without building the intermediate conjunction.
func (f Func) AndExist(g Func, c Cube) Func {
	f.sameManager(g)
	if c.IsEmpty() {
		return f.And(g)
	}
	return f.m.wrap("andexist", f.m.b.AndExist(c.n, f.n, g.n))
}

// Permute renames the variables of f according to p.
func (f Func) Permute(p *Permutation) Func {
	return f.m.wrap("replace", f.m.b.Replace(f.n, p.r))
}

// PickOne returns a single minterm over the variables of c that extends to a
// satisfying assignment of f. Variables left free by the chosen path are
// fixed to false. Picking from the false function returns false.
func (f Func) PickOne(c Cube) Func {
	if f.IsFalse() {
		return f
	}

	var assignment []int
	err := f.m.b.Allsat(func(values []int) error {
		assignment = slices.Clone(values)
		return errAssignmentFound
	}, f.n)
	if err != nil && !errors.Is(err, errAssignmentFound) {
		panic(symerrors.NewResourceError("allsat", err.Error()))
	}
	if assignment == nil {
		panic(symerrors.NewResourceError("allsat", "no assignment for satisfiable function"))
	}

	literals := make([]rudd.Node, 0, len(c.vars))
	for _, v := range c.vars {
		if assignment[v] == 1 {
			literals = append(literals, f.m.b.Ithvar(v))
		} else {
			literals = append(literals, f.m.b.NIthvar(v))
		}
	}
	if len(literals) == 0 {
		return f.m.one
	}
	return f.m.wrap("and", f.m.b.And(literals...))
}

// DependsOnly returns true if the support of f is contained in c.
func (f Func) DependsOnly(c Cube) bool {
	return f.Exist(c.Complement()).Equal(f)
}

// Count returns the number of assignments to the variables of c satisfying
// f. The support of f must be contained in c.
func (f Func) Count(c Cube) *big.Int {
	symerrors.DebugAssertf(func() bool { return f.DependsOnly(c) },
		"counting a function over a cube that does not cover its support")

	total := f.m.b.Satcount(f.n)
	if total == nil {
		panic(symerrors.NewResourceError("satcount", f.m.b.Error()))
	}
	return total.Rsh(total, uint(f.m.varnum-len(c.vars)))
}

// NodeCount returns the number of diagram nodes reachable from f.
func (f Func) NodeCount() int {
	count := 0
	err := f.m.b.Allnodes(func(id, level, low, high int) error {
		count++
		return nil
	}, f.n)
	if err != nil {
		panic(symerrors.NewResourceError("allnodes", err.Error()))
	}
	return count
}

func (f Func) sameManager(g Func) {
	symerrors.DebugAssertf(func() bool { return f.m == g.m },
		"combining functions of different managers")
}
