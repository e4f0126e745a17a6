package testing

import (
	"slices"

	"github.com/symbolic-mc/graphsolve/pkg/symbolic"
)

// SCCs returns the strongly connected components of the subgraph induced by
// within, each sorted, using Tarjan's algorithm.
func (g *Explicit) SCCs(within []bool) [][]int {
	n := g.Len()
	index := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = -1
	}

	var stack []int
	var sccs [][]int
	counter := 0

	var connect func(v int)
	connect = func(v int) {
		index[v] = counter
		lowlink[v] = counter
		counter++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.Successors(v) {
			if !within[w] {
				continue
			}
			if index[w] == -1 {
				connect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], index[w])
			}
		}

		if lowlink[v] == index[v] {
			var scc []int
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			slices.Sort(scc)
			sccs = append(sccs, scc)
		}
	}

	for v := range n {
		if within[v] && index[v] == -1 {
			connect(v)
		}
	}
	return sccs
}

// MECs returns the maximal end components of the graph. Each successor of
// an even node is a choice of its own, an odd or stochastic node has a single
// choice covering all of its successors, and every action of a mixed node is
// a choice.
func (g *Explicit) MECs() [][]int {
	n := g.Len()
	choices := make([][][]int, n)
	for s := range n {
		switch g.Owners[s] {
		case symbolic.OwnerEven:
			for _, t := range g.Successors(s) {
				choices[s] = append(choices[s], []int{t})
			}
		case symbolic.OwnerOdd, symbolic.OwnerStochastic:
			if succ := g.Successors(s); len(succ) > 0 {
				choices[s] = [][]int{succ}
			}
		default:
			for _, targets := range g.Choices[s] {
				choices[s] = append(choices[s], slices.Clone(targets))
			}
		}
	}

	for {
		alive := make([]bool, n)
		for s := range n {
			alive[s] = len(choices[s]) > 0
		}

		reduced := &Explicit{Owners: g.Owners, Priorities: g.Priorities, Choices: choices}
		sccs := reduced.SCCs(alive)
		component := make([]int, n)
		for i := range component {
			component[i] = -1
		}
		for i, scc := range sccs {
			for _, s := range scc {
				component[s] = i
			}
		}

		changed := false
		for s := range n {
			kept := choices[s][:0:0]
			for _, targets := range choices[s] {
				if !slices.ContainsFunc(targets, func(t int) bool { return component[t] != component[s] }) {
					kept = append(kept, targets)
				}
			}
			if len(kept) != len(choices[s]) {
				changed = true
			}
			choices[s] = kept
		}

		if !changed {
			return sccs
		}
	}
}

// All returns a membership slice holding every node.
func (g *Explicit) All() []bool {
	all := make([]bool, g.Len())
	for i := range all {
		all[i] = true
	}
	return all
}

// Attractor computes the attractor of target within domain by enumeration,
// quantifying each node the way the symbolic attractor derives it from the
// node owners. Successors outside domain ∪ target are ignored.
func (g *Explicit) Attractor(target, domain []bool, attracting symbolic.Player, nature symbolic.Polarity) []bool {
	n := g.Len()
	attr := slices.Clone(target)
	relevant := func(t int) bool { return domain[t] || target[t] }

	someIn := func(targets []int) bool {
		return slices.ContainsFunc(targets, func(t int) bool { return relevant(t) && attr[t] })
	}
	allIn := func(targets []int) bool {
		found := false
		for _, t := range targets {
			if !relevant(t) {
				continue
			}
			if !attr[t] {
				return false
			}
			found = true
		}
		return found
	}

	exists := func(s int) bool { return slices.ContainsFunc(g.Choices[s], someIn) }
	forall := func(s int) bool { return allIn(g.Successors(s)) }

	for changed := true; changed; {
		changed = false
		for s := range n {
			if attr[s] || !domain[s] {
				continue
			}

			var in bool
			switch owner := g.Owners[s]; {
			case owner == symbolic.OwnerEven || owner == symbolic.OwnerOdd:
				if (owner == symbolic.OwnerEven) == (attracting == symbolic.Even) {
					in = exists(s)
				} else {
					in = forall(s)
				}
			case owner == symbolic.OwnerStochastic:
				if nature == symbolic.Exists {
					in = exists(s)
				} else {
					in = forall(s)
				}
			case attracting == symbolic.Even && nature == symbolic.Exists:
				in = exists(s)
			case attracting == symbolic.Even:
				in = slices.ContainsFunc(g.Choices[s], allIn)
			case nature == symbolic.Exists:
				in = len(g.Choices[s]) > 0 && !slices.ContainsFunc(g.Choices[s], func(targets []int) bool {
					return !someIn(targets)
				})
			default:
				in = forall(s)
			}

			if in {
				attr[s] = true
				changed = true
			}
		}
	}
	return attr
}

// SolveParity solves the min-parity game on the subgraph induced by nodes
// with Zielonka's algorithm. Only even and odd owned nodes are supported and
// every node must have a successor inside nodes.
func (g *Explicit) SolveParity(nodes []bool) (even, odd []bool) {
	n := g.Len()
	even, odd = make([]bool, n), make([]bool, n)

	minPriority := -1
	for s, in := range nodes {
		if in && (minPriority == -1 || g.Priorities[s] < minPriority) {
			minPriority = g.Priorities[s]
		}
	}
	if minPriority == -1 {
		return even, odd
	}

	player := symbolic.Even
	if minPriority%2 == 1 {
		player = symbolic.Odd
	}

	target := make([]bool, n)
	for s, in := range nodes {
		target[s] = in && g.Priorities[s] == minPriority
	}

	attr := g.Attractor(target, nodes, player, symbolic.Exists)
	subEven, subOdd := g.SolveParity(minus(nodes, attr))
	opponentWins := subOdd
	if player == symbolic.Odd {
		opponentWins = subEven
	}

	if !slices.Contains(opponentWins, true) {
		if player == symbolic.Even {
			return slices.Clone(nodes), odd
		}
		return even, slices.Clone(nodes)
	}

	opponentAttr := g.Attractor(opponentWins, nodes, player.Opponent(), symbolic.Exists)
	restEven, restOdd := g.SolveParity(minus(nodes, opponentAttr))
	if player == symbolic.Even {
		return restEven, union(restOdd, opponentAttr)
	}
	return union(restEven, opponentAttr), restOdd
}

func minus(a, b []bool) []bool {
	out := make([]bool, len(a))
	for i := range a {
		out[i] = a[i] && !b[i]
	}
	return out
}

func union(a, b []bool) []bool {
	out := make([]bool, len(a))
	for i := range a {
		out[i] = a[i] || b[i]
	}
	return out
}
