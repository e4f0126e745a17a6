// Package decompose enumerates the strongly connected components, or the
// maximal end components, of a symbolic graph.
//
// Components are found with a skeleton-based forward/backward search. The
// search is driven by an explicit stack of frames so that its depth is not
// bounded by the goroutine stack, and components are produced one at a time
// on demand.
package decompose

import (
	"iter"

	"github.com/dustin/go-humanize"

	log "github.com/symbolic-mc/graphsolve/internal/logging"
	"github.com/symbolic-mc/graphsolve/pkg/bdd"
	"github.com/symbolic-mc/graphsolve/pkg/symbolic"
)

type phase int

const (
	// descend searches a node set for one more component.
	descend phase = iota

	// resume continues inside the forward set of a finished descend, once
	// everything outside of it has been processed.
	resume
)

type frame struct {
	phase phase
	nodes bdd.Func
	edges bdd.Func
	spine Spine

	skel skeleton
	scc  bdd.Func
}

// Iterator produces components one at a time. It is not safe for concurrent
// use.
type Iterator struct {
	cfg       *Config
	kernel    KernelStrategy
	graph     *symbolic.Graph
	space     *symbolic.Space
	rootEdges bdd.Func
	none      bdd.Func

	stack []frame

	// valid holds the node/action pairs still usable by an end component.
	valid   bdd.Func
	recheck bdd.Func
}

// NewIterator returns an Iterator over the components of the subgraph of g
// induced by nodes.
func NewIterator(g *symbolic.Graph, nodes bdd.Func, opts ...ConfigOption) *Iterator {
	cfg := NewConfigWithOptionsAndDefaults(opts...)
	space := g.Space
	none := space.Manager().False()
	nodes = nodes.And(g.Nodes)

	it := &Iterator{
		cfg:       cfg,
		kernel:    cfg.kernel(),
		graph:     g,
		space:     space,
		rootEdges: space.Restrict(g.Edges(), nodes),
		none:      none,
		valid:     g.Enabled(),
		recheck:   none,
	}
	it.push(frame{
		phase: descend,
		nodes: nodes,
		edges: it.rootEdges,
		spine: Spine{Set: none, Node: none},
	})

	log.Debug().Interface("config", cfg.DebugMap()).Msg("starting component decomposition")
	return it
}

// Next returns the next component, or the empty set and false once every
// component has been produced.
func (it *Iterator) Next() (bdd.Func, bool) {
	for {
		if len(it.stack) == 0 {
			if it.recheck.IsFalse() {
				return it.none, false
			}
			it.restartOnRecheck()
			continue
		}

		f := it.pop()
		switch f.phase {
		case resume:
			rest := f.skel.fwd.Diff(f.scc)
			it.push(frame{
				phase: descend,
				nodes: rest,
				edges: it.space.Restrict(f.edges, rest),
				spine: Spine{Set: f.skel.newSet.Diff(f.scc), Node: f.skel.newNode.Diff(f.scc)},
			})

		case descend:
			if component, ok := it.descend(f); ok {
				componentsEmittedCounter.WithLabelValues(it.cfg.Mode.String()).Inc()
				if e := log.Trace(); e.Enabled() {
					e.Str("nodes", humanize.BigComma(it.space.CountNodes(component))).
						Str("mode", it.cfg.Mode.String()).
						Msg("emitting component")
				}
				return component, true
			}
		}
	}
}

// All returns the remaining components as a sequence.
func (it *Iterator) All() iter.Seq[bdd.Func] {
	return func(yield func(bdd.Func) bool) {
		for {
			component, ok := it.Next()
			if !ok || !yield(component) {
				return
			}
		}
	}
}

func (it *Iterator) push(f frame) {
	it.stack = append(it.stack, f)
}

func (it *Iterator) pop() frame {
	f := it.stack[len(it.stack)-1]
	it.stack[len(it.stack)-1] = frame{}
	it.stack = it.stack[:len(it.stack)-1]
	return f
}

// descend processes one descend frame, scheduling its sub-problems and
// returning the component it found, if that component is to be emitted.
func (it *Iterator) descend(f frame) (bdd.Func, bool) {
	if f.nodes.IsFalse() {
		return it.none, false
	}

	spine := it.validSpine(f.nodes, f.spine)
	skel := forwardSkeleton(it.space, f.edges, spine, it.kernel)
	scc := backwardClosure(it.space, f.edges, spine.Node, skel.fwd)

	outside := f.nodes.Diff(skel.fwd)
	outsideSet := spine.Set.Diff(scc)
	outsideNode := it.space.PickNode(it.space.Pre(scc.And(spine.Set), f.edges).And(outsideSet))

	it.push(frame{phase: resume, edges: f.edges, skel: skel, scc: scc})
	it.push(frame{
		phase: descend,
		nodes: outside,
		edges: it.space.Restrict(f.edges, outside),
		spine: Spine{Set: outsideSet, Node: outsideNode},
	})

	if it.cfg.Mode == ModeMEC {
		return it.acceptEndComponent(scc)
	}
	return it.acceptComponent(scc, f.edges)
}

// validSpine returns spine if its node lies in nodes, and a fresh spine
// seeded by chooseSeed otherwise.
func (it *Iterator) validSpine(nodes bdd.Func, spine Spine) Spine {
	if spine.Node.IsValid() && !spine.Node.IsFalse() && spine.Node.Implies(nodes) {
		return Spine{Set: spine.Set.And(nodes), Node: spine.Node}
	}
	seed := it.chooseSeed(nodes)
	return Spine{Set: seed, Node: seed}
}

// chooseSeed picks a node of nodes, preferring initial nodes.
func (it *Iterator) chooseSeed(nodes bdd.Func) bdd.Func {
	if initial := nodes.And(it.graph.Initial); !initial.IsFalse() {
		return it.space.PickNode(initial)
	}
	return it.space.PickNode(nodes)
}

func (it *Iterator) acceptComponent(scc, edges bdd.Func) (bdd.Func, bool) {
	if scc.IsFalse() {
		return it.none, false
	}
	if it.cfg.SkipTransient && cyclicCore(it.space, edges, scc).IsFalse() {
		return it.none, false
	}
	if it.cfg.BottomOnly && !it.isBottom(scc) {
		return it.none, false
	}
	return scc, true
}

// isBottom returns true if no edge of the decomposed graph leaves nodes.
func (it *Iterator) isBottom(nodes bdd.Func) bool {
	return it.space.Post(nodes, it.rootEdges).Implies(nodes)
}
