package decompose

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/symbolic-mc/graphsolve/pkg/bdd"
	"github.com/symbolic-mc/graphsolve/pkg/symbolic"
	"github.com/symbolic-mc/graphsolve/pkg/symerrors"
)

var skeletonLayersHistogram = prometheus.NewHistogram(prometheus.HistogramOpts{
	Name:    "graphsolve_skeleton_layers",
	Help:    "number of breadth-first layers of a forward skeleton",
	Buckets: []float64{1, 2, 5, 10, 25, 100, 250, 1000},
})

// Spine drives the seed choice of a sub-problem. Set is a path of nodes
// ending in Node.
type Spine struct {
	Set  bdd.Func
	Node bdd.Func
}

// KernelStrategy decides where the spine of a forward skeleton may stop
// early.
type KernelStrategy interface {
	// Kernel returns the kernel for a forward set computed from spine, and
	// whether a layer meeting the kernel ends the spine construction.
	Kernel(fwd bdd.Func, spine Spine) (kernel bdd.Func, stopEarly bool)
}

// SeedKernel uses the seed node as kernel and always builds the full spine.
type SeedKernel struct{}

func (SeedKernel) Kernel(_ bdd.Func, spine Spine) (bdd.Func, bool) {
	return spine.Node, false
}

// FwdIntersectKernel uses the part of the previous spine inside the forward
// set as kernel, and stops the new spine as soon as it reaches it.
type FwdIntersectKernel struct{}

func (FwdIntersectKernel) Kernel(fwd bdd.Func, spine Spine) (bdd.Func, bool) {
	return fwd.And(spine.Set), true
}

type skeleton struct {
	fwd     bdd.Func
	newSet  bdd.Func
	newNode bdd.Func
}

// forwardSkeleton computes the forward set of spine.Node through edges
// breadth first, together with a new spine: one witness node per layer,
// forming a path that ends in a node of the last layer.
func forwardSkeleton(space *symbolic.Space, edges bdd.Func, spine Spine, kernels KernelStrategy) skeleton {
	symerrors.DebugAssertf(func() bool { return !spine.Node.IsFalse() }, "skeleton seed must not be empty")

	var layers []bdd.Func
	fwd := space.Manager().False()
	for frontier := spine.Node; !frontier.IsFalse(); {
		layers = append(layers, frontier)
		fwd = fwd.Or(frontier)
		frontier = space.Post(frontier, edges).Diff(fwd)
	}
	skeletonLayersHistogram.Observe(float64(len(layers)))

	kernel, stopEarly := kernels.Kernel(fwd, spine)

	last := len(layers) - 1
	newNode := space.PickNode(layers[last])
	newSet := newNode
	for i := last - 1; i >= 0; i-- {
		if stopEarly && layers[i].Intersects(kernel) {
			break
		}
		witness := space.PickNode(space.Pre(newSet, edges).And(layers[i]))
		symerrors.DebugAssertf(func() bool { return !witness.IsFalse() }, "breadth-first layer without predecessor witness")
		newSet = newSet.Or(witness)
	}

	return skeleton{fwd: fwd, newSet: newSet, newNode: newNode}
}

// backwardClosure returns the nodes of within that reach seed through edges
// while staying inside within.
func backwardClosure(space *symbolic.Space, edges, seed, within bdd.Func) bdd.Func {
	closure := seed
	for {
		grown := closure.Or(space.Pre(closure, edges).And(within))
		if grown.Equal(closure) {
			return closure
		}
		closure = grown
	}
}

// cyclicCore returns the greatest subset of nodes in which every node has a
// successor inside the subset.
func cyclicCore(space *symbolic.Space, edges, nodes bdd.Func) bdd.Func {
	core := nodes
	for {
		shrunk := core.And(space.Pre(core, edges))
		if shrunk.Equal(core) {
			return core
		}
		core = shrunk
	}
}
