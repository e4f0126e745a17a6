package model

import (
	"fmt"
	"math/bits"

	"github.com/ccoveille/go-safecast/v2"

	log "github.com/symbolic-mc/graphsolve/internal/logging"
	"github.com/symbolic-mc/graphsolve/pkg/bdd"
	"github.com/symbolic-mc/graphsolve/pkg/genutil/mapz"
	"github.com/symbolic-mc/graphsolve/pkg/genutil/slicez"
	"github.com/symbolic-mc/graphsolve/pkg/symbolic"
)

type edgeSource struct {
	from   int
	action int
}

type builtState struct {
	name     string
	owner    symbolic.Owner
	initial  bool
	priority int
}

// Builder assembles an explicit graph one state and transition at a time.
type Builder struct {
	states []builtState
	index  map[string]int

	actions     []string
	actionIndex map[string]int

	edges *mapz.MultiMap[edgeSource, int]
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		index:       map[string]int{},
		actionIndex: map[string]int{},
		edges:       mapz.NewMultiMap[edgeSource, int](),
	}
}

// AddState declares a node. The owner name is parsed with symbolic.ParseOwner.
func (b *Builder) AddState(s State) error {
	if s.Name == "" {
		return fmt.Errorf("state name is required")
	}
	if _, ok := b.index[s.Name]; ok {
		return fmt.Errorf("state `%s` is declared twice", s.Name)
	}
	if s.Priority < 0 {
		return fmt.Errorf("state `%s` has negative priority %d", s.Name, s.Priority)
	}
	owner, err := symbolic.ParseOwner(s.Owner)
	if err != nil {
		return fmt.Errorf("state `%s`: %w", s.Name, err)
	}

	b.index[s.Name] = len(b.states)
	b.states = append(b.states, builtState{
		name:     s.Name,
		owner:    owner,
		initial:  s.Initial,
		priority: s.Priority,
	})
	return nil
}

// AddTransition adds an edge from `from` to each of `to`, labeled with action.
// Both endpoints must already be declared.
func (b *Builder) AddTransition(from, action string, to ...string) error {
	source, ok := b.index[from]
	if !ok {
		return fmt.Errorf("transition from unknown state `%s`", from)
	}
	if len(to) == 0 {
		return fmt.Errorf("transition from `%s` has no target", from)
	}

	targets := make([]int, 0, len(to))
	for _, name := range slicez.Unique(to) {
		target, ok := b.index[name]
		if !ok {
			return fmt.Errorf("transition from `%s` to unknown state `%s`", from, name)
		}
		targets = append(targets, target)
	}

	actionID, ok := b.actionIndex[action]
	if !ok {
		actionID = len(b.actions)
		b.actionIndex[action] = actionID
		b.actions = append(b.actions, action)
	}

	b.edges.Add(edgeSource{from: source, action: actionID}, targets...)
	return nil
}

// Build encodes the graph. States are numbered in declaration order and
// written in binary over interleaved present/next variables, which follow the
// action variables in the variable order.
func (b *Builder) Build(opts ...bdd.ConfigOption) (*Encoded, error) {
	if len(b.states) == 0 {
		return nil, fmt.Errorf("a model needs at least one state")
	}

	stateBits := max(1, bits.Len(uint(len(b.states)-1)))
	actionBits := 0
	if len(b.actions) > 1 {
		actionBits = bits.Len(uint(len(b.actions) - 1))
	}

	actionVars := make([]int, actionBits)
	for i := range actionVars {
		actionVars[i] = i
	}
	present := make([]int, stateBits)
	next := make([]int, stateBits)
	for i := range present {
		present[i] = actionBits + 2*i
		next[i] = actionBits + 2*i + 1
	}

	m, err := bdd.New(actionBits+2*stateBits, opts...)
	if err != nil {
		return nil, err
	}
	space, err := symbolic.NewSpace(m, present, next, actionVars)
	if err != nil {
		return nil, err
	}

	e := &Encoded{
		names:   make([]string, len(b.states)),
		index:   b.index,
		actions: b.actions,
	}

	e.nodes = make([]bdd.Func, len(b.states))
	for i, s := range b.states {
		encoded, err := encode(m, present, i)
		if err != nil {
			return nil, err
		}
		e.names[i] = s.name
		e.nodes[i] = encoded
	}

	e.actionSets = make([]bdd.Func, len(b.actions))
	for i := range b.actions {
		encoded, err := encode(m, actionVars, i)
		if err != nil {
			return nil, err
		}
		e.actionSets[i] = encoded
	}

	nodes, initial := m.False(), m.False()
	owned := map[symbolic.Owner]bdd.Func{}
	maxPriority := 0
	for i, s := range b.states {
		nodes = nodes.Or(e.nodes[i])
		if s.initial {
			initial = initial.Or(e.nodes[i])
		}
		if prev, ok := owned[s.owner]; ok {
			owned[s.owner] = prev.Or(e.nodes[i])
		} else {
			owned[s.owner] = e.nodes[i]
		}
		maxPriority = max(maxPriority, s.priority)
	}

	players := symbolic.OwnedBy(symbolic.OwnerEven, m.False())
	for owner, set := range owned {
		switch owner {
		case symbolic.OwnerEven:
			players.Even = set
		case symbolic.OwnerOdd:
			players.Odd = set
		case symbolic.OwnerStochastic:
			players.Stochastic = set
		case symbolic.OwnerMixed:
			players.Mixed = set
		}
	}

	e.Priorities = make([]bdd.Func, maxPriority+1)
	for p := range e.Priorities {
		e.Priorities[p] = m.False()
	}
	for i, s := range b.states {
		e.Priorities[s.priority] = e.Priorities[s.priority].Or(e.nodes[i])
	}

	trans := m.False()
	edgeCount := 0
	for src, targets := range b.edges.All() {
		from := e.nodes[src.from].And(e.actionSets[src.action])
		for _, target := range targets {
			trans = trans.Or(from.And(space.ToNext(e.nodes[target])))
			edgeCount++
		}
	}

	e.Graph, err = symbolic.NewGraph(space, trans, nodes, initial, players)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("states", len(b.states)).
		Int("actions", len(b.actions)).
		Int("edges", edgeCount).
		Int("sources", b.edges.Len()).
		Int("variables", m.Varnum()).
		Msg("encoded explicit model")
	if ev := log.Trace(); ev.Enabled() {
		ev.Int("transition nodes", trans.NodeCount()).
			Str("tables", m.Stats()).
			Msg("decision diagram size after encoding")
	}
	return e, nil
}

// Build encodes the document.
func (d *Document) Build(opts ...bdd.ConfigOption) (*Encoded, error) {
	b := NewBuilder()
	for _, s := range d.States {
		if err := b.AddState(s); err != nil {
			return nil, err
		}
	}
	for _, t := range d.Transitions {
		if err := b.AddTransition(t.From, t.Action, t.To...); err != nil {
			return nil, err
		}
	}
	return b.Build(opts...)
}

// encode returns the minterm writing value in binary over vars, least
// significant bit first.
func encode(m *bdd.Manager, vars []int, value int) (bdd.Func, error) {
	bitsOf, err := safecast.Convert[uint64](value)
	if err != nil {
		return bdd.Func{}, fmt.Errorf("unable to encode index %d: %w", value, err)
	}

	f := m.True()
	for i, v := range vars {
		if bitsOf&(1<<i) != 0 {
			f = f.And(m.Var(v))
		} else {
			f = f.And(m.NotVar(v))
		}
	}
	return f, nil
}
