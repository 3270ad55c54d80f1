package mcts

import "math"

// DecisionNode is a reached state in the search tree. Edges go decision ->
// action (its children are the actions tried from this state) and action ->
// decision (an ActionNode's children are sampled next-states).
//
// Ownership is top-down — a DecisionNode owns its ActionNode children —
// mirroring the teacher's NodeBase[T,S] (pkg/mcts/node.go), split into two
// node kinds instead of one, following the decision/chance split in
// christopherWilliams98-risk-agent/searcher (decision.go, chance.go). The
// Parent back-reference is non-owning, used only for back-propagation:
// downward edges own, upward edges don't.
type DecisionNode[S State[S, A], A Action[A]] struct {
	visitCounter

	State    S
	Parent   *ActionNode[S, A] // nil at the root
	Children []*ActionNode[S, A]

	RolloutDepth int
	Gamma        float64
}

// ActionNode is an action tried from a DecisionNode.
type ActionNode[S State[S, A], A Action[A]] struct {
	edgeStats

	Act      A
	Parent   *DecisionNode[S, A]
	Children []*DecisionNode[S, A]
}

// NewRoot creates a fresh root DecisionNode from a caller-supplied state.
func NewRoot[S State[S, A], A Action[A]](state S, rolloutDepth int, gamma float64) *DecisionNode[S, A] {
	return &DecisionNode[S, A]{
		State:        state,
		RolloutDepth: rolloutDepth,
		Gamma:        gamma,
	}
}

// newDecisionChild creates a decision node inheriting rollout depth and
// gamma from its action parent's owning decision.
func newDecisionChild[S State[S, A], A Action[A]](parent *ActionNode[S, A], state S) *DecisionNode[S, A] {
	owner := parent.Parent
	return &DecisionNode[S, A]{
		State:        state,
		Parent:       parent,
		RolloutDepth: owner.RolloutDepth,
		Gamma:        owner.Gamma,
	}
}

// findActionChild looks up the existing ActionNode child of d whose action
// equals a, without creating one. Used by the root-parallel merge, which
// needs to tell "already present" apart from "absent" before deciding
// whether to fold stats or reparent a whole replica subtree.
func (d *DecisionNode[S, A]) findActionChild(a A) *ActionNode[S, A] {
	for _, child := range d.Children {
		if child.Act.Equal(a) {
			return child
		}
	}
	return nil
}

// actionChild looks up the existing ActionNode child of d whose action
// equals a under the problem's action equality, else creates and links one.
// Returns the edge and whether it was freshly created.
func (d *DecisionNode[S, A]) actionChild(a A, initialValue Result) (*ActionNode[S, A], bool) {
	if child := d.findActionChild(a); child != nil {
		return child, false
	}

	child := &ActionNode[S, A]{
		Act:    a,
		Parent: d,
	}
	child.edgeStats.w = math.Float64bits(initialValue)
	d.Children = append(d.Children, child)
	return child, true
}

// outcomeChild looks up the existing DecisionNode child of a whose state
// equals s under the problem's state equality, else creates and links one.
// Returns the node and whether it was freshly created.
func (a *ActionNode[S, A]) outcomeChild(s S) (*DecisionNode[S, A], bool) {
	for _, child := range a.Children {
		if child.State.Equal(s) {
			return child, false
		}
	}

	child := newDecisionChild(a, s)
	a.Children = append(a.Children, child)
	return child, true
}

// Terminal reports whether this decision's state is an MDP-terminal state.
func (d *DecisionNode[S, A]) Terminal() bool {
	return d.State.Terminal()
}

// NodeCount counts this subtree's decision and action nodes, including d
// itself. Used by diagnostics.
func (d *DecisionNode[S, A]) NodeCount() int {
	count := 1
	for _, a := range d.Children {
		count += 1
		for _, c := range a.Children {
			count += c.NodeCount()
		}
	}
	return count
}

// MaxDepth returns the longest chain of decisions below d, counting d
// itself as depth 1. Used for diagnostics only.
func (d *DecisionNode[S, A]) MaxDepth() int {
	best := 0
	for _, a := range d.Children {
		for _, c := range a.Children {
			if depth := c.MaxDepth(); depth > best {
				best = depth
			}
		}
	}
	return best + 1
}
