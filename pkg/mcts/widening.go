package mcts

import "math"

// ExpansionGate decides whether selection should try a brand-new action
// from a DecisionNode or restrict itself to the actions already tried. For
// discrete problems this is trivially "always expand while
// HasMoreActions()"; for continuous action spaces it is Single Progressive
// Widening.
type ExpansionGate[S State[S, A], A Action[A]] interface {
	ShouldExpand(d *DecisionNode[S, A]) bool
}

// SimpleExpansion expands whenever the state has an untried action left,
// the discrete-action-space default.
type SimpleExpansion[S State[S, A], A Action[A]] struct{}

func (SimpleExpansion[S, A]) ShouldExpand(d *DecisionNode[S, A]) bool {
	return d.State.HasMoreActions()
}

// SPW is Single Progressive Widening for continuous action spaces, grounded
// on original_source/include/mcts/defaults.hpp's SPWSelectPolicy: expand a
// fresh action iff the decision is unvisited or n(d)^alpha exceeds the
// number of actions already tried.
type SPW[S State[S, A], A Action[A]] struct {
	// Alpha is the widening exponent, typically in (0,1). Smaller values
	// widen the action set more slowly.
	Alpha float64
}

func (p SPW[S, A]) ShouldExpand(d *DecisionNode[S, A]) bool {
	if !d.State.HasMoreActions() {
		return false
	}

	n := float64(d.Visits())
	if n == 0 {
		return true
	}

	return math.Pow(n, p.Alpha) > float64(len(d.Children))
}
