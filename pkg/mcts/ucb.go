package mcts

import "math"

// TreeValue scores an ActionNode child of a decision node during selection.
// Implementations must not let epsilon leak into the value they report for
// final action extraction — only UCB1 uses the exploration bonus; Greedy is
// the value BestAction ultimately ranks by.
type TreeValue[S State[S, A], A Action[A]] interface {
	Value(parent *DecisionNode[S, A], child *ActionNode[S, A]) float64
}

// UCB1 is the canonical tree-selection value:
//
//	Q(a) = W(a)/(n(a)+eps) + 2c * sqrt(ln(n(d)+1) / (n(a)+eps))
//
// the teacher's own UCB1.Select (pkg/mcts/ucb.go) and
// original_source/include/mcts/defaults.hpp's UCTValue agree on this
// "2c·sqrt(ln(n_parent+1)/n_child)" shape over the alternative
// "c·sqrt(2·ln(n_parent)/n_child)" draft also present in the source tree.
type UCB1[S State[S, A], A Action[A]] struct {
	// C is the exploration constant; default 1/sqrt(2).
	C float64
}

func DefaultUCB1[S State[S, A], A Action[A]]() *UCB1[S, A] {
	return &UCB1[S, A]{C: 1.0 / math.Sqrt2}
}

func (u *UCB1[S, A]) Value(parent *DecisionNode[S, A], child *ActionNode[S, A]) float64 {
	n := float64(child.Visits())
	exploit := child.W() / regularize(n)
	explore := 2 * u.C * math.Sqrt(math.Log(float64(parent.Visits())+1)/regularize(n))
	return exploit + explore
}

// Greedy omits the exploration term; used only for final action extraction
// and is invariant to the UCB exploration constant.
type Greedy[S State[S, A], A Action[A]] struct{}

func (Greedy[S, A]) Value(parent *DecisionNode[S, A], child *ActionNode[S, A]) float64 {
	return child.Mean()
}

// selectBestAction scans children in order and returns the one maximising
// value, breaking ties by scan order. Returns nil if d has no children.
func selectBestAction[S State[S, A], A Action[A]](value TreeValue[S, A], d *DecisionNode[S, A]) *ActionNode[S, A] {
	var best *ActionNode[S, A]
	bestValue := math.Inf(-1)

	for _, child := range d.Children {
		v := value.Value(d, child)
		if v > bestValue {
			bestValue = v
			best = child
		}
	}

	return best
}
