package mcts

import (
	"math"

	"gonum.org/v1/gonum/stat/sampleuv"
)

// OutcomeSampler decides, at an ActionNode, whether to draw a fresh outcome
// from the transition kernel or reuse one of the outcomes already sampled.
// It returns the chosen/created decision child and whether it was freshly
// created.
type OutcomeSampler[S State[S, A], A Action[A]] interface {
	Select(state S, a *ActionNode[S, A]) (*DecisionNode[S, A], bool)
}

// sampleFreshOutcome draws s' = state.Move(a.Act) and links it under a via
// the dedup rule in outcomeChild.
func sampleFreshOutcome[S State[S, A], A Action[A]](state S, a *ActionNode[S, A]) (*DecisionNode[S, A], bool) {
	next := state.Move(a.Act)
	return a.outcomeChild(next)
}

// SimpleOutcome always samples a fresh outcome, the discrete-MDP default,
// grounded on original_source/include/mcts/defaults.hpp's
// SimpleOutcomeSelect.
type SimpleOutcome[S State[S, A], A Action[A]] struct{}

func (SimpleOutcome[S, A]) Select(state S, a *ActionNode[S, A]) (*DecisionNode[S, A], bool) {
	return sampleFreshOutcome[S, A](state, a)
}

// seedable is implemented by outcome samplers that hold a random source and
// can hand back a copy bound to a caller-supplied one. Compute uses this to
// give each root-parallel replica its own independently-seeded source
// instead of sharing the package-level defaultRNG across goroutines,
// mirroring the teacher's opt-in RandGameOperations.SetRand
// (pkg/mcts/search.go).
type seedable[S State[S, A], A Action[A]] interface {
	withRand(src rngSource) OutcomeSampler[S, A]
}

// DPW is Double Progressive Widening for continuous outcome spaces,
// grounded on original_source/include/mcts/defaults.hpp's
// ContinuousOutcomeSelect: sample a fresh outcome iff the action is
// unvisited or n(a)^beta exceeds the number of outcomes already sampled;
// otherwise pick among the existing outcomes weighted by their visit
// counts.
//
// The weighted pick uses gonum's stat/sampleuv.Weighted rather than a
// hand-rolled prefix-sum scan, which sidesteps the off-by-one the source's
// own weighted sampler can hit when the cumulative weight lands exactly on
// the random draw — gonum's sampler is exercised with exactly one draw from
// the full weight vector each call.
type DPW[S State[S, A], A Action[A]] struct {
	// Beta is the outcome-widening exponent.
	Beta float64

	// rng backs the weighted draw; left nil to use the package-level
	// defaultRNG, which is only safe for single-threaded use. Compute sets
	// it for every replica via withRand (root.go).
	rng rngSource
}

// withRand returns a copy of p bound to src, leaving p itself untouched —
// DPW is used by value, so this never mutates state another goroutine
// might be reading.
func (p DPW[S, A]) withRand(src rngSource) OutcomeSampler[S, A] {
	p.rng = src
	return p
}

func (p DPW[S, A]) Select(state S, a *ActionNode[S, A]) (*DecisionNode[S, A], bool) {
	n := float64(a.Visits())
	if n == 0 || math.Pow(n, p.Beta) > float64(len(a.Children)) {
		return sampleFreshOutcome[S, A](state, a)
	}

	weights := make([]float64, len(a.Children))
	for i, child := range a.Children {
		weights[i] = float64(child.Visits()) + epsilon
	}

	src := p.rng
	if src == nil {
		src = defaultRNG
	}

	idx, ok := sampleuv.NewWeighted(weights, src).Take()
	if !ok {
		// all weights zero; fall back to the most recently sampled outcome.
		idx = len(a.Children) - 1
	}

	return a.Children[idx], false
}
