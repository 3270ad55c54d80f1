package mcts

// RolloutPolicy chooses an action during simulation, once selection has
// reached a node outside the tree. The Problem's own RolloutPolicy is
// always an acceptable implementation; this type exists so a caller can
// swap in something else (e.g. a uniform-random fallback in tests) without
// changing the Problem.
type RolloutPolicy[S State[S, A], A Action[A]] interface {
	Act(state S) A
}

// ProblemRollout defers to the host Problem's own RolloutPolicy, the
// engine's default — grounded on
// original_source/include/mcts/defaults.hpp's UniformRandomPolicy being the
// example rollout policy a Problem installs, not something the engine
// hard-codes.
type ProblemRollout[S State[S, A], A Action[A]] struct {
	Problem Problem[S, A]
}

func (p ProblemRollout[S, A]) Act(state S) A {
	return p.Problem.RolloutPolicy(state)
}

// rollout simulates from state for at most depth steps, accumulating
// discounted reward with the given gamma. Depth 0 returns 0 without
// taking any step.
func rollout[S State[S, A], A Action[A]](policy RolloutPolicy[S, A], problem Problem[S, A], state S, depth int, gamma float64) Result {
	if depth <= 0 {
		return 0
	}

	var total Result
	discount := Result(1)

	cur := state
	for step := 0; step < depth && !cur.Terminal(); step++ {
		action := policy.Act(cur)
		next := cur.Move(action)
		total += discount * problem.Reward(cur, action, next)
		discount *= Result(gamma)
		cur = next
	}

	return total
}
