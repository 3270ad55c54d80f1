package mcts

// Result is a discounted return accumulated along a tree edge or produced
// by a single rollout. Unlike the teacher's Result (clamped to [0,1] for a
// two-player win/loss/draw convention), an MDP stage reward is unbounded
// and entirely problem-defined.
type Result = float64

// SeedGeneratorFnType produces a seed for a per-worker random source. This
// hook, carried from the teacher's vars.go, is the entire surface the
// engine exposes over random-seed management; it does not otherwise
// manage seeding itself.
type SeedGeneratorFnType func() int64
