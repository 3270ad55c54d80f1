package mcts

import "math"

// Config bundles the tunables the search loop reads on every iteration,
// built with functional options (Option), the pattern grounded on
// christopherWilliams98-risk-agent/searcher/uct.go's option/WithX
// functions, generalised from that package's three knobs (goroutines,
// iterations, duration) to the full tunable set this engine exposes.
type Config[S State[S, A], A Action[A]] struct {
	// TreeValue scores ActionNode children during selection. Defaults to
	// UCB1 with c=1/sqrt(2).
	TreeValue TreeValue[S, A]

	// Greedy is the value final action extraction ranks children by; always
	// value, never exploration.
	Greedy TreeValue[S, A]

	// Expansion gates whether selection may try a brand-new action from a
	// decision. Defaults to SimpleExpansion.
	Expansion ExpansionGate[S, A]

	// Outcome decides whether an ActionNode samples a fresh outcome or
	// reuses one already sampled. Defaults to SimpleOutcome.
	Outcome OutcomeSampler[S, A]

	// Rollout is the simulation policy. Defaults to ProblemRollout,
	// deferring to the Problem's own RolloutPolicy.
	Rollout RolloutPolicy[S, A]

	// RolloutDepth caps simulation steps per iteration; 0 disables rollout
	// entirely.
	RolloutDepth int

	// Gamma discounts reward both during rollout and during
	// back-propagation.
	Gamma float64

	// ParallelRoots is the number of independent replica trees to grow and
	// merge at the root. 1 disables root-parallelization.
	ParallelRoots int

	// Limits bounds how long Compute runs, carried from the teacher's
	// Limits/Limiter.
	Limits *Limits
}

// Option mutates a Config during construction, the functional-options
// pattern grounded on risk-agent's searcher/uct.go option type.
type Option[S State[S, A], A Action[A]] func(*Config[S, A])

// WithTreeValue overrides the selection-time value function.
func WithTreeValue[S State[S, A], A Action[A]](v TreeValue[S, A]) Option[S, A] {
	return func(c *Config[S, A]) { c.TreeValue = v }
}

// WithUCB1 sets the selection value to UCB1 with exploration constant c.
func WithUCB1[S State[S, A], A Action[A]](c float64) Option[S, A] {
	return func(cfg *Config[S, A]) { cfg.TreeValue = &UCB1[S, A]{C: c} }
}

// WithExpansion overrides the action-widening gate, e.g. SPW for
// continuous action spaces.
func WithExpansion[S State[S, A], A Action[A]](g ExpansionGate[S, A]) Option[S, A] {
	return func(c *Config[S, A]) { c.Expansion = g }
}

// WithSPW installs Single Progressive Widening with the given exponent.
func WithSPW[S State[S, A], A Action[A]](alpha float64) Option[S, A] {
	return func(c *Config[S, A]) { c.Expansion = SPW[S, A]{Alpha: alpha} }
}

// WithOutcome overrides the outcome sampler, e.g. DPW for continuous
// outcome spaces.
func WithOutcome[S State[S, A], A Action[A]](s OutcomeSampler[S, A]) Option[S, A] {
	return func(c *Config[S, A]) { c.Outcome = s }
}

// WithDPW installs Double Progressive Widening with the given exponent.
func WithDPW[S State[S, A], A Action[A]](beta float64) Option[S, A] {
	return func(c *Config[S, A]) { c.Outcome = DPW[S, A]{Beta: beta} }
}

// WithRollout overrides the simulation policy.
func WithRollout[S State[S, A], A Action[A]](r RolloutPolicy[S, A]) Option[S, A] {
	return func(c *Config[S, A]) { c.Rollout = r }
}

// WithRolloutDepth sets the simulation step cap.
func WithRolloutDepth[S State[S, A], A Action[A]](depth int) Option[S, A] {
	return func(c *Config[S, A]) { c.RolloutDepth = depth }
}

// WithGamma sets the discount factor used in both rollout and
// back-propagation.
func WithGamma[S State[S, A], A Action[A]](gamma float64) Option[S, A] {
	return func(c *Config[S, A]) { c.Gamma = gamma }
}

// WithParallelRoots sets the number of independent replica trees grown and
// merged at the root.
func WithParallelRoots[S State[S, A], A Action[A]](n int) Option[S, A] {
	return func(c *Config[S, A]) {
		if n < 1 {
			n = 1
		}
		c.ParallelRoots = n
	}
}

// WithLimits overrides the search budget.
func WithLimits[S State[S, A], A Action[A]](l *Limits) Option[S, A] {
	return func(c *Config[S, A]) { c.Limits = l }
}

// NewConfig builds a Config from defaults (UCB1 c=1/sqrt(2), SimpleExpansion,
// SimpleOutcome, a single root, gamma=1, rollout depth 0) overridden by
// opts in order.
func NewConfig[S State[S, A], A Action[A]](opts ...Option[S, A]) *Config[S, A] {
	c := &Config[S, A]{
		TreeValue:     &UCB1[S, A]{C: 1.0 / math.Sqrt2},
		Greedy:        Greedy[S, A]{},
		Expansion:     SimpleExpansion[S, A]{},
		Outcome:       SimpleOutcome[S, A]{},
		RolloutDepth:  0,
		Gamma:         1.0,
		ParallelRoots: 1,
		Limits:        DefaultLimits(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}
