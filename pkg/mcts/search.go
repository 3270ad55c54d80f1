package mcts

// Search drives one tree's worth of iterate() cycles against a single
// Problem, grounded on the teacher's MCTS[T,S,R].Search /
// Selection pair (pkg/mcts/search.go) and
// original_source/include/mcts/uct.hpp's MCTSNode::iterate, rewritten for
// the two-layer decision/action tree instead of adversarial game search.
type Search[S State[S, A], A Action[A]] struct {
	Problem Problem[S, A]
	Config  *Config[S, A]
}

// NewSearch builds a Search bound to problem, defaulting the rollout policy
// to the problem's own RolloutPolicy when cfg doesn't override it.
func NewSearch[S State[S, A], A Action[A]](problem Problem[S, A], cfg *Config[S, A]) *Search[S, A] {
	if cfg.Rollout == nil {
		cfg.Rollout = ProblemRollout[S, A]{Problem: problem}
	}
	return &Search[S, A]{Problem: problem, Config: cfg}
}

// iterate runs one selection/rollout/back-propagation cycle from root,
// returning how many tree nodes (action or decision) it created. Selection
// never descends past a terminal decision: reaching one triggers
// zero-reward simulation and an immediate back-prop of only the
// accumulated descent returns.
func (s *Search[S, A]) iterate(root *DecisionNode[S, A]) int {
	d := root
	grew := 0

	for !d.Terminal() {
		action, createdAction := s.selectOrExpandAction(d)
		if action == nil {
			break
		}
		if createdAction {
			grew++
		}

		next, createdOutcome := s.Config.Outcome.Select(d.State, action)
		if next == nil {
			violate("Search.iterate", "OutcomeSampler returned a nil decision node")
		}

		d = next
		if createdOutcome {
			grew++
			break
		}
	}

	g := rollout[S, A](s.Config.Rollout, s.Problem, d.State, s.Config.RolloutDepth, s.Config.Gamma)
	s.backpropagate(d, g)

	return grew
}

// selectOrExpandAction either adds a brand-new action child to d (when the
// expansion gate allows it) or selects among the actions already tried
// using the configured tree value. Returns a nil action only when d has
// neither an untried action nor any existing child, which a well-formed
// Problem never presents on a non-terminal state.
func (s *Search[S, A]) selectOrExpandAction(d *DecisionNode[S, A]) (*ActionNode[S, A], bool) {
	if s.Config.Expansion.ShouldExpand(d) {
		act := d.State.NextAction()
		return d.actionChild(act, s.Problem.InitialValue(d.State))
	}

	if len(d.Children) == 0 {
		return nil, false
	}

	best := selectBestAction(s.Config.TreeValue, d)
	if best == nil {
		violate("Search.selectOrExpandAction", "decision node has children but none were selected")
	}
	return best, false
}

// backpropagate walks the non-owning Parent chain from leaf back to the
// root, applying G <- r_i + gamma*G at each action edge: both the
// DecisionNode visit counter and the ActionNode (W,n) pair are updated on
// the upward sweep.
func (s *Search[S, A]) backpropagate(leaf *DecisionNode[S, A], rolloutReturn Result) {
	d := leaf
	d.addVisit()

	g := rolloutReturn
	for d.Parent != nil {
		action := d.Parent
		owner := action.Parent

		reward := s.Problem.Reward(owner.State, action.Act, d.State)
		g = reward + s.Config.Gamma*g

		action.addVisit(g)
		owner.addVisit()

		d = owner
	}
}
