package mcts

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/exp/rand"
)

// RootCoordinator owns the tree (or, under root-parallelization, the set of
// replica trees) grown against one Problem, and is the surface the caller
// drives: Compute to grow it, BestAction/TopActions to query it. Grounded
// on the teacher's MCTS[T,S,R] (pkg/mcts/mcts.go) — Compute replaces
// Search/SearchMultiThreaded, BestAction/TopActions replace
// BestChild/MultiPv — generalised from per-thread trees sharing one
// game-tree node type to independent replicas of a decision/action tree.
type RootCoordinator[S State[S, A], A Action[A]] struct {
	Problem Problem[S, A]
	Config  *Config[S, A]
	Root    *DecisionNode[S, A]

	limiter    LimiterLike
	size       atomic.Uint32
	cycles     atomic.Uint32
	cps        atomic.Uint32
	maxdepth   atomic.Int32
	collisions atomic.Uint32
	stopReason StopReason
}

// NewRootCoordinator builds a coordinator with a fresh root over state.
func NewRootCoordinator[S State[S, A], A Action[A]](problem Problem[S, A], state S, cfg *Config[S, A]) *RootCoordinator[S, A] {
	if cfg.Rollout == nil {
		cfg.Rollout = ProblemRollout[S, A]{Problem: problem}
	}

	nodeSize := uint32(unsafe.Sizeof(DecisionNode[S, A]{})) + uint32(unsafe.Sizeof(ActionNode[S, A]{}))

	rc := &RootCoordinator[S, A]{
		Problem: problem,
		Config:  cfg,
		Root:    NewRoot[S, A](state, cfg.RolloutDepth, cfg.Gamma),
		limiter: NewLimiter(nodeSize),
	}
	rc.size.Store(1)
	return rc
}

// Compute grows the tree until the configured Limits (or ctx) say stop. The
// caller invokes Compute on a root coordinator; when ParallelRoots > 1,
// independent replica trees are grown concurrently, each running iterate()
// repeatedly against its own tree, and folded into the primary tree's
// statistics once every replica finishes.
func (rc *RootCoordinator[S, A]) Compute(ctx context.Context) StopReason {
	rc.limiter.SetLimits(rc.Config.Limits)
	rc.limiter.SetContext(ctx)
	rc.limiter.Reset()
	rc.cycles.Store(0)
	rc.maxdepth.Store(0)
	rc.collisions.Store(0)

	replicas := rc.Config.ParallelRoots
	if replicas < 1 {
		replicas = 1
	}

	if rc.Root.Terminal() {
		rc.limiter.EvaluateStopReason(rc.size.Load(), 0, 0)
		rc.stopReason = rc.limiter.StopReason()
		return rc.stopReason
	}

	trees := make([]*DecisionNode[S, A], replicas)
	trees[0] = rc.Root
	for i := 1; i < replicas; i++ {
		trees[i] = NewRoot[S, A](rc.Root.State, rc.Root.RolloutDepth, rc.Root.Gamma)
	}

	var wg sync.WaitGroup
	for i := range trees {
		wg.Add(1)
		go func(threadId int, tree *DecisionNode[S, A]) {
			defer wg.Done()

			// Each replica gets its own Search over a shallow copy of the
			// Config, and, when the outcome sampler supports it, its own
			// independently-seeded random source — a shared *rand.Rand is
			// not safe for concurrent use, and rc.Config is shared across
			// every goroutine here. Grounded on the teacher's per-thread
			// threadRand (pkg/mcts/search.go) plus its opt-in
			// RandGameOperations.SetRand pattern.
			workerCfg := *rc.Config
			if seeder, ok := workerCfg.Outcome.(seedable[S, A]); ok {
				src := rand.New(rand.NewSource(uint64(SeedGeneratorFn() + int64(threadId))))
				workerCfg.Outcome = seeder.withRand(src)
			}
			search := NewSearch[S, A](rc.Problem, &workerCfg)

			// The iteration limit applies to each replica's own tree.
			var treeCycles uint32
			for rc.limiter.Ok(rc.size.Load(), uint32(rc.maxdepth.Load()), treeCycles) {
				if grew := search.iterate(tree); grew > 0 {
					rc.size.Add(uint32(grew))
				}
				treeCycles++
				cycles := rc.cycles.Add(1)
				rc.cps.Store(cycles * 1000 / rc.limiter.Elapsed())

				if depth := int32(tree.MaxDepth()); depth > rc.maxdepth.Load() {
					rc.maxdepth.Store(depth)
				}
			}
		}(i, trees[i])
	}
	wg.Wait()

	rc.limiter.EvaluateStopReason(rc.size.Load(), uint32(rc.maxdepth.Load()), rc.cycles.Load())
	rc.stopReason = rc.limiter.StopReason()

	// Merge every replica's root-level statistics into the primary tree.
	for _, other := range trees[1:] {
		rc.collisions.Add(mergeRoots(rc.Root, other))
	}

	Logger.Debug().
		Uint32("cycles", rc.cycles.Load()).
		Uint32("size", rc.size.Load()).
		Int32("max_depth", rc.maxdepth.Load()).
		Uint32("collisions", rc.collisions.Load()).
		Str("stop_reason", rc.stopReason.String()).
		Msg("compute finished")

	return rc.stopReason
}

// mergeRoots folds other's root-level action statistics into root. An
// action root has never seen has its entire subtree reparented onto root —
// a transfer of ownership, mirroring original_source/include/mcts/uct.hpp's
// merge_inplace push_back branch — while an action root already has is
// merged stats-only (visits and accumulated return); each such collision is
// counted and returned so the caller can track replica merge conflicts.
func mergeRoots[S State[S, A], A Action[A]](root, other *DecisionNode[S, A]) uint32 {
	root.addVisits(other.Visits())

	var collisions uint32
	for _, oa := range other.Children {
		existing := root.findActionChild(oa.Act)
		if existing == nil {
			oa.Parent = root
			root.Children = append(root.Children, oa)
			continue
		}

		existing.edgeStats.mergeFrom(&oa.edgeStats)
		collisions++
	}
	return collisions
}

// StopReason reports why the most recent Compute call returned.
func (rc *RootCoordinator[S, A]) StopReason() StopReason {
	return rc.stopReason
}

// Cycles is the total number of iterate() cycles run by the most recent
// Compute call, summed across replicas.
func (rc *RootCoordinator[S, A]) Cycles() uint32 {
	return rc.cycles.Load()
}

// MaxDepth is the deepest decision reached during the most recent Compute
// call. Used for diagnostics only.
func (rc *RootCoordinator[S, A]) MaxDepth() int {
	return int(rc.maxdepth.Load())
}

// Cps is the most recently observed cycles-per-second throughput, grounded
// on the teacher's MCTS.cps (pkg/mcts/mcts.go/search.go): cycles*1000 /
// elapsed-ms, refreshed every cycle by every replica goroutine.
func (rc *RootCoordinator[S, A]) Cps() uint32 {
	return rc.cps.Load()
}

// CollisionCount is the number of root-parallel merge conflicts observed by
// the most recent Compute call: one per replica action that already
// existed on the primary root at merge time. Grounded on the teacher's
// collisionCount (pkg/mcts/mcts.go), repurposed from edge-parallel
// collisions to replica merge conflicts.
func (rc *RootCoordinator[S, A]) CollisionCount() uint32 {
	return rc.collisions.Load()
}

// CollisionFactor is CollisionCount/Cycles, mirroring the teacher's
// CollisionFactor. Returns 0 when no cycles have run yet.
func (rc *RootCoordinator[S, A]) CollisionFactor() float64 {
	cycles := rc.cycles.Load()
	if cycles == 0 {
		return 0
	}
	return float64(rc.collisions.Load()) / float64(cycles)
}

// Size is the approximate number of tree nodes (decision and action) grown
// by every Compute call on this coordinator, replicas included, plus the
// root. It is not reset between calls.
func (rc *RootCoordinator[S, A]) Size() uint32 {
	return rc.size.Load()
}

// BestAction returns the root's ActionNode maximising value, or false if
// the root is terminal or has no children. A nil value defaults to
// Config.Greedy.
func (rc *RootCoordinator[S, A]) BestAction(value TreeValue[S, A]) (*ActionNode[S, A], bool) {
	if rc.Root.Terminal() {
		return nil, false
	}
	if value == nil {
		value = rc.Config.Greedy
	}

	best := selectBestAction(value, rc.Root)
	return best, best != nil
}

// TopActions ranks the root's action children by value, most preferred
// first, truncated to n, grounded on the teacher's MultiPv (pkg/mcts/mcts.go).
func (rc *RootCoordinator[S, A]) TopActions(value TreeValue[S, A], n int) []*ActionNode[S, A] {
	if value == nil {
		value = rc.Config.Greedy
	}

	ranked := make([]*ActionNode[S, A], len(rc.Root.Children))
	copy(ranked, rc.Root.Children)

	sort.SliceStable(ranked, func(i, j int) bool {
		return value.Value(rc.Root, ranked[i]) > value.Value(rc.Root, ranked[j])
	})

	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
