package mcts

// ActionLine is one ranked root action, reported the way the teacher's
// SearchLine reports one principal variation (stats_listener.go).
type ActionLine[A Action[A]] struct {
	Action A
	Visits int32
	Mean   Result
}

// TreeStats is a tree-statistics snapshot (max depth, node count, ranked
// top actions) alongside best_action for diagnostics, grounded on the
// teacher's ListenerTreeStats (stats_listener.go), generalised from
// per-move PV lines to ranked action lines since this tree has no notion of
// a principal variation beyond one ply of actions.
type TreeStats[A Action[A]] struct {
	NodeCount  int
	MaxDepth   int
	Cycles     uint32
	// Cps is cycles-per-second throughput, mirroring the teacher's
	// MCTS.Cps (pkg/mcts/mcts.go).
	Cps uint32
	// Collisions is the number of root-parallel merge conflicts observed
	// during the most recent Compute call: one per replica action that
	// already existed on the primary root at merge time. Repurposes the
	// teacher's collisionCount (pkg/mcts/mcts.go) from edge-parallel
	// collisions to replica merge conflicts.
	Collisions      uint32
	CollisionFactor float64
	StopReason      StopReason
	TopActions      []ActionLine[A]
}

// Diagnostics builds a TreeStats snapshot of rc's current root, ranking the
// top n actions by value. A nil value defaults to Config.Greedy.
func (rc *RootCoordinator[S, A]) Diagnostics(value TreeValue[S, A], n int) TreeStats[A] {
	ranked := rc.TopActions(value, n)
	lines := make([]ActionLine[A], len(ranked))
	for i, a := range ranked {
		lines[i] = ActionLine[A]{
			Action: a.Act,
			Visits: a.Visits(),
			Mean:   a.Mean(),
		}
	}

	return TreeStats[A]{
		NodeCount:       rc.Root.NodeCount(),
		MaxDepth:        rc.MaxDepth(),
		Cycles:          rc.Cycles(),
		Cps:             rc.Cps(),
		Collisions:      rc.CollisionCount(),
		CollisionFactor: rc.CollisionFactor(),
		StopReason:      rc.StopReason(),
		TopActions:      lines,
	}
}
