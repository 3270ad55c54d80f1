package mcts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCoordinatorComputeRunsExactIterations(t *testing.T) {
	problem, root := newGrid(5, [2]int{4, 4})
	cfg := NewConfig[gridState, gridAction](
		WithRolloutDepth[gridState, gridAction](3),
	)
	cfg.Limits.SetIterations(200)

	rc := NewRootCoordinator[gridState, gridAction](problem, root, cfg)
	rc.Compute(context.Background())

	require.EqualValues(t, 200, rc.Cycles(), "Compute should run exactly the configured iteration budget")
	require.NotZero(t, rc.StopReason()&StopIterations, "stop reason should include StopIterations")
}

func TestRootCoordinatorBestActionNoneWhenTerminal(t *testing.T) {
	problem, terminal := newGrid(3, [2]int{0, 0})
	cfg := NewConfig[gridState, gridAction]()
	cfg.Limits.SetIterations(10)

	rc := NewRootCoordinator[gridState, gridAction](problem, terminal, cfg)
	rc.Compute(context.Background())

	_, ok := rc.BestAction(nil)
	require.False(t, ok, "BestAction should report false for a terminal root")
}

func TestRootCoordinatorBestActionFindsGoalDirection(t *testing.T) {
	problem, root := newGrid(3, [2]int{2, 0})
	cfg := NewConfig[gridState, gridAction](
		WithUCB1[gridState, gridAction](1.0),
		WithRolloutDepth[gridState, gridAction](4),
	)
	cfg.Limits.SetIterations(2000)

	rc := NewRootCoordinator[gridState, gridAction](problem, root, cfg)
	rc.Compute(context.Background())

	best, ok := rc.BestAction(nil)
	require.True(t, ok, "BestAction should find a root action in a non-terminal start")
	require.Equal(t, gridRight, best.Act, "goal is directly to the right of the start cell")
}

func TestRootCoordinatorTopActionsRankedDescending(t *testing.T) {
	problem, root := newGrid(3, [2]int{2, 0})
	cfg := NewConfig[gridState, gridAction]()
	cfg.Limits.SetIterations(500)

	rc := NewRootCoordinator[gridState, gridAction](problem, root, cfg)
	rc.Compute(context.Background())

	top := rc.TopActions(nil, 2)
	require.LessOrEqual(t, len(top), 2, "TopActions(_, 2) should never return more than 2")

	for i := 1; i < len(top); i++ {
		require.GreaterOrEqual(t, top[i-1].Mean(), top[i].Mean(),
			"TopActions should be sorted descending by value")
	}
}

func TestMergeRootsPresentActionMergesStatsOnlyAndCountsCollision(t *testing.T) {
	_, rootState := newGrid(3, [2]int{2, 2})
	root := NewRoot[gridState, gridAction](rootState, 0, 1.0)
	other := NewRoot[gridState, gridAction](rootState, 0, 1.0)

	ra, _ := root.actionChild(gridUp, 0)
	ra.addVisit(1.0)
	root.addVisit()

	oa, _ := other.actionChild(gridUp, 0)
	oa.addVisit(3.0)
	oa.addVisit(1.0)
	other.addVisits(2)
	grandchild, _ := oa.outcomeChild(rootState.Move(gridUp))
	grandchild.addVisit()

	collisions := mergeRoots[gridState, gridAction](root, other)

	require.EqualValues(t, 1, collisions, "gridUp already existed on root, so this is one merge conflict")
	require.EqualValues(t, 3, root.Visits(), "merged root visits should be 1 local + 2 other")

	merged := root.findActionChild(gridUp)
	require.NotNil(t, merged)
	require.EqualValues(t, 3, merged.Visits(), "merged action visits should be 1 local + 2 other")
	require.Equal(t, 5.0, merged.W(), "merged action W should be 1.0 local + 4.0 other")
	require.Empty(t, merged.Children, "a present action merges stats only, never the replica's grandchildren")
}

func TestMergeRootsAbsentActionReparentsWholeSubtree(t *testing.T) {
	_, rootState := newGrid(3, [2]int{2, 2})
	root := NewRoot[gridState, gridAction](rootState, 0, 1.0)
	other := NewRoot[gridState, gridAction](rootState, 0, 1.0)

	root.addVisit()

	oa, _ := other.actionChild(gridUp, 0)
	oa.addVisit(3.0)
	other.addVisits(1)
	grandchild, _ := oa.outcomeChild(rootState.Move(gridUp))
	grandchild.addVisit()

	collisions := mergeRoots[gridState, gridAction](root, other)

	require.Zero(t, collisions, "gridUp was absent from root, so reparenting is not a merge conflict")

	reparented := root.findActionChild(gridUp)
	require.NotNil(t, reparented, "mergeRoots should attach the replica's action when root has none")
	require.Same(t, oa, reparented, "the replica's ActionNode itself should be reparented, not copied")
	require.Equal(t, reparented.Parent, root, "reparented action's Parent must point at the new owner")
	require.Len(t, reparented.Children, 1, "reparenting must carry the replica's whole subtree, not just its stats")
	require.Same(t, grandchild, reparented.Children[0])
}
