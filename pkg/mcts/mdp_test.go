package mcts

import "sync"

// gridAction and gridState implement a tiny deterministic grid-world used
// across the package's tests: a grid with a goal cell and a reward of 1 for
// entering it. It is the smallest State/Action pair that exercises expansion,
// outcome dedup, and terminal detection.
type gridAction int

const (
	gridUp gridAction = iota
	gridRight
	gridDown
	gridLeft
)

var gridActionOrder = []gridAction{gridUp, gridRight, gridDown, gridLeft}

func (a gridAction) Equal(other gridAction) bool { return a == other }

// gridRegistry tracks, per cell, how many of the four actions have already
// been handed out by NextAction. A real State implementation in this
// engine is expected to carry its own exploration bookkeeping; this
// registry is the test fixture's version of that, keyed by cell, so the
// enumeration advances monotonically no matter how many times a cell is
// visited. Every DecisionNode holding the same cell shares it: once a
// cell's four actions have been handed out anywhere in the tree,
// HasMoreActions is false for that cell everywhere.
type gridRegistry struct {
	mu       sync.Mutex
	explored map[[2]int]int
}

func newGridRegistry() *gridRegistry {
	return &gridRegistry{explored: make(map[[2]int]int)}
}

func (r *gridRegistry) next(x, y int) (gridAction, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := [2]int{x, y}
	idx := r.explored[key]
	if idx >= len(gridActionOrder) {
		return gridUp, false
	}
	r.explored[key] = idx + 1
	return gridActionOrder[idx], true
}

func (r *gridRegistry) hasMore(x, y int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.explored[[2]int{x, y}] < len(gridActionOrder)
}

type gridState struct {
	x, y int
	size int
	goal [2]int
	reg  *gridRegistry
}

func (r *gridRegistry) newState(x, y, size int, goal [2]int) gridState {
	return gridState{x: x, y: y, size: size, goal: goal, reg: r}
}

func (s gridState) Terminal() bool {
	return s.x == s.goal[0] && s.y == s.goal[1]
}

func (s gridState) HasMoreActions() bool {
	if s.Terminal() {
		return false
	}
	return s.reg.hasMore(s.x, s.y)
}

func (s gridState) NextAction() gridAction {
	a, ok := s.reg.next(s.x, s.y)
	if !ok {
		violate("gridState.NextAction", "called with no untried actions left")
	}
	return a
}

func (s gridState) Move(a gridAction) gridState {
	nx, ny := s.x, s.y
	switch a {
	case gridUp:
		if ny < s.size-1 {
			ny++
		}
	case gridDown:
		if ny > 0 {
			ny--
		}
	case gridRight:
		if nx < s.size-1 {
			nx++
		}
	case gridLeft:
		if nx > 0 {
			nx--
		}
	}
	return s.reg.newState(nx, ny, s.size, s.goal)
}

func (s gridState) Equal(other gridState) bool {
	return s.x == other.x && s.y == other.y
}

type gridProblem struct {
	rolloutAction gridAction
}

func (p gridProblem) Reward(from gridState, action gridAction, to gridState) Result {
	if to.Terminal() {
		return 1
	}
	return 0
}

func (p gridProblem) RolloutPolicy(state gridState) gridAction {
	return p.rolloutAction
}

func (p gridProblem) InitialValue(state gridState) Result {
	return 0
}

func newGrid(size int, goal [2]int) (gridProblem, gridState) {
	reg := newGridRegistry()
	return gridProblem{rolloutAction: gridUp}, reg.newState(0, 0, size, goal)
}
