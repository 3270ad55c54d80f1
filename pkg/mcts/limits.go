package mcts

import (
	"encoding/json"
	"math"
	"strings"
)

// Limits bounds a single call to RootCoordinator.Compute. The minimum
// requirement is bounding search by iteration count; this is kept as a
// strict superset (iterations, wall-clock, tree size, or descent depth),
// grounded on the teacher's own Limits/Limiter pair.
type Limits struct {
	Depth        int   // search stops once the tree's max decision depth reaches this
	Nodes        uint32 // maximum number of tree nodes (decision + action)
	Iterations   uint32 // maximum number of iterate() cycles
	Movetime     int    // wall-clock budget in milliseconds, -1 = unlimited
	Infinite     bool
	ParallelRoots int   // not read by Compute, which uses Config.ParallelRoots
	ByteSize     int64  // approximate memory budget in bytes, -1 = unlimited
	TopActions   int    // not read by Diagnostics, which takes the count as an argument
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return builder.String()
}

const (
	DefaultDepthLimit      int    = math.MaxInt
	DefaultNodeLimit       uint32 = math.MaxInt32*2 + 1
	DefaultMovetimeLimit   int    = -1
	DefaultByteSizeLimit   int64  = -1
	DefaultIterationsLimit uint32 = math.MaxInt32*2 + 1
)

func DefaultLimits() *Limits {
	return &Limits{
		Depth:         DefaultDepthLimit,
		Nodes:         DefaultNodeLimit,
		Iterations:    DefaultIterationsLimit,
		Movetime:      DefaultMovetimeLimit,
		Infinite:      true,
		ParallelRoots: 1,
		ByteSize:      DefaultByteSizeLimit,
		TopActions:    1,
	}
}

// SetDepth stops the search once the tree's max decision depth reaches depth.
func (l *Limits) SetDepth(depth int) *Limits {
	l.Depth = depth
	l.Infinite = false
	return l
}

// SetNodes sets the maximum number of tree nodes the engine may allocate.
func (l *Limits) SetNodes(nodes uint32) *Limits {
	l.Nodes = nodes
	l.Infinite = false
	return l
}

// SetIterations sets the number of iterate() cycles run per tree.
func (l *Limits) SetIterations(iterations uint32) *Limits {
	l.Iterations = iterations
	l.Infinite = false
	return l
}

// SetMovetime sets the wall-clock budget, in milliseconds.
func (l *Limits) SetMovetime(movetime int) *Limits {
	l.Movetime = movetime
	l.Infinite = false
	return l
}

func (l *Limits) SetInfinite(infinite bool) {
	l.Infinite = infinite
}

// SetParallelRoots records a replica count in Limits. Compute does not read
// it; the replica count Compute uses is Config.ParallelRoots.
func (l *Limits) SetParallelRoots(roots int) *Limits {
	l.ParallelRoots = max(roots, 1)
	return l
}

func (l *Limits) SetTopActions(n int) *Limits {
	l.TopActions = max(1, n)
	return l
}

func (l *Limits) SetMbSize(mbsize int) *Limits {
	return l.SetByteSize(int64(mbsize) * (1 << 20))
}

func (l *Limits) SetByteSize(bytesize int64) *Limits {
	l.ByteSize = bytesize
	l.Infinite = false
	return l
}

func (l *Limits) InfiniteSize() bool {
	return l.ByteSize == -1
}
