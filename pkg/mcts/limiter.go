package mcts

import (
	"context"
	"math"
	"sync/atomic"
	"unsafe"
)

type StopReason int

const (
	StopNone       StopReason = iota
	StopInterrupt             = 1  // Stopped by user, by calling .SetStop(true) or context cancellation
	StopMovetime              = 2  // Time limit reached
	StopMemory                = 4  // Memory limit reached
	StopDepth                 = 8  // Depth limit reached
	StopIterations            = 16 // Iteration limit reached
)

func (sr StopReason) String() string {
	if sr == StopNone {
		return "None"
	}

	reasons := []struct {
		flag StopReason
		name string
	}{
		{StopInterrupt, "Interrupt"},
		{StopMovetime, "Movetime"},
		{StopMemory, "Memory"},
		{StopDepth, "Depth"},
		{StopIterations, "Iterations"},
	}

	var result string
	for _, r := range reasons {
		if sr&r.flag == r.flag {
			if result != "" {
				result += "|"
			}
			result += r.name
		}
	}

	return result
}

const (
	stopMask       int = StopInterrupt
	timeMask       int = StopMovetime
	memoryMask     int = StopMemory
	depthMask      int = StopDepth
	iterationsMask int = StopIterations
)

// LimiterLike is consulted once per iterate() cycle. The search loop itself
// performs no suspension and no I/O; the caller-visible stopping condition
// lives entirely in this interface.
type LimiterLike interface {
	SetContext(ctx context.Context)
	SetLimits(*Limits)
	Limits() *Limits
	// Elapsed returns elapsed time in ms since the last Reset call.
	Elapsed() uint32
	SetStop(bool)
	Stop() bool
	// Reset clears the limiter's flags; called once per Compute call.
	Reset()
	// Expand reports whether the tree may still grow (false once a memory
	// budget has been exhausted).
	Expand() bool
	// Ok reports whether the search loop should keep iterating.
	Ok(size, depth, iterations uint32) bool
	StopReason() StopReason
	// EvaluateStopReason is called once, by the coordinating goroutine,
	// after the loop exits, to freeze the reason for diagnostics.
	EvaluateStopReason(size, depth, iterations uint32)
}

type Limiter struct {
	limits     *Limits
	Timer      *_Timer
	nodeSize   uint32
	maxSize    uint32
	expand     atomic.Bool
	stop       atomic.Bool
	areSetMask int
	reason     StopReason
	ctx        context.Context
}

func NewLimiter(nodeSize uint32) *Limiter {
	limiter := &Limiter{
		limits:   DefaultLimits(),
		Timer:    _NewTimer(),
		nodeSize: nodeSize,
		ctx:      context.Background(),
	}

	limiter.expand.Store(true)
	return limiter
}

func (l *Limiter) Reset() {
	l.Timer.Movetime(l.limits.Movetime)
	l.Timer.Reset()
	l.stop.Store(false)
	l.expand.Store(true)
	l.reason = StopNone

	if l.limits.ByteSize != DefaultByteSizeLimit {
		l.maxSize = uint32(l.limits.ByteSize) / l.nodeSize
	} else {
		l.maxSize = math.MaxUint32
	}

	// Pre-calculate 'are set' limit mask, see OkMask for more explanation.
	l.areSetMask = toMask(l.Timer.IsSet(), 1) |
		toMask(l.limits.ByteSize != DefaultByteSizeLimit, 2) |
		toMask(l.limits.Depth != DefaultDepthLimit, 3) |
		toMask(l.limits.Iterations != DefaultIterationsLimit, 4)
}

func (l *Limiter) EvaluateStopReason(size, depth, iterations uint32) {
	okMask := l.OkMask(size, depth, iterations)
	reason := StopNone

	if okMask&stopMask == stopMask {
		reason |= StopInterrupt
	}
	if okMask&timeMask == timeMask {
		reason |= StopMovetime
	}
	if okMask&memoryMask == memoryMask {
		reason |= StopMemory
	}
	if okMask&depthMask == depthMask {
		reason |= StopDepth
	}
	if okMask&iterationsMask == iterationsMask {
		reason |= StopIterations
	}

	l.reason = reason
}

func (l *Limiter) StopReason() StopReason {
	return l.reason
}

func (l *Limiter) SetContext(ctx context.Context) {
	l.ctx = ctx
}

func (l *Limiter) SetStop(v bool) {
	l.stop.Store(v)
}

func (l *Limiter) Stop() bool {
	select {
	case <-l.ctx.Done():
		l.stop.Store(true)
	default:
	}
	return l.stop.Load()
}

func (l *Limiter) SetLimits(limits *Limits) {
	l.limits = limits
}

func (l *Limiter) Limits() *Limits {
	return l.limits
}

func (l *Limiter) Elapsed() uint32 {
	return uint32(l.Timer.Deltatime())
}

func (l *Limiter) Expand() bool {
	return l.expand.Load()
}

func toMask(val bool, offset int) int {
	return int(*(*byte)(unsafe.Pointer(&val))) << offset
}

func (l *Limiter) LimitMask(size, depth, iterations uint32) int {
	stop := l.Stop()
	if l.limits.Infinite {
		return toMask(stop, 0)
	}

	limitMask := 0
	limitMask |= toMask(stop, 0)
	limitMask |= toMask(l.Timer.IsEnd(), 1)
	limitMask |= toMask(l.maxSize <= size, 2)
	limitMask |= toMask(l.limits.Depth <= int(depth), 3)
	limitMask |= toMask(l.limits.Iterations <= iterations, 4)

	return limitMask
}

func (l *Limiter) OkMask(size, depth, iterations uint32) int {
	limitMask := l.LimitMask(size, depth, iterations)

	// Hierarchy of stop signals: interrupt, movetime, memory, depth, iterations.
	// (time/nodes/iterations or any combination) AND memory limit ->
	// if memory is exhausted, disable expanding and wait for the other limit.
	if (l.areSetMask&memoryMask) == memoryMask && (l.areSetMask&(timeMask|iterationsMask)) != 0 {
		if limitMask&memoryMask == memoryMask {
			l.expand.Store(false)
			limitMask ^= memoryMask
		}
	}

	return limitMask
}

func (l *Limiter) Ok(size, depth, iterations uint32) bool {
	return l.OkMask(size, depth, iterations) == 0
}
