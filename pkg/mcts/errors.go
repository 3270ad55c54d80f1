package mcts

import "fmt"

// ContractViolation is raised, via panic, when a caller-supplied Problem or
// State/Action implementation breaks one of the contracts this engine
// relies on: these are programmer errors (an OutcomeSampler returning a nil
// node, NextAction called after HasMoreActions is false),
// not runtime failures, so they panic instead of returning an error. It is
// never returned, only panicked with, matching the teacher's own
// bracket-tagged panics (e.g. pkg/mcts/search.go's mergeResult mismatch
// panic).
type ContractViolation struct {
	Op  string
	Msg string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("[mcts] %s: %s", e.Op, e.Msg)
}

// violate logs the contract violation at trace level before panicking, so
// the line survives even though the process subsequently aborts.
func violate(op, msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	Logger.Trace().Str("op", op).Msg(formatted)
	panic(&ContractViolation{Op: op, Msg: formatted})
}
