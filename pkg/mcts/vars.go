package mcts

import (
	"time"

	"golang.org/x/exp/rand"
)

// rngSource is the Source interface sampleuv needs.
type rngSource = rand.Source

// SeedGeneratorFn produces the seed for each replica's random source in a
// root-parallel search. Grounded on the teacher's vars.go; default uses the
// current time in nanoseconds, same as the teacher.
var SeedGeneratorFn SeedGeneratorFnType = func() int64 {
	return time.Now().UnixNano()
}

// SetSeedGeneratorFn installs a custom seed generator, e.g. for
// reproducible tests.
func SetSeedGeneratorFn(f SeedGeneratorFnType) {
	if f != nil {
		SeedGeneratorFn = f
	}
}

// defaultRNG backs DPW's weighted outcome draw when no per-worker rand
// source was configured. Package-level like the teacher's
// ExplorationParam/SeedGeneratorFn globals, and, like those, not safe for
// concurrent use — root.go's Compute gives every replica goroutine its own
// seeded source instead of reaching for this one whenever ParallelRoots > 1
// and the outcome sampler is seedable.
var defaultRNG = rand.New(rand.NewSource(uint64(SeedGeneratorFn())))
