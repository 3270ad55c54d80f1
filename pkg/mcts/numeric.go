package mcts

import "golang.org/x/exp/constraints"

// regularize guards a denominator against division by zero when averaging
// over a potentially-unvisited counter, the epsilon-regularisation ucb.go's
// UCB1 applies to Result-typed accumulators, generalised over
// any floating type the way numeric generic code elsewhere in the pack
// narrows its type parameters (sw965-crow/blas32 constrains its numeric
// generics the same way).
func regularize[F constraints.Float](n F) F {
	return n + F(epsilon)
}
