package types

import "errors"

// Domain errors for suggestion validation
var (
	ErrScoreOutOfRange      = errors.New("score must be between 0 and 1000")
	ErrIndexOutOfBounds     = errors.New("match index out of bounds")
	ErrIndicesNotIncreasing = errors.New("match indices must be strictly increasing")
)
