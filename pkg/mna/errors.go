package mna

import "errors"

// ErrInvalidSize is returned by NewStampContext when asked for a
// non-positive number of variables.
var ErrInvalidSize = errors.New("mna: context size must be positive")

// ErrSingular is returned by Solve when the pivot column is
// numerically zero and the system has no stable solution.
var ErrSingular = errors.New("mna: matrix is singular to working precision")
