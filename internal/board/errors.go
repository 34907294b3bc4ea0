package board

import "errors"

// ErrOrderViolation indicates a column whose orders are not a dense 0..n-1 sequence
var ErrOrderViolation = errors.New("column order violation")
