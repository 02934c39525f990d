package distance

import "fmt"

// ErrDimensionMismatch indicates that two vectors or matrices being compared
// do not share the same feature length.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidPower indicates a non-positive Minkowski power parameter.
type ErrInvalidPower struct {
	P float64
}

func (e *ErrInvalidPower) Error() string {
	return fmt.Sprintf("invalid power parameter: %v (must be > 0)", e.P)
}
