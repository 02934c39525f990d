package knn

import (
	"errors"
	"fmt"
)

// ErrInvalidK is returned when k is not positive.
var ErrInvalidK = errors.New("k must be positive")

// ErrInsufficientNeighbors indicates that fewer candidate neighbours remained
// after exclusion than the k requested. Construct the classifier with ClampK
// to shrink k to the available count instead.
type ErrInsufficientNeighbors struct {
	K         int
	Available int
}

func (e *ErrInsufficientNeighbors) Error() string {
	return fmt.Sprintf("insufficient neighbours: requested k=%d, available=%d", e.K, e.Available)
}
