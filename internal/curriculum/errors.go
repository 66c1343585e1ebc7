package curriculum

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a catalog has no curriculum with the requested ID.
var ErrNotFound = errors.New("curriculum not found")

// ErrInvalidDocument indicates a curriculum document that could not be
// decoded or does not conform to the curriculum schema.
type ErrInvalidDocument struct {
	Source string
	Err    error
}

func (e *ErrInvalidDocument) Error() string {
	return fmt.Sprintf("invalid curriculum document %s: %v", e.Source, e.Err)
}

func (e *ErrInvalidDocument) Unwrap() error { return e.Err }
