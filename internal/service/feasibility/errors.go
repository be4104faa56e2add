package feasibility

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable marks failures to read the entity store. A validation
// call that returns it computed nothing; it never carries a partial result.
var ErrStoreUnavailable = errors.New("entity store unavailable")

// StoreError records which read failed during a validation pass.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStoreUnavailable, e.Op, e.Err)
}

// Unwrap exposes the driver error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is matches ErrStoreUnavailable.
func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

func storeError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
