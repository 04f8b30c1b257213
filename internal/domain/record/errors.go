package record

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable is the single failure kind surfaced for any record store problem.
var ErrStoreUnavailable = errors.New("record store unavailable")

// StoreError carries the detail of a failed store call for logs.
type StoreError struct {
	Resource   string
	Op         string
	StatusCode int
	Err        error
}

func (e *StoreError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d", e.Op, e.Resource, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Resource, e.Err)
}

func (e *StoreError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrStoreUnavailable}
	}
	return []error{ErrStoreUnavailable, e.Err}
}
