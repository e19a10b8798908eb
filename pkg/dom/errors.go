package dom

import (
	"errors"
	"fmt"
)

// Addressing and capability errors
var (
	ErrNotFound           = errors.New("no element matches selector")
	ErrCapabilityMismatch = errors.New("element does not support operation")
)

// AddressingError reports a selector that could not be resolved
type AddressingError struct {
	Selector string
	Err      error
}

func (e *AddressingError) Error() string {
	return fmt.Sprintf("element of query %q: %v", e.Selector, e.Err)
}

func (e *AddressingError) Unwrap() error {
	return e.Err
}

// CapabilityError reports an operation attempted on an element kind that does not support it
type CapabilityError struct {
	Tag       string
	Operation string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("cannot %s on <%s>: %v", e.Operation, e.Tag, ErrCapabilityMismatch)
}

func (e *CapabilityError) Unwrap() error {
	return ErrCapabilityMismatch
}
