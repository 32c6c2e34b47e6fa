package broadening

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter indicates a physical parameter outside its valid range.
	ErrInvalidParameter = errors.New("broadening: invalid parameter")

	// ErrUnknownParameter indicates a parameter name SetParam does not know.
	ErrUnknownParameter = errors.New("broadening: unknown parameter")
)

// ParameterError describes one rejected parameter value.
type ParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("broadening: invalid %s=%g: %s", e.Name, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}
