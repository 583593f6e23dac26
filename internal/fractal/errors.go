package fractal

import (
	"errors"
	"fmt"
)

// Domain errors for parameter validation.
var (
	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("fractal: parameter out of valid bounds")

	// ErrUnknownKind indicates a fractal kind name that cannot be parsed.
	ErrUnknownKind = errors.New("fractal: unknown fractal kind")
)

// BoundsError wraps ErrParameterBounds with the rejected field.
type BoundsError struct {
	Field string
	Value float64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: %s=%g", ErrParameterBounds.Error(), e.Field, e.Value)
}

func (e *BoundsError) Unwrap() error {
	return ErrParameterBounds
}
