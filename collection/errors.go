package collection

import (
	"errors"
	"fmt"
)

var (
	// ErrUndefinedValue is returned when a search or insert helper is given an
	// undefined comparison value.
	ErrUndefinedValue = errors.New("comparison value is undefined")

	// ErrAmbiguousRemoval is returned when a conditional removal is requested
	// without a key or value. Clearing a collection has its own explicit
	// operation.
	ErrAmbiguousRemoval = errors.New("removal requires a key or value")
)

// KeyKind classifies an identifier value. Identifiers are a closed
// two-variant sum: numeric or text.
type KeyKind uint8

const (
	// KeyKindInvalid marks a value that cannot serve as an identifier.
	KeyKindInvalid KeyKind = iota
	// KeyKindNumber marks a numeric identifier (int or float).
	KeyKindNumber
	// KeyKindText marks a string identifier.
	KeyKindText
)

// String returns a human-readable name for the key kind.
func (k KeyKind) String() string {
	switch k {
	case KeyKindNumber:
		return "number"
	case KeyKindText:
		return "text"
	default:
		return "invalid"
	}
}

// ErrTypeMismatch indicates a comparison value whose kind differs from the
// identifier kind already established by a collection's records. Comparing
// across kinds with an ordering operator is not meaningful.
type ErrTypeMismatch struct {
	Want KeyKind
	Got  KeyKind
}

func (e *ErrTypeMismatch) Error() string {
	return fmt.Sprintf("identifier type mismatch: collection holds %s ids, got %s", e.Want, e.Got)
}
