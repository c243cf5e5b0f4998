package recgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/recgo/collection"
)

var (
	// ErrDuplicateCollection is returned when adding a collection name that
	// already exists.
	ErrDuplicateCollection = errors.New("collection already exists")

	// ErrUnknownCollection is returned when an operation references a
	// collection name that was never added.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrInvalidFactory is returned when registering a factory without a
	// usable create capability, or registering twice for the same name.
	ErrInvalidFactory = errors.New("invalid factory registration")

	// ErrInvalidPayload is returned when Load is given a payload that is
	// neither a record, a sequence of records, nor a JSON-encoded string.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrNotFound is returned when a single-record lookup matches nothing.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguousRemoval is returned when RemoveWhere is called with neither
	// key nor value. Clearing everything has its own explicit operation.
	ErrAmbiguousRemoval = collection.ErrAmbiguousRemoval

	// ErrUndefinedValue is returned when an identifier lookup or removal is
	// given an undefined value.
	ErrUndefinedValue = collection.ErrUndefinedValue

	// ErrInvalidSnapshot is returned when snapshot bytes carry an unknown
	// header or codec.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// ErrMalformedJSON indicates a string payload that failed to parse.
//
// The underlying codec error can be accessed via errors.Unwrap.
type ErrMalformedJSON struct {
	cause error
}

func (e *ErrMalformedJSON) Error() string {
	return "malformed JSON payload: " + e.cause.Error()
}

func (e *ErrMalformedJSON) Unwrap() error { return e.cause }

// ErrTypeMismatch indicates an identifier whose kind differs from the kind a
// collection's records established.
type ErrTypeMismatch struct {
	Want  collection.KeyKind
	Got   collection.KeyKind
	cause error
}

func (e *ErrTypeMismatch) Error() string {
	return fmt.Sprintf("identifier type mismatch: collection holds %s ids, got %s", e.Want, e.Got)
}

func (e *ErrTypeMismatch) Unwrap() error { return e.cause }

// translateError maps collection-layer errors onto the store's surface.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var tm *collection.ErrTypeMismatch
	if errors.As(err, &tm) {
		return &ErrTypeMismatch{Want: tm.Want, Got: tm.Got, cause: err}
	}

	return err
}
