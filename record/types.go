package record

import (
	"math"
	"strconv"
	"strings"
	"unique"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid (undefined) kind.
	KindInvalid Kind = iota
	// KindNull represents a null value.
	KindNull
	// KindInt represents an integer value.
	KindInt
	// KindFloat represents a float value.
	KindFloat
	// KindString represents a string value.
	KindString
	// KindBool represents a boolean value.
	KindBool
	// KindArray represents an array value.
	KindArray
	// KindObject represents a nested keyed structure.
	KindObject
	// KindOpaque represents a host value copied by reference and never
	// recursed into (time.Time, funcs, user structs).
	KindOpaque
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindOpaque:
		return "opaque"
	default:
		return "invalid"
	}
}

// Value is a small typed value used for record fields and filters.
//
// The representation is designed to make comparison and deep copy fast and
// predictable: no reflection and no fmt-based stringification.
type Value struct {
	Kind Kind
	I64  int64
	F64  float64
	s    unique.Handle[string] // Private interned string
	B    bool
	A    []Value
	O    Record
	X    any
}

// StringValue returns the string value if Kind is KindString, otherwise empty string.
func (v Value) StringValue() string {
	if v.Kind == KindString {
		return v.s.Value()
	}
	return ""
}

// Key returns a stable string representation for use in maps.
//
// It is intended for internal indexing (inverted value indexes) and must
// remain stable across versions for snapshot usage.
func (v Value) Key() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindInt:
		return "i:" + strconv.FormatInt(v.I64, 10)
	case KindFloat:
		return "f:" + strconv.FormatUint(math.Float64bits(v.F64), 16)
	case KindString:
		return "s:" + v.s.Value()
	case KindBool:
		if v.B {
			return "b:1"
		}
		return "b:0"
	case KindArray:
		if len(v.A) == 0 {
			return "a:"
		}
		parts := make([]string, len(v.A))
		for i := range v.A {
			parts[i] = v.A[i].Key()
		}
		return "a:" + strings.Join(parts, "\x1f")
	case KindObject:
		// Objects and opaque values are not indexable.
		return "o:"
	case KindOpaque:
		return "x:"
	default:
		return "invalid"
	}
}

// IsDefined reports whether the value carries a usable kind.
// Invalid and null values are treated as undefined for identifier purposes.
func (v Value) IsDefined() bool {
	return v.Kind != KindInvalid && v.Kind != KindNull
}

// IsNumber reports whether the value is numeric (int or float).
func (v Value) IsNumber() bool {
	return v.Kind == KindInt || v.Kind == KindFloat
}

// Float64 returns the numeric value widened to float64.
// Returns false if the value is not numeric.
func (v Value) Float64() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.I64), true
	case KindFloat:
		return v.F64, true
	default:
		return 0, false
	}
}

// AsInt64 returns the int64 value if Kind is KindInt.
func (v Value) AsInt64() (int64, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	return v.I64, true
}

// AsFloat64 returns the float64 value if Kind is KindFloat.
func (v Value) AsFloat64() (float64, bool) {
	if v.Kind != KindFloat {
		return 0, false
	}
	return v.F64, true
}

// AsString returns the string value if Kind is KindString.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.s.Value(), true
}

// AsBool returns the boolean value if Kind is KindBool.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}
	return v.B, true
}

// AsArray returns the array value if Kind is KindArray.
func (v Value) AsArray() ([]Value, bool) {
	if v.Kind != KindArray {
		return nil, false
	}
	return v.A, true
}

// AsObject returns the nested record if Kind is KindObject.
func (v Value) AsObject() (Record, bool) {
	if v.Kind != KindObject {
		return nil, false
	}
	return v.O, true
}

// AsOpaque returns the opaque host value if Kind is KindOpaque.
func (v Value) AsOpaque() (any, bool) {
	if v.Kind != KindOpaque {
		return nil, false
	}
	return v.X, true
}

// Null returns a null Value.
func Null() Value { return Value{Kind: KindNull} }

// Int returns an int64 Value.
func Int(v int64) Value { return Value{Kind: KindInt, I64: v} }

// Float returns a float64 Value.
func Float(v float64) Value { return Value{Kind: KindFloat, F64: v} }

// String returns a string Value.
func String(v string) Value { return Value{Kind: KindString, s: unique.Make(v)} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{Kind: KindBool, B: v} }

// Array returns an array Value.
func Array(v []Value) Value { return Value{Kind: KindArray, A: v} }

// Object returns a nested record Value.
func Object(v Record) Value { return Value{Kind: KindObject, O: v} }

// Opaque returns an opaque Value holding an arbitrary host value.
func Opaque(v any) Value { return Value{Kind: KindOpaque, X: v} }

// Record is an arbitrary keyed structure of fields.
//
// Records are reference types: merge operations mutate a record in place, and
// every holder of the same record observes the mutation.
type Record = map[string]Value

// Clone creates a deep copy of the record.
//
// Arrays and nested objects are copied recursively, ensuring the clone shares
// no mutable state with the original. Opaque values are copied by reference.
func Clone(r Record) Record {
	if r == nil {
		return nil
	}

	clone := make(Record, len(r))
	for k, v := range r {
		clone[k] = v.clone()
	}
	return clone
}

// clone creates a deep copy of a Value, including nested arrays and objects.
func (v Value) clone() Value {
	switch v.Kind {
	case KindArray:
		if len(v.A) == 0 {
			return v
		}
		arrayCopy := make([]Value, len(v.A))
		for i := range v.A {
			arrayCopy[i] = v.A[i].clone()
		}
		return Value{Kind: KindArray, A: arrayCopy}
	case KindObject:
		return Value{Kind: KindObject, O: Clone(v.O)}
	default:
		// Simple values are copied by value semantics, opaque by reference.
		return v
	}
}
