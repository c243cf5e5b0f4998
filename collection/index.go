package collection

import (
	"github.com/hupe1980/recgo/record"
)

// keyKindOf classifies a value as a numeric or text identifier.
func keyKindOf(v record.Value) (KeyKind, bool) {
	switch {
	case v.IsNumber():
		return KeyKindNumber, true
	case v.Kind == record.KindString:
		return KeyKindText, true
	default:
		return KeyKindInvalid, false
	}
}

// keyLess orders two identifier values of the same kind.
func keyLess(a, b record.Value, kind KeyKind) bool {
	if kind == KeyKindNumber {
		af, _ := a.Float64()
		bf, _ := b.Float64()
		return af < bf
	}
	as, _ := a.AsString()
	bs, _ := b.AsString()
	return as < bs
}

// InsertionIndex returns the rightmost index i (0 <= i <= len(records)) such
// that splicing a record whose field equals value in at i preserves ascending
// order. Ties move rightward, so a duplicate value lands after existing ones.
//
// records must already be sorted ascending by field. An empty slice always
// yields index 0 with no type check. For a non-empty slice the value's kind
// must match the kind of the first record's field, otherwise an
// ErrTypeMismatch is returned: silently inserting into a differently-typed
// sequence would corrupt the sort order.
func InsertionIndex(records []record.Record, value record.Value, field string) (int, error) {
	if !value.IsDefined() {
		return 0, ErrUndefinedValue
	}
	if len(records) == 0 {
		return 0, nil
	}

	vk, ok := keyKindOf(value)
	if !ok {
		sk, _ := keyKindOf(records[0][field])
		return 0, &ErrTypeMismatch{Want: sk, Got: KeyKindInvalid}
	}
	sk, ok := keyKindOf(records[0][field])
	if !ok || sk != vk {
		return 0, &ErrTypeMismatch{Want: sk, Got: vk}
	}

	// Rightmost binary search: first index whose field compares greater.
	lo, hi := 0, len(records)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if keyLess(value, records[mid][field], vk) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo, nil
}

// Locate binary-searches records for the element whose field strictly equals
// value, returning its index. records must already be sorted ascending by
// field.
//
// Unlike InsertionIndex, an empty slice or a kind mismatch yields "not found"
// rather than an error: a lookup for a value the sequence cannot contain
// simply finds nothing. An undefined value is still an error.
func Locate(records []record.Record, value record.Value, field string) (int, bool, error) {
	if !value.IsDefined() {
		return 0, false, ErrUndefinedValue
	}
	if len(records) == 0 {
		return 0, false, nil
	}

	vk, ok := keyKindOf(value)
	if !ok {
		return 0, false, nil
	}
	sk, ok := keyKindOf(records[0][field])
	if !ok || sk != vk {
		return 0, false, nil
	}

	// Leftmost binary search, then an equality check.
	lo, hi := 0, len(records)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if keyLess(records[mid][field], value, vk) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(records) && record.Equal(records[lo][field], value) {
		return lo, true, nil
	}
	return 0, false, nil
}
