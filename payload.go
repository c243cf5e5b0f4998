package recgo

import (
	"fmt"

	"github.com/hupe1980/recgo/record"
)

// normalizePayload converts a load payload into a flat sequence of elements.
// Strings and byte slices are decoded with the store's codec first; a decode
// failure surfaces as *ErrMalformedJSON. Scalars and unsupported shapes fail
// with ErrInvalidPayload.
func (s *Store) normalizePayload(payload any) ([]any, error) {
	switch p := payload.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil payload", ErrInvalidPayload)
	case string:
		return s.decodePayload([]byte(p))
	case []byte:
		return s.decodePayload(p)
	case record.Record:
		return []any{p}, nil
	case map[string]any:
		return []any{p}, nil
	case []record.Record:
		elems := make([]any, len(p))
		for i, r := range p {
			elems[i] = r
		}
		return elems, nil
	case []map[string]any:
		elems := make([]any, len(p))
		for i, m := range p {
			elems[i] = m
		}
		return elems, nil
	case []any:
		return p, nil
	default:
		return nil, fmt.Errorf("%w: unsupported payload type %T", ErrInvalidPayload, payload)
	}
}

func (s *Store) decodePayload(data []byte) ([]any, error) {
	var decoded any
	if err := s.codec.Unmarshal(data, &decoded); err != nil {
		return nil, &ErrMalformedJSON{cause: err}
	}

	switch d := decoded.(type) {
	case map[string]any:
		return []any{d}, nil
	case []any:
		return d, nil
	default:
		return nil, fmt.Errorf("%w: decoded payload is %T, want object or array", ErrInvalidPayload, decoded)
	}
}

// asRecord coerces a normalized payload element into a record.
func asRecord(elem any) (record.Record, error) {
	switch e := elem.(type) {
	case record.Record:
		return e, nil
	case map[string]any:
		return record.FromAnyMap(e)
	default:
		return nil, fmt.Errorf("%w: element type %T is not a record", ErrInvalidPayload, elem)
	}
}
