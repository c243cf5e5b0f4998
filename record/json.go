package record

import (
	"encoding/json"
	"strconv"
)

// MarshalJSON implements json.Marshaler using the natural JSON representation
// (numbers, strings, booleans, arrays, objects). Invalid values marshal as
// null; opaque values are marshaled on a best-effort basis.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindInt:
		return strconv.AppendInt(nil, v.I64, 10), nil
	case KindFloat:
		return json.Marshal(v.F64)
	case KindString:
		return json.Marshal(v.s.Value())
	case KindBool:
		return strconv.AppendBool(nil, v.B), nil
	case KindArray:
		if v.A == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.A)
	case KindObject:
		if v.O == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.O)
	case KindOpaque:
		return json.Marshal(v.X)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler. JSON numbers decode as floats,
// matching the dynamic-payload semantics of Load.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	vv, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = vv
	return nil
}
