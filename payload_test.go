package recgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/recgo/record"
)

func TestNormalizePayload(t *testing.T) {
	store := New()

	tests := []struct {
		name    string
		payload any
		want    int
		wantErr error
	}{
		{
			name:    "record",
			payload: record.Record{"id": record.Int(1)},
			want:    1,
		},
		{
			name:    "map",
			payload: map[string]any{"id": 1},
			want:    1,
		},
		{
			name:    "record slice",
			payload: []record.Record{{"id": record.Int(1)}, {"id": record.Int(2)}},
			want:    2,
		},
		{
			name:    "map slice",
			payload: []map[string]any{{"id": 1}, {"id": 2}, {"id": 3}},
			want:    3,
		},
		{
			name:    "any slice",
			payload: []any{map[string]any{"id": 1}, record.Record{"id": record.Int(2)}},
			want:    2,
		},
		{
			name:    "json object string",
			payload: `{"id": 1}`,
			want:    1,
		},
		{
			name:    "json array string",
			payload: `[{"id": 1}, {"id": 2}]`,
			want:    2,
		},
		{
			name:    "json bytes",
			payload: []byte(`[{"id": 1}]`),
			want:    1,
		},
		{
			name:    "empty json array",
			payload: `[]`,
			want:    0,
		},
		{
			name:    "nil",
			payload: nil,
			wantErr: ErrInvalidPayload,
		},
		{
			name:    "scalar",
			payload: 42,
			wantErr: ErrInvalidPayload,
		},
		{
			name:    "json scalar string",
			payload: `"just a string"`,
			wantErr: ErrInvalidPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elems, err := store.normalizePayload(tt.payload)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Len(t, elems, tt.want)
		})
	}
}

func TestNormalizePayloadMalformedJSON(t *testing.T) {
	store := New()

	_, err := store.normalizePayload(`{"id": 1,`)

	var malformed *ErrMalformedJSON
	require.ErrorAs(t, err, &malformed)
	assert.Error(t, malformed.Unwrap())
}

func TestAsRecord(t *testing.T) {
	rec, err := asRecord(record.Record{"id": record.Int(1)})
	require.NoError(t, err)
	assert.True(t, record.Equal(rec["id"], record.Int(1)))

	rec, err = asRecord(map[string]any{"id": 1, "nested": map[string]any{"a": true}})
	require.NoError(t, err)
	assert.True(t, record.Equal(rec["id"], record.Int(1)))

	nested, ok := rec["nested"].AsObject()
	require.True(t, ok)
	assert.True(t, record.Equal(nested["a"], record.Bool(true)))

	_, err = asRecord("not a record")
	assert.ErrorIs(t, err, ErrInvalidPayload)
}
