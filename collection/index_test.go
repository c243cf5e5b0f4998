package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/recgo/record"
)

func numericRecords(ids ...int64) []record.Record {
	out := make([]record.Record, len(ids))
	for i, id := range ids {
		out[i] = record.Record{"id": record.Int(id)}
	}
	return out
}

func TestInsertionIndexEmpty(t *testing.T) {
	for _, v := range []record.Value{record.Int(7), record.String("x"), record.Float(1.5)} {
		i, err := InsertionIndex(nil, v, "id")
		require.NoError(t, err)
		assert.Equal(t, 0, i)
	}
}

func TestInsertionIndexBoundaries(t *testing.T) {
	recs := numericRecords(1, 2, 3, 4, 5)

	tests := []struct {
		value int64
		want  int
	}{
		{value: 0, want: 0},
		{value: 1, want: 1},
		{value: 2, want: 2},
		{value: 3, want: 3},
		{value: 4, want: 4},
		{value: 5, want: 5},
		{value: 6, want: 5},
	}

	for _, tt := range tests {
		i, err := InsertionIndex(recs, record.Int(tt.value), "id")
		require.NoError(t, err)
		assert.Equal(t, tt.want, i, "value %d", tt.value)
	}
}

func TestInsertionIndexTiesMoveRightward(t *testing.T) {
	recs := numericRecords(1, 2, 2, 3)

	i, err := InsertionIndex(recs, record.Int(2), "id")
	require.NoError(t, err)
	assert.Equal(t, 3, i)
}

func TestInsertionIndexTypeMismatch(t *testing.T) {
	recs := numericRecords(1, 2, 3)

	_, err := InsertionIndex(recs, record.String("2"), "id")
	var tm *ErrTypeMismatch
	require.ErrorAs(t, err, &tm)
	assert.Equal(t, KeyKindNumber, tm.Want)
	assert.Equal(t, KeyKindText, tm.Got)

	// Values that can never be identifiers are also a mismatch.
	_, err = InsertionIndex(recs, record.Bool(true), "id")
	require.ErrorAs(t, err, &tm)
	assert.Equal(t, KeyKindInvalid, tm.Got)
}

func TestInsertionIndexUndefinedValue(t *testing.T) {
	_, err := InsertionIndex(numericRecords(1), record.Value{}, "id")
	assert.ErrorIs(t, err, ErrUndefinedValue)

	_, err = InsertionIndex(numericRecords(1), record.Null(), "id")
	assert.ErrorIs(t, err, ErrUndefinedValue)
}

func TestLocateHitsAndMisses(t *testing.T) {
	recs := numericRecords(1, 2, 3, 4, 5)

	for id := int64(1); id <= 5; id++ {
		i, found, err := Locate(recs, record.Int(id), "id")
		require.NoError(t, err)
		require.True(t, found, "id %d", id)
		assert.Equal(t, int(id-1), i)
	}

	for _, id := range []int64{0, 6} {
		_, found, err := Locate(recs, record.Int(id), "id")
		require.NoError(t, err)
		assert.False(t, found, "id %d", id)
	}
}

func TestLocateMismatchIsNotFoundNotError(t *testing.T) {
	recs := numericRecords(1, 2, 3)

	_, found, err := Locate(recs, record.String("2"), "id")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = Locate(nil, record.Int(1), "id")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLocateUndefinedValueIsError(t *testing.T) {
	_, _, err := Locate(numericRecords(1), record.Value{}, "id")
	assert.ErrorIs(t, err, ErrUndefinedValue)
}

func TestLocateCrossNumericKinds(t *testing.T) {
	recs := []record.Record{
		{"id": record.Float(1)},
		{"id": record.Float(2)},
	}

	// Int and float identifiers are the same numeric kind.
	i, found, err := Locate(recs, record.Int(2), "id")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 1, i)
}

func TestLocateLexicographic(t *testing.T) {
	recs := []record.Record{
		{"id": record.String("alpha")},
		{"id": record.String("beta")},
		{"id": record.String("gamma")},
	}

	i, found, err := Locate(recs, record.String("beta"), "id")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 1, i)

	pos, err := InsertionIndex(recs, record.String("delta"), "id")
	require.NoError(t, err)
	assert.Equal(t, 2, pos)
}
