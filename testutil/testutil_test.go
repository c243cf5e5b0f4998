package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/recgo/record"
)

func TestGenerateRecordsDeterministic(t *testing.T) {
	a := NewRNG(7).GenerateRecords(50)
	b := NewRNG(7).GenerateRecords(50)

	require.Len(t, a, 50)
	for i := range a {
		assert.True(t, record.Equal(a[i]["id"], b[i]["id"]))
		assert.True(t, record.Equal(a[i]["tag"], b[i]["tag"]))
	}
}

func TestGenerateRecordsCoversAllIDs(t *testing.T) {
	records := NewRNG(1).GenerateRecords(100)

	seen := make(map[int64]bool, len(records))
	for _, rec := range records {
		id, ok := rec["id"].AsInt64()
		require.True(t, ok)
		seen[id] = true
	}
	assert.Len(t, seen, 100)
}

func TestReset(t *testing.T) {
	rng := NewRNG(3)
	first := rng.Perm(20)

	rng.Reset()
	assert.Equal(t, first, rng.Perm(20))
}
