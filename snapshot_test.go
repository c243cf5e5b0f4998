package recgo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/recgo/codec"
	"github.com/hupe1980/recgo/record"
)

func loadSnapshotFixture(t *testing.T) *Store {
	t.Helper()

	store := newTestStore(t, "posts", "users")
	require.NoError(t, store.Load("posts", []map[string]any{
		{"id": 1, "title": "first", "tags": []any{"go", "db"}},
		{"id": 2, "title": "second", "meta": map[string]any{"draft": true}},
	}))
	require.NoError(t, store.Load("users", map[string]any{"id": "u1", "name": "alice"}))
	return store
}

func TestSnapshotRoundTrip(t *testing.T) {
	compressions := []struct {
		name string
		typ  CompressionType
	}{
		{"none", CompressionNone},
		{"zstd", CompressionZSTD},
		{"lz4", CompressionLZ4},
	}

	for _, comp := range compressions {
		t.Run(comp.name, func(t *testing.T) {
			src := loadSnapshotFixture(t)

			var buf bytes.Buffer
			require.NoError(t, src.SaveSnapshot(&buf, func(o *SnapshotOptions) {
				o.Compression = comp.typ
			}))

			dst := New()
			require.NoError(t, dst.RestoreSnapshot(&buf))

			assert.Equal(t, []string{"posts", "users"}, dst.CollectionNames())

			posts, err := dst.All("posts")
			require.NoError(t, err)
			require.Len(t, posts, 2)
			assert.True(t, record.Equal(posts[0]["title"], record.String("first")))

			tags, ok := posts[0]["tags"].AsArray()
			require.True(t, ok)
			require.Len(t, tags, 2)
			assert.True(t, record.Equal(tags[0], record.String("go")))

			meta, ok := posts[1]["meta"].AsObject()
			require.True(t, ok)
			assert.True(t, record.Equal(meta["draft"], record.Bool(true)))

			user, err := dst.Get("users", "u1")
			require.NoError(t, err)
			assert.True(t, record.Equal(user["name"], record.String("alice")))
		})
	}
}

func TestSnapshotCodecRecordedInHeader(t *testing.T) {
	src := loadSnapshotFixture(t)

	var buf bytes.Buffer
	require.NoError(t, src.SaveSnapshot(&buf, func(o *SnapshotOptions) {
		o.Codec = codec.JSON{}
	}))

	// restoring store uses a different default codec; the header wins
	dst := New(WithCodec(codec.GoJSON{}))
	require.NoError(t, dst.RestoreSnapshot(&buf))

	posts, err := dst.All("posts")
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestRestoreSnapshotTruncatesExisting(t *testing.T) {
	src := loadSnapshotFixture(t)

	var buf bytes.Buffer
	require.NoError(t, src.SaveSnapshot(&buf))

	dst := newTestStore(t, "posts")
	require.NoError(t, dst.Load("posts", map[string]any{"id": 99, "title": "stale"}))

	require.NoError(t, dst.RestoreSnapshot(&buf))

	posts, err := dst.All("posts")
	require.NoError(t, err)
	require.Len(t, posts, 2)

	_, err = dst.Get("posts", 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRestoreSnapshotInvalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad magic", []byte("NOPE\x01\x00\x04json{}")},
		{"truncated header", []byte("RSNP\x01")},
		{"bad version", []byte("RSNP\x09\x00\x04json{}")},
		{"unknown codec", []byte("RSNP\x01\x00\x03xml{}")},
		{"unknown compression", []byte("RSNP\x01\x09\x04json{}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := New()
			err := store.RestoreSnapshot(bytes.NewReader(tt.data))
			assert.ErrorIs(t, err, ErrInvalidSnapshot)
		})
	}
}

func TestSnapshotPreservesIDOrder(t *testing.T) {
	store := newTestStore(t, "posts")
	require.NoError(t, store.Load("posts", []map[string]any{
		{"id": 3}, {"id": 1}, {"id": 2},
	}))

	var buf bytes.Buffer
	require.NoError(t, store.SaveSnapshot(&buf))

	dst := New()
	require.NoError(t, dst.RestoreSnapshot(&buf))

	posts, err := dst.All("posts")
	require.NoError(t, err)
	require.Len(t, posts, 3)
	for i, want := range []float64{1, 2, 3} {
		got, ok := posts[i]["id"].Float64()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}
