package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/recgo/record"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Intn returns a non-negative pseudo-random int in [0, n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Perm returns a pseudo-random permutation of [0, n).
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

var tags = []string{"go", "db", "infra", "web", "ml"}

// GenerateRecords produces n records with integer ids 0..n-1 in shuffled
// order, each carrying a title, a tag drawn from a small fixed set, and a
// numeric rank. Output is deterministic for a given seed.
func (r *RNG) GenerateRecords(n int) []record.Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := make([]record.Record, n)
	for i, id := range r.rand.Perm(n) {
		records[i] = record.Record{
			"id":    record.Int(int64(id)),
			"title": record.String(fmt.Sprintf("title-%d", id)),
			"tag":   record.String(tags[r.rand.Intn(len(tags))]),
			"rank":  record.Float(r.rand.Float64() * 100),
		}
	}
	return records
}

// GenerateMaps is like GenerateRecords but produces untyped maps, the shape
// a JSON decoder would hand to Load.
func (r *RNG) GenerateMaps(n int) []map[string]any {
	records := r.GenerateRecords(n)

	maps := make([]map[string]any, n)
	for i, rec := range records {
		m := make(map[string]any, len(rec))
		for k, v := range rec {
			switch v.Kind {
			case record.KindInt:
				i64, _ := v.AsInt64()
				m[k] = i64
			case record.KindFloat:
				f64, _ := v.AsFloat64()
				m[k] = f64
			default:
				m[k] = v.StringValue()
			}
		}
		maps[i] = m
	}
	return maps
}
