// Package recgo provides an embedded, in-memory typed record store for Go.
//
// A Store organizes named collections of key-identified records, keeps each
// collection sorted by its identifier field for O(log n) lookup, and supports
// pluggable record construction via factories.
//
//   - Sorted collections: binary-search insertion keeps every collection
//     ordered by id under mixed insert/merge operations
//   - Deep-copy merge: loading a record that already exists merges it
//     field-by-field into the stored record, in place
//   - Typed values: record fields use a tagged-variant value model
//     (null/int/float/string/bool/array/object/opaque)
//   - Value indexing: Roaring Bitmap inverted index accelerates equality
//     queries on non-identifier fields
//   - Flexible payloads: records, maps, sequences, or JSON-encoded strings
//
// # Quick Start
//
//	store := recgo.New()
//	_ = store.AddCollection("posts")
//
//	err := store.Load("posts", `[
//	    {"id": 1, "title": "first"},
//	    {"id": 2, "title": "second"}
//	]`)
//
//	post, err := store.Get("posts", 1)
//	all, err := store.All("posts")
//	byTitle, err := store.SortBy("posts", "title")
//
// Records are stored by reference: merging a reload into an existing record
// mutates it in place, and every holder of that record observes the change.
//
// A Store is not safe for concurrent use. All operations are synchronous and
// the store's state is owned exclusively by its caller; wrap access in your
// own synchronization if you share a store across goroutines.
package recgo

import (
	"fmt"
	"slices"
	"time"

	"github.com/hupe1980/recgo/codec"
	"github.com/hupe1980/recgo/collection"
	"github.com/hupe1980/recgo/record"
)

// Store is a container of named, identifier-sorted record collections with
// optional per-collection construction factories.
type Store struct {
	collections map[string]*collection.Collection
	factories   map[string]Factory

	codec         codec.Codec
	metrics       MetricsCollector
	logger        *Logger
	idField       string
	valueIndexing bool
}

// New creates an empty store.
func New(optFns ...Option) *Store {
	opts := applyOptions(optFns)

	return &Store{
		collections:   make(map[string]*collection.Collection),
		factories:     make(map[string]Factory),
		codec:         opts.codec,
		metrics:       opts.metricsCollector,
		logger:        opts.logger,
		idField:       opts.idField,
		valueIndexing: opts.valueIndexing,
	}
}

// AddCollection creates an empty collection under the given name.
// Adding a name that already exists fails with ErrDuplicateCollection.
func (s *Store) AddCollection(name string) error {
	if _, exists := s.collections[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateCollection, name)
	}

	s.collections[name] = collection.New(name, func(o *collection.Options) {
		o.IDField = s.idField
		o.ValueIndexing = s.valueIndexing
	})
	return nil
}

// HasCollection reports whether a collection with the given name exists.
func (s *Store) HasCollection(name string) bool {
	_, ok := s.collections[name]
	return ok
}

// CollectionNames returns the names of all collections, sorted.
func (s *Store) CollectionNames() []string {
	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Clear truncates every collection to empty. Collections themselves and
// factory bindings are kept.
func (s *Store) Clear() {
	for _, c := range s.collections {
		c.Clear()
	}
}

// AddFactory binds a construction factory to a collection name. The
// collection must exist, the factory must be non-nil, and at most one
// factory can be bound per name at a time.
func (s *Store) AddFactory(name string, factory Factory) error {
	if _, ok := s.collections[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}
	if factory == nil {
		return fmt.Errorf("%w: nil factory for %q", ErrInvalidFactory, name)
	}
	if _, bound := s.factories[name]; bound {
		return fmt.Errorf("%w: factory already bound for %q", ErrInvalidFactory, name)
	}

	s.factories[name] = factory
	return nil
}

// RemoveFactory removes the factory bound to the given name, if any.
func (s *Store) RemoveFactory(name string) {
	delete(s.factories, name)
}

// ClearFactories removes all factory bindings. Collections are unaffected.
func (s *Store) ClearFactories() {
	s.factories = make(map[string]Factory)
}

// CreateModel builds a new record for the named collection.
//
// If a factory is bound to the name, all arguments are passed through to it
// unchanged and its result is returned as-is. Otherwise an empty record is
// built and every argument that is a keyed structure (record.Record or
// map[string]any) is deep-copy merged into it; other arguments contribute no
// fields.
func (s *Store) CreateModel(name string, args ...any) (record.Record, error) {
	start := time.Now()
	rec, viaFactory, err := s.createModel(name, args...)
	err = translateError(err)
	s.metrics.RecordCreate(time.Since(start), err)
	s.logger.LogCreate(name, viaFactory, err)
	return rec, err
}

func (s *Store) createModel(name string, args ...any) (record.Record, bool, error) {
	if _, ok := s.collections[name]; !ok {
		return nil, false, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}

	if factory, bound := s.factories[name]; bound {
		rec, err := factory.Create(args...)
		return rec, true, err
	}

	rec := record.Record{}
	for _, arg := range args {
		v, err := record.FromAny(arg)
		if err != nil {
			return nil, false, err
		}
		if obj, ok := v.AsObject(); ok {
			record.Merge(rec, obj)
		}
	}
	return rec, false, nil
}

// Load normalizes the payload into a sequence of records and inserts them
// into the named collection in input order.
//
// Accepted payloads: a record, a map[string]any, a slice of either, an
// []any mixing them, or a JSON-encoded string/[]byte of any of those. A
// string that fails to parse is an *ErrMalformedJSON; other payload shapes
// fail with ErrInvalidPayload.
//
// When a factory with a RecordRecognizer capability is bound, elements it
// recognizes pass through unchanged; every other element is routed through
// CreateModel first.
func (s *Store) Load(name string, payload any) error {
	start := time.Now()
	count, err := s.load(name, payload)
	err = translateError(err)
	s.metrics.RecordLoad(count, time.Since(start), err)
	s.logger.LogLoad(name, count, err)
	return err
}

func (s *Store) load(name string, payload any) (int, error) {
	c, ok := s.collections[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}

	elems, err := s.normalizePayload(payload)
	if err != nil {
		return 0, err
	}

	factory := s.factories[name]
	recognizer, _ := factory.(RecordRecognizer)

	records := make([]record.Record, 0, len(elems))
	for _, elem := range elems {
		if recognizer != nil && recognizer.Recognizes(elem) {
			if r, isRecord := elem.(record.Record); isRecord {
				records = append(records, r)
				continue
			}
		}

		r, _, err := s.createModel(name, elem)
		if err != nil {
			return 0, err
		}
		records = append(records, r)
	}

	if err := c.InsertAll(records); err != nil {
		return len(records), err
	}
	return len(records), nil
}

// SortBy returns a copy of the named collection sorted by the given key.
// An empty key or the identifier field returns the canonical id order.
func (s *Store) SortBy(name, key string) ([]record.Record, error) {
	c, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}
	return c.SortedView(key), nil
}

// All queries the named collection.
//
// With no arguments it returns a copy of the whole collection. A single
// argument keeps the legacy positional interpretation and is treated as an
// identifier value, returning at most one record. With two arguments the
// first must be a field name and the second the value to match; matching
// records are returned in collection order, an empty result if nothing
// matches. Extra arguments are ignored.
func (s *Store) All(name string, args ...any) ([]record.Record, error) {
	start := time.Now()
	out, err := s.queryArgs(name, args)
	err = translateError(err)
	s.metrics.RecordQuery(time.Since(start), err)
	s.logger.LogQuery(name, len(out), err)
	return out, err
}

func (s *Store) queryArgs(name string, args []any) ([]record.Record, error) {
	c, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}

	switch len(args) {
	case 0:
		return c.All(), nil
	case 1:
		v, err := record.FromAny(args[0])
		if err != nil {
			return nil, err
		}
		return c.QueryByID(v)
	default:
		key, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("query key must be a string, got %T", args[0])
		}
		v, err := record.FromAny(args[1])
		if err != nil {
			return nil, err
		}
		if key == c.IDField() {
			return c.QueryByID(v)
		}
		return c.QueryKV(key, v), nil
	}
}

// Find is like All but returns the first match, or ErrNotFound. Lookups by
// identifier use binary search.
func (s *Store) Find(name string, args ...any) (record.Record, error) {
	start := time.Now()
	rec, err := s.findArgs(name, args)
	err = translateError(err)
	n := 0
	if rec != nil {
		n = 1
	}
	s.metrics.RecordQuery(time.Since(start), err)
	s.logger.LogQuery(name, n, err)
	return rec, err
}

func (s *Store) findArgs(name string, args []any) (record.Record, error) {
	c, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}

	switch len(args) {
	case 0:
		all := c.All()
		if len(all) == 0 {
			return nil, ErrNotFound
		}
		return all[0], nil
	case 1:
		v, err := record.FromAny(args[0])
		if err != nil {
			return nil, err
		}
		rec, found, err := c.FindByID(v)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, ErrNotFound
		}
		return rec, nil
	default:
		key, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("query key must be a string, got %T", args[0])
		}
		v, err := record.FromAny(args[1])
		if err != nil {
			return nil, err
		}
		if key == c.IDField() {
			rec, found, err := c.FindByID(v)
			if err != nil {
				return nil, err
			}
			if !found {
				return nil, ErrNotFound
			}
			return rec, nil
		}
		rec, found := c.FindKV(key, v)
		if !found {
			return nil, ErrNotFound
		}
		return rec, nil
	}
}

// Get returns the single record with the given identifier, or ErrNotFound.
func (s *Store) Get(name string, id any) (record.Record, error) {
	return s.Find(name, id)
}

// Where returns all records of the named collection matching the filter set,
// in collection order. Equality and membership filters are answered from the
// inverted value index when it is enabled.
func (s *Store) Where(name string, fs *record.FilterSet) ([]record.Record, error) {
	start := time.Now()
	c, ok := s.collections[name]
	if !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownCollection, name)
		s.metrics.RecordQuery(time.Since(start), err)
		s.logger.LogQuery(name, 0, err)
		return nil, err
	}

	out := c.Search(fs)
	s.metrics.RecordQuery(time.Since(start), nil)
	s.logger.LogQuery(name, len(out), nil)
	return out, nil
}

// RemoveModels removes the given records (a record, a map, a slice of
// either, or a JSON-encoded string of those) from the named collection by
// their identifiers, returning the records actually removed. Records not
// present are silently skipped.
func (s *Store) RemoveModels(name string, models any) ([]record.Record, error) {
	start := time.Now()
	removed, err := s.removeModels(name, models)
	err = translateError(err)
	s.metrics.RecordRemove(len(removed), time.Since(start), err)
	s.logger.LogRemove(name, len(removed), err)
	return removed, err
}

func (s *Store) removeModels(name string, models any) ([]record.Record, error) {
	c, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}

	elems, err := s.normalizePayload(models)
	if err != nil {
		return nil, err
	}

	records := make([]record.Record, 0, len(elems))
	for _, elem := range elems {
		r, err := asRecord(elem)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return c.RemoveRecords(records)
}

// RemoveWhere removes records matching a key/value condition, returning the
// removed records. At least one argument is required: with a single argument
// the value is matched against the identifier field; with two the first is
// the field name and the second the value. Calling with no arguments fails
// with ErrAmbiguousRemoval; truncating a collection is Clear's job.
func (s *Store) RemoveWhere(name string, args ...any) ([]record.Record, error) {
	start := time.Now()
	removed, err := s.removeWhere(name, args)
	err = translateError(err)
	s.metrics.RecordRemove(len(removed), time.Since(start), err)
	s.logger.LogRemove(name, len(removed), err)
	return removed, err
}

func (s *Store) removeWhere(name string, args []any) ([]record.Record, error) {
	c, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}

	switch len(args) {
	case 0:
		return nil, ErrAmbiguousRemoval
	case 1:
		v, err := record.FromAny(args[0])
		if err != nil {
			return nil, err
		}
		return c.RemoveWhere("", v)
	default:
		key, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("removal key must be a string, got %T", args[0])
		}
		v, err := record.FromAny(args[1])
		if err != nil {
			return nil, err
		}
		return c.RemoveWhere(key, v)
	}
}

// Stats describes the store's collections and their index footprint.
type Stats struct {
	Collections int
	Factories   int
	Records     int
	PerCol      map[string]collection.Stats
}

// GetStats returns statistics about the store.
func (s *Store) GetStats() Stats {
	stats := Stats{
		Collections: len(s.collections),
		Factories:   len(s.factories),
		PerCol:      make(map[string]collection.Stats, len(s.collections)),
	}
	for name, c := range s.collections {
		cs := c.GetStats()
		stats.Records += cs.Records
		stats.PerCol[name] = cs
	}
	return stats
}
