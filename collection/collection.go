package collection

import (
	"slices"

	"github.com/hupe1980/recgo/record"
)

// Options configures a Collection.
type Options struct {
	// IDField is the name of the identifier field records must carry.
	IDField string

	// ValueIndexing enables the Roaring Bitmap inverted index over field
	// values, accelerating equality queries on non-identifier fields.
	ValueIndexing bool
}

// DefaultOptions is the default configuration.
var DefaultOptions = Options{
	IDField:       "id",
	ValueIndexing: true,
}

// Collection is a named, identifier-sorted sequence of records.
//
// The record slice is invariantly kept sorted ascending by the identifier
// field and holds no two records with the same identifier. All mutation goes
// through the collection's operations; callers must not reorder or splice the
// slice themselves.
//
// A Collection is not safe for concurrent use. It is owned exclusively by the
// store that holds it.
type Collection struct {
	name    string
	idField string

	records []record.Record
	seqs    []uint32
	nextSeq uint32

	index *valueIndex
}

// New creates an empty collection with the given name.
func New(name string, optFns ...func(o *Options)) *Collection {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	c := &Collection{
		name:    name,
		idField: opts.IDField,
	}
	if opts.ValueIndexing {
		c.index = newValueIndex()
	}
	return c
}

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// IDField returns the name of the identifier field.
func (c *Collection) IDField() string { return c.idField }

// Len returns the number of records.
func (c *Collection) Len() int { return len(c.records) }

// InsertAll inserts or merges the given records in input order.
//
// For each record the collection is searched for an existing record with the
// same identifier. On a hit the existing record is merged with the incoming
// one in place (the incoming record is discarded after its fields are copied
// in); on a miss the record is spliced in at its sort position. The
// collection remains sorted and duplicate-free by identifier afterwards.
//
// There is no rollback: if a record fails mid-sequence, insertions and merges
// already applied remain in effect.
func (c *Collection) InsertAll(records []record.Record) error {
	for _, r := range records {
		id := r[c.idField]

		i, found, err := Locate(c.records, id, c.idField)
		if err != nil {
			return err
		}

		if found {
			existing := c.records[i]
			if c.index != nil {
				c.index.remove(c.seqs[i], existing)
			}
			record.Merge(existing, r)
			if c.index != nil {
				c.index.add(c.seqs[i], existing)
			}
			continue
		}

		pos, err := InsertionIndex(c.records, id, c.idField)
		if err != nil {
			return err
		}

		seq := c.nextSeq
		c.nextSeq++
		c.records = slices.Insert(c.records, pos, r)
		c.seqs = slices.Insert(c.seqs, pos, seq)
		if c.index != nil {
			c.index.add(seq, r)
		}
	}
	return nil
}

// All returns a shallow copy of the record sequence in identifier order. The
// records themselves are shared, not cloned.
func (c *Collection) All() []record.Record {
	return slices.Clone(c.records)
}

// SortedView returns a shallow copy of the records sorted by the given key.
//
// If the first record's key field is numeric the sort is numeric, otherwise
// lexicographic; records missing the key sort first. For the identifier field
// (or an empty key) the copy is returned as-is, since the collection is
// already in identifier order.
func (c *Collection) SortedView(key string) []record.Record {
	out := slices.Clone(c.records)
	if key == "" || key == c.idField {
		return out
	}

	numeric := false
	if len(out) > 0 {
		numeric = out[0][key].IsNumber()
	}

	slices.SortStableFunc(out, func(a, b record.Record) int {
		return viewCompare(a[key], b[key], numeric)
	})
	return out
}

func viewCompare(a, b record.Value, numeric bool) int {
	if numeric {
		af, aok := a.Float64()
		bf, bok := b.Float64()
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return -1
		case !bok:
			return 1
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	as, aok := a.AsString()
	bs, bok := b.AsString()
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

// QueryByID returns the single record carrying the given identifier, or an
// empty result. The lookup is a binary search.
func (c *Collection) QueryByID(id record.Value) ([]record.Record, error) {
	i, found, err := Locate(c.records, id, c.idField)
	if err != nil {
		return nil, err
	}
	if !found {
		return []record.Record{}, nil
	}
	return []record.Record{c.records[i]}, nil
}

// QueryKV returns all records whose key field equals value, preserving
// identifier order. A missing key or no match yields an empty result.
func (c *Collection) QueryKV(key string, value record.Value) []record.Record {
	if c.index != nil && indexable(value) {
		bitmap := c.index.bitmapFor(key, value)
		if bitmap == nil {
			return []record.Record{}
		}
		out := make([]record.Record, 0, bitmap.GetCardinality())
		for i, r := range c.records {
			if bitmap.Contains(c.seqs[i]) {
				out = append(out, r)
			}
		}
		return out
	}

	out := []record.Record{}
	for _, r := range c.records {
		if v, ok := r[key]; ok && record.Equal(v, value) {
			out = append(out, r)
		}
	}
	return out
}

// Search returns all records matching the filter set, preserving identifier
// order. Equality and membership filters are answered from the inverted
// index when possible; other operators fall back to scanning.
func (c *Collection) Search(fs *record.FilterSet) []record.Record {
	if fs == nil || len(fs.Filters) == 0 {
		return c.All()
	}

	if c.index != nil {
		if bitmap, ok := c.index.compile(fs); ok {
			out := make([]record.Record, 0, bitmap.GetCardinality())
			for i, r := range c.records {
				if bitmap.Contains(c.seqs[i]) {
					out = append(out, r)
				}
			}
			return out
		}
	}

	out := []record.Record{}
	for _, r := range c.records {
		if fs.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// FindByID returns the record carrying the given identifier via binary
// search.
func (c *Collection) FindByID(id record.Value) (record.Record, bool, error) {
	i, found, err := Locate(c.records, id, c.idField)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}
	return c.records[i], true, nil
}

// FindKV returns the first record whose key field equals value.
func (c *Collection) FindKV(key string, value record.Value) (record.Record, bool) {
	for _, r := range c.records {
		if v, ok := r[key]; ok && record.Equal(v, value) {
			return r, true
		}
	}
	return nil, false
}

// RemoveRecords removes each given record by its identifier, collecting the
// actually-removed records in result order. Records not present are silently
// skipped; the collection afterwards equals the original minus the result.
func (c *Collection) RemoveRecords(records []record.Record) ([]record.Record, error) {
	removed := []record.Record{}

	for _, r := range records {
		id := r[c.idField]

		i, found, err := Locate(c.records, id, c.idField)
		if err != nil {
			return removed, err
		}
		if !found {
			continue
		}

		victim := c.records[i]
		if c.index != nil {
			c.index.remove(c.seqs[i], victim)
		}
		c.records = slices.Delete(c.records, i, i+1)
		c.seqs = slices.Delete(c.seqs, i, i+1)
		removed = append(removed, victim)
	}

	return removed, nil
}

// RemoveWhere removes all records whose key field equals value, returning
// them in result order. An empty key defaults to the identifier field.
func (c *Collection) RemoveWhere(key string, value record.Value) ([]record.Record, error) {
	if !value.IsDefined() {
		return nil, ErrAmbiguousRemoval
	}

	var matches []record.Record
	if key == "" || key == c.idField {
		var err error
		matches, err = c.QueryByID(value)
		if err != nil {
			return nil, err
		}
	} else {
		matches = c.QueryKV(key, value)
	}

	return c.RemoveRecords(matches)
}

// Clear truncates the collection to empty. The identifier kind resets with
// the content; value index postings are dropped.
func (c *Collection) Clear() {
	c.records = nil
	c.seqs = nil
	if c.index != nil {
		c.index.clear()
	}
}

// Stats describes a collection's size and index footprint.
type Stats struct {
	Records          int
	IndexedFields    int
	Bitmaps          int
	TotalCardinality uint64
}

// GetStats returns statistics about the collection.
func (c *Collection) GetStats() Stats {
	stats := Stats{Records: len(c.records)}
	if c.index != nil {
		stats.IndexedFields, stats.Bitmaps, stats.TotalCardinality = c.index.stats()
	}
	return stats
}
