package collection

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/recgo/record"
)

// valueIndex is an inverted index over record field values using Roaring
// Bitmaps, accelerating equality queries on non-identifier fields.
//
// Structure: field -> valueKey -> bitmap of record sequence numbers. Sequence
// numbers are stable per record for the lifetime of the collection, so the
// bitmaps survive splices that shift slice positions.
//
// Only scalar and array values are indexed; nested objects and opaque values
// have no stable key and fall back to scanning.
type valueIndex struct {
	inverted map[string]map[string]*roaring.Bitmap
}

func newValueIndex() *valueIndex {
	return &valueIndex{
		inverted: make(map[string]map[string]*roaring.Bitmap),
	}
}

func indexable(v record.Value) bool {
	switch v.Kind {
	case record.KindInvalid, record.KindObject, record.KindOpaque:
		return false
	case record.KindArray:
		arr, _ := v.AsArray()
		for _, e := range arr {
			if !indexable(e) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// indexKey widens integers to floats before key computation so that postings
// agree with record.Equal, which compares numbers across int/float.
func indexKey(v record.Value) string {
	return widen(v).Key()
}

func widen(v record.Value) record.Value {
	switch v.Kind {
	case record.KindInt:
		i, _ := v.AsInt64()
		return record.Float(float64(i))
	case record.KindArray:
		arr, _ := v.AsArray()
		widened := make([]record.Value, len(arr))
		for i, e := range arr {
			widened[i] = widen(e)
		}
		return record.Array(widened)
	default:
		return v
	}
}

// add indexes every indexable field of the record under seq.
func (vi *valueIndex) add(seq uint32, r record.Record) {
	for key, value := range r {
		if !indexable(value) {
			continue
		}

		valueMap, ok := vi.inverted[key]
		if !ok {
			valueMap = make(map[string]*roaring.Bitmap)
			vi.inverted[key] = valueMap
		}

		valueKey := indexKey(value)
		bitmap, ok := valueMap[valueKey]
		if !ok {
			bitmap = roaring.New()
			valueMap[valueKey] = bitmap
		}

		bitmap.Add(seq)
	}
}

// remove drops every indexable field of the record from seq's postings.
// Empty bitmaps are cleaned up so stale values do not accumulate.
func (vi *valueIndex) remove(seq uint32, r record.Record) {
	for key, value := range r {
		if !indexable(value) {
			continue
		}

		valueMap, ok := vi.inverted[key]
		if !ok {
			continue
		}

		valueKey := indexKey(value)
		bitmap, ok := valueMap[valueKey]
		if !ok {
			continue
		}

		bitmap.Remove(seq)

		if bitmap.IsEmpty() {
			delete(valueMap, valueKey)
			if len(valueMap) == 0 {
				delete(vi.inverted, key)
			}
		}
	}
}

func (vi *valueIndex) clear() {
	vi.inverted = make(map[string]map[string]*roaring.Bitmap)
}

// bitmapFor returns the postings for an exact field=value combination, or nil
// if no record carries it.
func (vi *valueIndex) bitmapFor(key string, value record.Value) *roaring.Bitmap {
	valueMap, ok := vi.inverted[key]
	if !ok {
		return nil
	}
	return valueMap[indexKey(value)]
}

// compile lowers a FilterSet to a single bitmap of matching sequence numbers.
//
// Only OpEqual and OpIn filters can be compiled; any other operator reports
// ok=false and the caller falls back to scanning. An empty (never nil) bitmap
// means the set provably matches nothing.
func (vi *valueIndex) compile(fs *record.FilterSet) (*roaring.Bitmap, bool) {
	if fs == nil || len(fs.Filters) == 0 {
		return nil, false
	}

	var result *roaring.Bitmap

	for _, filter := range fs.Filters {
		var filterBitmap *roaring.Bitmap

		switch filter.Operator {
		case record.OpEqual:
			if !indexable(filter.Value) {
				return nil, false
			}
			filterBitmap = vi.bitmapFor(filter.Key, filter.Value)

		case record.OpIn:
			arr, ok := filter.Value.AsArray()
			if !ok {
				return nil, false
			}
			filterBitmap = roaring.New()
			for _, v := range arr {
				if !indexable(v) {
					return nil, false
				}
				if bitmap := vi.bitmapFor(filter.Key, v); bitmap != nil {
					filterBitmap.Or(bitmap)
				}
			}

		default:
			return nil, false
		}

		if result == nil {
			if filterBitmap == nil {
				return roaring.New(), true
			}
			result = filterBitmap.Clone()
		} else if filterBitmap != nil {
			result.And(filterBitmap)
		} else {
			return roaring.New(), true
		}

		if result.IsEmpty() {
			return result, true
		}
	}

	return result, true
}

// stats aggregates bitmap counts for Stats reporting.
func (vi *valueIndex) stats() (fields, bitmaps int, cardinality uint64) {
	fields = len(vi.inverted)
	for _, valueMap := range vi.inverted {
		for _, bitmap := range valueMap {
			bitmaps++
			cardinality += bitmap.GetCardinality()
		}
	}
	return fields, bitmaps, cardinality
}
