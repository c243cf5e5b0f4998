// Package record provides the typed value model, deep-copy merge policy and
// field filtering for recgo records.
//
// # Value Types
//
// Record field values are small tagged variants:
//
//   - String: record.String("first")
//   - Int: record.Int(2024)
//   - Float: record.Float(3.14)
//   - Bool: record.Bool(true)
//   - Array: record.Array([]record.Value{...})
//   - Object: record.Object(record.Record{...})
//   - Opaque: record.Opaque(anyHostValue)
//
// Example:
//
//	rec := record.Record{
//	    "id":    record.Int(1),
//	    "title": record.String("first"),
//	    "tags":  record.Array([]record.Value{record.String("a")}),
//	}
//
// # Merge
//
// record.Merge copies fields of one or more source records into a target,
// deep-copying arrays and nested objects so merged data shares no mutable
// state with its source. The target is mutated in place.
//
// # Filters
//
// Filter and FilterSet express field conditions (eq, ne, gt, gte, lt, lte,
// in, contains) evaluated against records; all filters in a set must match.
package record
