// Package collection implements the sorted-collection engine: an
// identifier-sorted record sequence maintained by binary search under mixed
// insert/merge operations.
//
// # Ordering
//
// A collection keeps its records sorted ascending by the identifier field
// (default "id"). Identifiers are a closed two-variant sum, numeric or text;
// numeric identifiers order by numeric value, text identifiers
// lexicographically. A collection never mixes identifier kinds: inserting a
// differently-kinded identifier fails with ErrTypeMismatch.
//
// # Insertion
//
// InsertAll locates each incoming record by identifier. Hits are merged into
// the existing record in place (deep-copy field merge, incoming fields win);
// misses are spliced in at the rightmost position preserving sort order.
//
// # Queries
//
// Lookups by identifier are binary searches. Equality queries on other fields
// use a Roaring Bitmap inverted index when enabled, falling back to linear
// scans for operators the index cannot answer.
package collection
