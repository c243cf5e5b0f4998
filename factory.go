package recgo

import "github.com/hupe1980/recgo/record"

// Factory constructs records for a collection. A factory bound to a
// collection name receives every CreateModel argument unchanged and is
// trusted to produce a record of the collection's intended shape; no
// validation is performed beyond the identifier-field rule on insert.
type Factory interface {
	Create(args ...any) (record.Record, error)
}

// FactoryFunc adapts a plain function to the Factory interface.
type FactoryFunc func(args ...any) (record.Record, error)

// Create implements Factory.
func (f FactoryFunc) Create(args ...any) (record.Record, error) {
	return f(args...)
}

// RecordRecognizer is an optional Factory capability. When a bound factory
// implements it, Load passes elements the factory recognizes as its own
// output through unchanged instead of routing them through CreateModel.
type RecordRecognizer interface {
	Recognizes(v any) bool
}
