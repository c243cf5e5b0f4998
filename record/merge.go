package record

// Merge copies every field of each source into dst under the same field name,
// overwriting any existing field. Sources are applied in argument order, so a
// later source's fields win over an earlier one's field-by-field; fields an
// earlier source set and a later source does not mention survive.
//
// Field values are deep-copied: arrays element-wise, nested objects
// field-wise. Opaque values are copied by reference and never recursed into.
//
// dst is mutated in place; every holder of the same record observes the
// merge. A nil dst is a no-op.
func Merge(dst Record, sources ...Record) {
	if dst == nil {
		return
	}

	for _, src := range sources {
		for k, v := range src {
			dst[k] = v.clone()
		}
	}
}
