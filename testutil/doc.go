// Package testutil provides deterministic record generators shared by tests
// and benchmarks.
package testutil
