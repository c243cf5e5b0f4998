package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeFieldwiseOverwrite(t *testing.T) {
	target := Record{
		"id":     Int(1),
		"title":  String("t1"),
		"myAttr": String("old"),
	}

	Merge(target, Record{
		"id":      Int(1),
		"title":   String("new"),
		"newAttr": String("x"),
	})

	assert.True(t, Equal(target["id"], Int(1)))
	assert.True(t, Equal(target["title"], String("new")))
	assert.True(t, Equal(target["myAttr"], String("old")))
	assert.True(t, Equal(target["newAttr"], String("x")))
}

func TestMergeLaterSourcesWin(t *testing.T) {
	target := Record{}

	Merge(target,
		Record{"a": Int(1), "b": Int(2)},
		Record{"b": Int(3), "c": Int(4)},
	)

	assert.True(t, Equal(target["a"], Int(1)))
	assert.True(t, Equal(target["b"], Int(3)))
	assert.True(t, Equal(target["c"], Int(4)))
}

func TestMergeDeepCopiesNestedObjects(t *testing.T) {
	src := Record{
		"obj": Object(Record{"a": Int(1)}),
	}
	target := Record{}

	Merge(target, src)

	// Mutating the source must not change the target's copy.
	src["obj"].O["a"] = Int(99)

	got, ok := target["obj"].AsObject()
	assert.True(t, ok)
	assert.True(t, Equal(got["a"], Int(1)))
}

func TestMergeDeepCopiesArrays(t *testing.T) {
	arr := []Value{Int(1), Int(2)}
	src := Record{"seq": Array(arr)}
	target := Record{}

	Merge(target, src)

	arr[0] = Int(42)

	got, ok := target["seq"].AsArray()
	assert.True(t, ok)
	assert.True(t, Equal(got[0], Int(1)))
}

func TestMergeNilTargetIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		Merge(nil, Record{"a": Int(1)})
	})
}

func TestCloneIsolation(t *testing.T) {
	orig := Record{
		"id":   Int(1),
		"obj":  Object(Record{"nested": String("v")}),
		"list": Array([]Value{Object(Record{"x": Int(1)})}),
	}

	cp := Clone(orig)

	orig["obj"].O["nested"] = String("mutated")
	orig["list"].A[0].O["x"] = Int(99)

	obj, _ := cp["obj"].AsObject()
	assert.True(t, Equal(obj["nested"], String("v")))

	list, _ := cp["list"].AsArray()
	inner, _ := list[0].AsObject()
	assert.True(t, Equal(inner["x"], Int(1)))
}

func TestCloneNil(t *testing.T) {
	assert.Nil(t, Clone(nil))
}
