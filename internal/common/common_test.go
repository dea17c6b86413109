package common

import (
	"reflect"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type marked struct {
	A uint32
	B uint32
}

func (marked) PlainData(marked) {}

type unmarked struct {
	A uint32
}

var markerRules = Rules{Marker: HasMarker}

type embedsMarked struct {
	marked
	P *uint64
}

type remarked struct {
	marked
	C uint32
}

func (remarked) PlainData(remarked) {}

type wrongArg struct {
	A uint32
}

func (wrongArg) PlainData(marked) {}

type pointerRecv struct {
	A uint32
}

func (*pointerRecv) PlainData(pointerRecv) {}

func TestHasMarker(t *testing.T) {
	assert.True(t, HasMarker(reflect.TypeFor[marked]()))
	assert.True(t, HasMarker(reflect.TypeFor[remarked]()))

	assert.False(t, HasMarker(reflect.TypeFor[*marked]()), "pointer to a marked type")
	assert.False(t, HasMarker(reflect.TypeFor[embedsMarked]()), "promoted from an embedded field")
	assert.False(t, HasMarker(reflect.TypeFor[wrongArg]()))
	assert.False(t, HasMarker(reflect.TypeFor[pointerRecv]()))
	assert.False(t, HasMarker(reflect.TypeFor[unmarked]()))
}

func TestVetEmbeddedMarkedWithPointer(t *testing.T) {
	issues := Vet(reflect.TypeFor[embedsMarked](), markerRules)
	require.Len(t, issues, 1)
	assert.Equal(t, "common.embedsMarked.P", issues[0].Path)
	assert.Equal(t, "holds a reference", issues[0].Reason)
}

func TestKindTables(t *testing.T) {
	for _, k := range []reflect.Kind{reflect.Int8, reflect.Uint64, reflect.Uintptr, reflect.Int} {
		assert.True(t, IsIntegerKind(k), k.String())
		assert.False(t, IsFloatKind(k), k.String())
	}
	for _, k := range []reflect.Kind{reflect.Float32, reflect.Float64, reflect.Complex128} {
		assert.True(t, IsFloatKind(k), k.String())
		assert.False(t, IsIntegerKind(k), k.String())
	}
	assert.False(t, IsIntegerKind(reflect.Bool))
	assert.False(t, IsFloatKind(reflect.String))
}

func TestVetAcceptsIntegersAndArrays(t *testing.T) {
	type rec struct {
		A uint64
		B [4]int16
		C marked
		D [2]marked
		_ [8]byte
	}
	require.Empty(t, Vet(reflect.TypeFor[rec](), markerRules))
}

func TestVetRejects(t *testing.T) {
	cases := map[string]reflect.Type{
		"bool":      reflect.TypeFor[struct{ A bool }](),
		"pointer":   reflect.TypeFor[struct{ A *uint32 }](),
		"string":    reflect.TypeFor[struct{ A string }](),
		"slice":     reflect.TypeFor[struct{ A []byte }](),
		"interface": reflect.TypeFor[struct{ A any }](),
		"unsafe":    reflect.TypeFor[struct{ A unsafe.Pointer }](),
		"map":       reflect.TypeFor[struct{ A map[int]int }](),
		"nested":    reflect.TypeFor[struct{ A unmarked }](),
		"array":     reflect.TypeFor[struct{ A [2]bool }](),
	}
	for name, typ := range cases {
		t.Run(name, func(t *testing.T) {
			issues := Vet(typ, markerRules)
			require.Len(t, issues, 1)
			assert.False(t, issues[0].Float)
		})
	}
}

func TestVetFloats(t *testing.T) {
	type rec struct {
		A float32
		B uint32
		C complex64
	}
	issues := Vet(reflect.TypeFor[rec](), markerRules)
	require.Len(t, issues, 2)
	for _, is := range issues {
		assert.True(t, is.Float)
	}
	assert.Contains(t, Join(issues), ".A (float32)")

	withFloats := markerRules
	withFloats.Floats = true
	assert.Empty(t, Vet(reflect.TypeFor[rec](), withFloats))
}

func TestVetNilMarkerRejectsNestedStructs(t *testing.T) {
	issues := Vet(reflect.TypeFor[struct{ A marked }](), Rules{})
	require.Len(t, issues, 1)
	assert.Equal(t, "struct does not declare PlainData", issues[0].Reason)
}

func TestPadding(t *testing.T) {
	type packed struct {
		A uint64
		B uint32
		C uint16
		D uint8
		E uint8
	}
	type gap struct {
		A uint8
		B uint32
	}
	type tail struct {
		A uint32
		B uint8
	}
	type nested struct {
		A [2]gap
		B uint8
		_ [3]byte
	}
	assert.Equal(t, uintptr(0), Padding(reflect.TypeFor[packed]()))
	assert.Equal(t, uintptr(3), Padding(reflect.TypeFor[gap]()))
	assert.Equal(t, uintptr(3), Padding(reflect.TypeFor[tail]()))
	assert.Equal(t, uintptr(6), Padding(reflect.TypeFor[nested]()))
	assert.Equal(t, uintptr(0), Padding(reflect.TypeFor[uint64]()))
}
