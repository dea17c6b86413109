// Package plain reinterprets byte buffers as typed values in place.
//
// A type qualifies when its author asserts that it is plain data: every bit
// pattern of its size is a legal value, its layout is fixed, and it contains
// no pointer, bool, string, slice, map, channel, func or interface. The
// assertion is the PlainData marker method; nothing verifies it at compile
// time, and a wrong assertion makes every conversion of that type undefined
// behavior. Declare additionally vets the layout with reflection.
//
// Conversions check the buffer's length and the alignment of its first byte,
// then return a pointer or slice that aliases the buffer. Nothing is copied
// and no byte order conversion happens: values are read in the host's native
// representation.
//
// Go has no read-only pointers. The read-only conversions return ordinary
// pointers and slices; callers must not write through them, and must not keep
// a mutable view alive while any other view of the same bytes exists.
package plain

import (
	"reflect"
	"unsafe"
)

// Marker is implemented by types whose author asserts they are plain data.
// The method has no behavior and takes the type itself, so the assertion
// cannot be picked up by a pointer to a marked type or by a struct that
// embeds one. Declare it with a value receiver:
//
//	type Header struct {
//		Magic uint32
//		Count uint32
//	}
//
//	func (Header) PlainData(Header) {}
//
// A struct field of struct type must itself implement Marker. Composition is
// never inferred.
type Marker[T any] interface {
	PlainData(T)
}

// Integer lists the predeclared plain types. Defined types with an integer
// underlying type are not included; they opt in through Marker.
type Integer interface {
	int8 | int16 | int32 | int64 | int |
		uint8 | uint16 | uint32 | uint64 | uint | uintptr
}

// Float lists the IEEE 754 types, which are plain only under FloatsAllowed.
type Float interface {
	float32 | float64
}

// Type witnesses that T was declared plain and carries its layout. Obtain one
// from Declare, MustDeclare, Primitive, ArrayOf or DeclareFloat, or use a
// predeclared one such as Uint32. The zero Type is not a declaration; its
// methods panic.
type Type[T any] struct {
	size    int
	align   int
	padding int
}

// Predeclared witnesses for the integer types.
var (
	Int8    = Primitive[int8]()
	Int16   = Primitive[int16]()
	Int32   = Primitive[int32]()
	Int64   = Primitive[int64]()
	Int     = Primitive[int]()
	Uint8   = Primitive[uint8]()
	Uint16  = Primitive[uint16]()
	Uint32  = Primitive[uint32]()
	Uint64  = Primitive[uint64]()
	Uint    = Primitive[uint]()
	Uintptr = Primitive[uintptr]()
	Byte    = Uint8
)

func witness[T any]() Type[T] {
	var zero T
	return Type[T]{
		size:  int(unsafe.Sizeof(zero)),
		align: int(unsafe.Alignof(zero)),
	}
}

// Primitive returns the witness for a predeclared integer type.
func Primitive[T Integer]() Type[T] {
	return witness[T]()
}

// Size returns the size of T in bytes.
func (t Type[T]) Size() int {
	t.mustBeDeclared()
	return t.size
}

// Align returns the alignment T requires.
func (t Type[T]) Align() int {
	t.mustBeDeclared()
	return t.align
}

// Padding returns the number of bytes of T that belong to no field.
func (t Type[T]) Padding() int {
	t.mustBeDeclared()
	return t.padding
}

func (t Type[T]) String() string {
	return typeName[T]()
}

func (t Type[T]) mustBeDeclared() {
	if t.size == 0 {
		panic("plain: use of undeclared Type[" + typeName[T]() + "]")
	}
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

// layoutOf returns the size and alignment of a Marker type for the
// package-level conversions. The first use of each type vets its layout; a
// type whose PlainData assertion is false panics with an error wrapping
// ErrNotPlain instead of yielding views.
func layoutOf[T any]() (size, align int) {
	mustBePlain(reflect.TypeFor[T]())
	var zero T
	return int(unsafe.Sizeof(zero)), int(unsafe.Alignof(zero))
}
