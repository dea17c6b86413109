package plain

import "unsafe"

// AsBytes returns the in-memory representation of *v. Reading bytes is safe
// for any type, so T is unconstrained; the layout of types that are not plain
// data is unspecified and should not be interpreted. A nil v yields nil.
func AsBytes[T any](v *T) []byte {
	if v == nil {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

// AsMutBytes returns a writable view of *v's bytes. Only plain data may be
// written byte-wise: any bytes stored through the view remain a legal T.
func AsMutBytes[T Marker[T]](v *T) []byte {
	layoutOf[T]()
	return AsBytes(v)
}

// SliceAsBytes returns the bytes backing s, len(s)*size(T) of them.
func SliceAsBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return []byte{}
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), uintptr(len(s))*unsafe.Sizeof(zero))
}

// SliceAsMutBytes returns a writable view of the bytes backing s.
func SliceAsMutBytes[T Marker[T]](s []T) []byte {
	layoutOf[T]()
	return SliceAsBytes(s)
}

// CopyFromBytes copies the first size(T) bytes of b into *dst. Unlike the
// views it has no alignment requirement; it fails only with ErrTooShort.
func CopyFromBytes[T Marker[T]](dst *T, b []byte) error {
	size, _ := layoutOf[T]()
	return copyFromBytes(dst, b, size)
}

func copyFromBytes[T any](dst *T, b []byte, size int) error {
	if err := checkSize[T](b, size); err != nil {
		return err
	}
	copy(AsBytes(dst), b[:size])
	return nil
}

// AsBytes returns the bytes of *v.
func (t Type[T]) AsBytes(v *T) []byte {
	t.mustBeDeclared()
	return AsBytes(v)
}

// AsMutBytes returns a writable view of *v's bytes.
func (t Type[T]) AsMutBytes(v *T) []byte {
	t.mustBeDeclared()
	return AsBytes(v)
}

// SliceAsBytes returns the bytes backing s.
func (t Type[T]) SliceAsBytes(s []T) []byte {
	t.mustBeDeclared()
	return SliceAsBytes(s)
}

// SliceAsMutBytes returns a writable view of the bytes backing s.
func (t Type[T]) SliceAsMutBytes(s []T) []byte {
	t.mustBeDeclared()
	return SliceAsBytes(s)
}

// CopyFromBytes copies the first Size() bytes of b into *dst.
func (t Type[T]) CopyFromBytes(dst *T, b []byte) error {
	t.mustBeDeclared()
	return copyFromBytes(dst, b, t.size)
}
