package plain

import "unsafe"

func fromBytes[T any](b []byte, size, align int) (*T, error) {
	if err := checkSize[T](b, size); err != nil {
		return nil, err
	}
	if err := checkAlign[T](b, align); err != nil {
		return nil, err
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(b))), nil
}

func sliceFromBytes[T any](b []byte, size, align int) ([]T, error) {
	if err := checkAlign[T](b, align); err != nil {
		return nil, err
	}
	return sliceOf[T](b, len(b)/size), nil
}

func sliceFromBytesLen[T any](b []byte, n, size, align int) ([]T, error) {
	if _, err := checkCount[T](b, n, size); err != nil {
		return nil, err
	}
	if err := checkAlign[T](b, align); err != nil {
		return nil, err
	}
	return sliceOf[T](b, n), nil
}

// sliceOf returns n elements of T at the start of b. The result has
// cap == len so appending to it never writes into b.
func sliceOf[T any](b []byte, n int) []T {
	if n == 0 {
		return []T{}
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

// FromBytes returns a read-only view of the first bytes of b as a T.
//
// It fails with ErrTooShort when len(b) is smaller than T, and with
// ErrBadAlignment when b does not start on T's alignment. Trailing bytes
// beyond T are ignored.
func FromBytes[T Marker[T]](b []byte) (*T, error) {
	size, align := layoutOf[T]()
	return fromBytes[T](b, size, align)
}

// FromMutBytes is FromBytes for a view the caller writes through. The view
// must be the only live view of those bytes.
func FromMutBytes[T Marker[T]](b []byte) (*T, error) {
	size, align := layoutOf[T]()
	return fromBytes[T](b, size, align)
}

// SliceFromBytes returns a read-only view of b as len(b)/size(T) elements.
// Trailing bytes that do not complete an element are not covered. It fails
// only with ErrBadAlignment.
func SliceFromBytes[T Marker[T]](b []byte) ([]T, error) {
	size, align := layoutOf[T]()
	return sliceFromBytes[T](b, size, align)
}

// SliceFromBytesLen returns a read-only view of exactly n elements at the
// start of b. It fails with ErrTooShort when b holds fewer than n elements or
// n is negative.
func SliceFromBytesLen[T Marker[T]](b []byte, n int) ([]T, error) {
	size, align := layoutOf[T]()
	return sliceFromBytesLen[T](b, n, size, align)
}

// SliceFromMutBytes is the mutable form of SliceFromBytes.
func SliceFromMutBytes[T Marker[T]](b []byte) ([]T, error) {
	size, align := layoutOf[T]()
	return sliceFromBytes[T](b, size, align)
}

// SliceFromMutBytesLen is the mutable form of SliceFromBytesLen.
func SliceFromMutBytesLen[T Marker[T]](b []byte, n int) ([]T, error) {
	size, align := layoutOf[T]()
	return sliceFromBytesLen[T](b, n, size, align)
}

// FromBytes views the start of b as a T. See the package-level FromBytes.
func (t Type[T]) FromBytes(b []byte) (*T, error) {
	t.mustBeDeclared()
	return fromBytes[T](b, t.size, t.align)
}

// FromMutBytes views the start of b as a mutable T.
func (t Type[T]) FromMutBytes(b []byte) (*T, error) {
	t.mustBeDeclared()
	return fromBytes[T](b, t.size, t.align)
}

// SliceFromBytes views b as len(b)/Size() elements.
func (t Type[T]) SliceFromBytes(b []byte) ([]T, error) {
	t.mustBeDeclared()
	return sliceFromBytes[T](b, t.size, t.align)
}

// SliceFromBytesLen views exactly n elements at the start of b.
func (t Type[T]) SliceFromBytesLen(b []byte, n int) ([]T, error) {
	t.mustBeDeclared()
	return sliceFromBytesLen[T](b, n, t.size, t.align)
}

// SliceFromMutBytes views b as len(b)/Size() mutable elements.
func (t Type[T]) SliceFromMutBytes(b []byte) ([]T, error) {
	t.mustBeDeclared()
	return sliceFromBytes[T](b, t.size, t.align)
}

// SliceFromMutBytesLen views exactly n mutable elements at the start of b.
func (t Type[T]) SliceFromMutBytesLen(b []byte, n int) ([]T, error) {
	t.mustBeDeclared()
	return sliceFromBytesLen[T](b, n, t.size, t.align)
}
