package plain

import (
	"math"
	"unsafe"
)

// Conversions check size before alignment: a buffer that fails both reports
// TooShort. The unbounded slice conversions have no size requirement and only
// check alignment. No pointer is formed from the buffer until both pass.

func checkSize[T any](b []byte, need int) error {
	if len(b) < need {
		return &Error{Kind: KindTooShort, Type: typeName[T](), Need: need, Have: len(b)}
	}
	return nil
}

func checkAlign[T any](b []byte, align int) error {
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	if addr%uintptr(align) != 0 {
		return &Error{Kind: KindBadAlignment, Type: typeName[T](), Align: align, Addr: addr}
	}
	return nil
}

// checkCount validates an explicit element count and returns the byte length
// it covers.
func checkCount[T any](b []byte, n, size int) (int, error) {
	if n < 0 || (n > 0 && size > math.MaxInt/n) {
		return 0, &Error{Kind: KindTooShort, Type: typeName[T](), Have: len(b), Count: n}
	}
	need := n * size
	if len(b) < need {
		return 0, &Error{Kind: KindTooShort, Type: typeName[T](), Need: need, Have: len(b), Count: n}
	}
	return need, nil
}
