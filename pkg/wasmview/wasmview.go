// Package wasmview views WebAssembly linear memory as plain Go values.
//
// Linear memory is little-endian. Views are native, so they agree with the
// guest only on little-endian hosts; on others every view fails with
// ErrHostByteOrder. A view aliases the guest's memory and is invalidated when
// the guest grows it: re-read after any call that may execute memory.grow.
package wasmview

import (
	"errors"
	"fmt"
	"math"

	"github.com/tetratelabs/wazero/api"

	"github.com/rawbytedev/plain"
)

var (
	ErrOutOfBounds   = errors.New("wasmview: out of bounds")
	ErrHostByteOrder = errors.New("wasmview: host is not little-endian")
)

var littleEndianHost = func() bool {
	one := uint16(1)
	return plain.Uint16.AsBytes(&one)[0] == 1
}()

// Bytes returns length bytes of mem starting at offset.
func Bytes(mem api.Memory, offset, length uint32) ([]byte, error) {
	b, ok := mem.Read(offset, length)
	if !ok {
		return nil, fmt.Errorf("%w: offset=%d, length=%d, size=%d", ErrOutOfBounds, offset, length, mem.Size())
	}
	return b, nil
}

func region(mem api.Memory, offset uint32, count, size int) ([]byte, error) {
	if !littleEndianHost {
		return nil, ErrHostByteOrder
	}
	n := uint64(count) * uint64(size)
	if n > math.MaxUint32 {
		return nil, fmt.Errorf("%w: offset=%d, %d elements of %d bytes", ErrOutOfBounds, offset, count, size)
	}
	return Bytes(mem, offset, uint32(n))
}

// Value views the T at offset. Alignment is checked against the guest offset
// since linear memory starts page aligned.
func Value[T any](mem api.Memory, t plain.Type[T], offset uint32) (*T, error) {
	b, err := region(mem, offset, 1, t.Size())
	if err != nil {
		return nil, err
	}
	return t.FromBytes(b)
}

// MutValue is Value for a view the host writes through.
func MutValue[T any](mem api.Memory, t plain.Type[T], offset uint32) (*T, error) {
	b, err := region(mem, offset, 1, t.Size())
	if err != nil {
		return nil, err
	}
	return t.FromMutBytes(b)
}

// Slice views count consecutive Ts at offset.
func Slice[T any](mem api.Memory, t plain.Type[T], offset, count uint32) ([]T, error) {
	b, err := region(mem, offset, int(count), t.Size())
	if err != nil {
		return nil, err
	}
	return t.SliceFromBytesLen(b, int(count))
}

// MutSlice is Slice for views the host writes through.
func MutSlice[T any](mem api.Memory, t plain.Type[T], offset, count uint32) ([]T, error) {
	b, err := region(mem, offset, int(count), t.Size())
	if err != nil {
		return nil, err
	}
	return t.SliceFromMutBytesLen(b, int(count))
}

// Store copies *v into mem at offset. Unlike the views it needs no
// alignment.
func Store[T any](mem api.Memory, t plain.Type[T], offset uint32, v *T) error {
	if !littleEndianHost {
		return ErrHostByteOrder
	}
	b := t.AsBytes(v)
	if !mem.Write(offset, b) {
		return fmt.Errorf("%w: offset=%d, length=%d, size=%d", ErrOutOfBounds, offset, len(b), mem.Size())
	}
	return nil
}
