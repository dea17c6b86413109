package plain_test

import (
	"errors"
	"fmt"

	"github.com/rawbytedev/plain"
)

type header struct {
	Magic uint32
	Count uint32
}

func (header) PlainData(header) {}

func Example() {
	words := []uint32{0x464c4150, 3}
	raw := plain.Uint32.SliceAsBytes(words)

	h, err := plain.FromBytes[header](raw)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("magic=%#x count=%d\n", h.Magic, h.Count)

	_, err = plain.FromBytes[header](raw[:7])
	fmt.Println(errors.Is(err, plain.ErrTooShort))
	// Output:
	// magic=0x464c4150 count=3
	// true
}

func ExampleSliceFromBytesLen() {
	raw := plain.Uint64.SliceAsBytes([]uint64{1, 2, 3})

	vals, err := plain.Uint64.SliceFromBytesLen(raw, 2)
	fmt.Println(vals, err)

	_, err = plain.Uint64.SliceFromBytesLen(raw, 4)
	fmt.Println(err)
	// Output:
	// [1 2] <nil>
	// plain: too short for 4 x uint64: need 32 bytes, have 24
}

func ExampleArrayOf() {
	pairs := plain.ArrayOf[[2]uint16](plain.Uint16)
	raw := plain.Uint16.SliceAsBytes([]uint16{1, 2, 3, 4, 5})

	rows, _ := pairs.SliceFromBytes(raw)
	fmt.Println(len(rows), rows[1])
	// Output: 2 [3 4]
}
