package plain

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func BenchmarkFromBytes(b *testing.B) {
	buf := alignedBytes(16)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = FromBytes[dummy1](buf)
	}
}

func BenchmarkTypeFromBytes(b *testing.B) {
	d := MustDeclare[dummy1]()
	buf := alignedBytes(16)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = d.FromBytes(buf)
	}
}

func BenchmarkBinaryRead(b *testing.B) {
	buf := alignedBytes(16)
	var d dummy1
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = binary.Read(bytes.NewReader(buf), binary.NativeEndian, &d)
	}
}

func BenchmarkCopyFromBytes(b *testing.B) {
	buf := alignedBytes(16)
	var d dummy1
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = CopyFromBytes(&d, buf)
	}
}

func BenchmarkSliceFromBytes(b *testing.B) {
	buf := alignedBytes(4096)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Uint32.SliceFromBytes(buf)
	}
}

func BenchmarkSliceFromBytesLen(b *testing.B) {
	buf := alignedBytes(4096)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = SliceFromBytesLen[dummy2](buf, 256)
	}
}

func BenchmarkBinaryReadSlice(b *testing.B) {
	buf := alignedBytes(4096)
	out := make([]uint32, 1024)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = binary.Read(bytes.NewReader(buf), binary.NativeEndian, out)
	}
}
