// Package recfile reads and writes files of fixed-size plain records.
//
// A file is a 40-byte Header followed by the record body. Both are stored in
// the writer's native representation and read back in place: the header and
// the records are views of the file's bytes, never decoded copies. The body
// may be zstd compressed, in which case it is inflated into a fresh aligned
// buffer before it is viewed.
package recfile

import (
	"bytes"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"
	"math/bits"

	"github.com/klauspost/compress/zstd"

	"github.com/rawbytedev/plain"
)

const (
	MagicV1    = 0x31434552 // "REC1" on little-endian hosts
	VersionV1  = 1
	HeaderSize = 40

	// MaxRecordAlign is the strictest record alignment the body offset
	// guarantees.
	MaxRecordAlign = 8
)

const (
	// FlagZstd marks a zstd compressed body.
	FlagZstd uint16 = 0x0001
)

var (
	ErrTruncated        = errors.New("recfile: truncated")
	ErrBadMagic         = errors.New("recfile: bad magic")
	ErrForeignByteOrder = errors.New("recfile: written with the other byte order")
	ErrVersion          = errors.New("recfile: unsupported version")
	ErrRecordSize       = errors.New("recfile: record layout mismatch")
	ErrRecordAlign      = errors.New("recfile: record alignment exceeds 8")
	ErrChecksum         = errors.New("recfile: checksum mismatch")
)

// Header is the fixed prefix of every file.
type Header struct {
	Magic       uint32 // 4B
	Version     uint16 // 2B
	Flags       uint16 // 2B
	RecordSize  uint32 // 4B
	RecordAlign uint32 // 4B
	Count       uint64 // 8B
	Checksum    uint32 // 4B: CRC-32 (IEEE) of the uncompressed body
	BodySize    uint32 // 4B: stored body length
	_           [8]byte
}

func (Header) PlainData(Header) {}

var headerType = plain.MustDeclare[Header](plain.WithStrictLayout())

// Compressed reports whether the body is zstd compressed.
func (h *Header) Compressed() bool {
	return h.Flags&FlagZstd != 0
}

// RawSize is the length of the uncompressed body.
func (h *Header) RawSize() uint64 {
	return h.Count * uint64(h.RecordSize)
}

type options struct {
	compress bool
	level    zstd.EncoderLevel
}

// Option configures Encode.
type Option func(*options)

// WithCompression compresses the body with zstd at SpeedBetterCompression.
func WithCompression() Option {
	return WithCompressionLevel(zstd.SpeedBetterCompression)
}

// WithCompressionLevel compresses the body with zstd at level l.
func WithCompressionLevel(l zstd.EncoderLevel) Option {
	return func(o *options) {
		o.compress = true
		o.level = l
	}
}

// Encode writes records behind a header describing t. The result starts on
// an 8-byte boundary so it can be handed straight to Decode.
func Encode[T any](t plain.Type[T], records []T, opts ...Option) ([]byte, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if t.Align() > MaxRecordAlign {
		return nil, fmt.Errorf("%w: %s aligns to %d", ErrRecordAlign, t, t.Align())
	}

	body := t.SliceAsBytes(records)
	h := Header{
		Magic:       MagicV1,
		Version:     VersionV1,
		RecordSize:  uint32(t.Size()),
		RecordAlign: uint32(t.Align()),
		Count:       uint64(len(records)),
		Checksum:    crc32.ChecksumIEEE(body),
	}

	stored := body
	if o.compress {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(o.level))
		if err != nil {
			return nil, err
		}
		stored = enc.EncodeAll(body, nil)
		if err := enc.Close(); err != nil {
			return nil, err
		}
		h.Flags |= FlagZstd
	}
	if uint64(len(stored)) > math.MaxUint32 {
		return nil, fmt.Errorf("recfile: body of %d bytes is too large", len(stored))
	}
	h.BodySize = uint32(len(stored))

	out := alignedBuffer(HeaderSize + len(stored))
	copy(out, headerType.AsBytes(&h))
	copy(out[HeaderSize:], stored)
	return out, nil
}

// ParseHeader views the first HeaderSize bytes of data as a Header. data must
// start on an 8-byte boundary.
func ParseHeader(data []byte) (*Header, error) {
	h, err := headerType.FromBytes(data)
	if err != nil {
		if errors.Is(err, plain.ErrTooShort) {
			return nil, fmt.Errorf("%w: %w", ErrTruncated, err)
		}
		return nil, err
	}
	if h.Magic != MagicV1 {
		if bits.ReverseBytes32(h.Magic) == MagicV1 {
			return nil, ErrForeignByteOrder
		}
		return nil, fmt.Errorf("%w: %#08x", ErrBadMagic, h.Magic)
	}
	if h.Version != VersionV1 {
		return nil, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}
	return h, nil
}

// File is a decoded view. Header aliases the input; Records aliases it too
// unless the body was compressed.
type File[T any] struct {
	Header  *Header
	Records []T
}

// Decode parses data and views its records as T. The header's Count is the
// authoritative record count; bytes beyond the body are ignored.
func Decode[T any](t plain.Type[T], data []byte) (*File[T], error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if int(h.RecordSize) != t.Size() || int(h.RecordAlign) != t.Align() {
		return nil, fmt.Errorf("%w: file holds %d-byte records aligned to %d, %s is %d aligned to %d",
			ErrRecordSize, h.RecordSize, h.RecordAlign, t, t.Size(), t.Align())
	}

	body := data[HeaderSize:]
	if uint64(len(body)) < uint64(h.BodySize) {
		return nil, fmt.Errorf("%w: body needs %d bytes, have %d", ErrTruncated, h.BodySize, len(body))
	}
	body = body[:h.BodySize]

	if h.Count > uint64(math.MaxInt)/uint64(max(h.RecordSize, 1)) {
		return nil, fmt.Errorf("%w: %d records", ErrTruncated, h.Count)
	}
	if h.Compressed() {
		if body, err = inflate(body, int(h.RawSize())); err != nil {
			return nil, err
		}
	}

	records, err := t.SliceFromBytesLen(body, int(h.Count))
	if err != nil {
		if errors.Is(err, plain.ErrTooShort) {
			return nil, fmt.Errorf("%w: %w", ErrTruncated, err)
		}
		return nil, err
	}
	if sum := crc32.ChecksumIEEE(t.SliceAsBytes(records)); sum != h.Checksum {
		return nil, fmt.Errorf("%w: computed %#08x, header has %#08x", ErrChecksum, sum, h.Checksum)
	}
	return &File[T]{Header: h, Records: records}, nil
}

// inflate decompresses src, which must hold exactly n bytes of records.
// Memory grows with the data the frame yields, not with n.
func inflate(src []byte, n int) ([]byte, error) {
	if len(src) == 0 {
		if n != 0 {
			return nil, fmt.Errorf("%w: empty body, header promises %d bytes", ErrTruncated, n)
		}
		return []byte{}, nil
	}

	var fh zstd.Header
	if err := fh.Decode(src); err != nil {
		return nil, fmt.Errorf("recfile: inflate body: %w", err)
	}
	if fh.HasFCS && fh.FrameContentSize != uint64(n) {
		return nil, fmt.Errorf("%w: body inflates to %d bytes, header promises %d", ErrTruncated, fh.FrameContentSize, n)
	}

	dec, err := zstd.NewReader(bytes.NewReader(src), zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	limit := int64(n)
	if limit < math.MaxInt64 {
		limit++
	}
	var out bytes.Buffer
	if _, err := io.Copy(&out, io.LimitReader(dec, limit)); err != nil {
		return nil, fmt.Errorf("recfile: inflate body: %w", err)
	}
	if out.Len() != n {
		return nil, fmt.Errorf("%w: body does not inflate to the %d bytes the header promises", ErrTruncated, n)
	}

	raw := alignedBuffer(n)
	copy(raw, out.Bytes())
	return raw, nil
}

// alignedBuffer returns n zero bytes starting on an 8-byte boundary.
func alignedBuffer(n int) []byte {
	words := n / 8
	if n%8 != 0 {
		words++
	}
	return plain.Uint64.SliceAsMutBytes(make([]uint64, words))[:n]
}
