package plain

import (
	"strconv"
	"strings"
)

// Kind classifies a conversion failure.
type Kind uint8

const (
	// KindTooShort: the buffer cannot supply the bytes the target needs.
	KindTooShort Kind = iota + 1
	// KindBadAlignment: the buffer does not start on the target's alignment.
	KindBadAlignment
)

func (k Kind) String() string {
	switch k {
	case KindTooShort:
		return "too short"
	case KindBadAlignment:
		return "bad alignment"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Error is returned by every fallible conversion. Match it with errors.Is
// against ErrTooShort or ErrBadAlignment, or with errors.As for details.
type Error struct {
	// Type is the target type, e.g. "uint32" or "plain.Header".
	Type string
	// Need and Have are byte counts. Need is 0 when the requested element
	// count is negative or overflows.
	Need int
	Have int
	// Count is the element count requested from an explicit-length slice
	// conversion, 0 for single values.
	Count int
	// Align and Addr describe a misaligned buffer.
	Align int
	Addr  uintptr
	Kind  Kind
}

// Sentinels for errors.Is. They match any *Error of their kind and are
// never returned themselves; do not modify them.
var (
	// ErrTooShort matches errors of KindTooShort.
	ErrTooShort = &Error{Kind: KindTooShort}
	// ErrBadAlignment matches errors of KindBadAlignment.
	ErrBadAlignment = &Error{Kind: KindBadAlignment}
)

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("plain: ")
	b.WriteString(e.Kind.String())

	if e.Type != "" {
		b.WriteString(" for ")
		if e.Count != 0 {
			b.WriteString(strconv.Itoa(e.Count))
			b.WriteString(" x ")
		}
		b.WriteString(e.Type)
	}

	switch e.Kind {
	case KindTooShort:
		if e.Need == 0 && e.Count != 0 {
			b.WriteString(": invalid element count")
			break
		}
		b.WriteString(": need ")
		b.WriteString(strconv.Itoa(e.Need))
		b.WriteString(" bytes, have ")
		b.WriteString(strconv.Itoa(e.Have))
	case KindBadAlignment:
		b.WriteString(": address 0x")
		b.WriteString(strconv.FormatUint(uint64(e.Addr), 16))
		b.WriteString(" is not a multiple of ")
		b.WriteString(strconv.Itoa(e.Align))
	}
	return b.String()
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}
