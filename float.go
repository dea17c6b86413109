package plain

import (
	"fmt"
	"strings"
)

// FloatPolicy decides whether IEEE 754 types count as plain data. Every bit
// pattern of a float is representable, NaN payloads included, but whether
// every pattern is an acceptable value is a decision for the caller. The
// zero value withholds floats.
type FloatPolicy uint8

const (
	FloatsWithheld FloatPolicy = iota
	FloatsAllowed
)

func (p FloatPolicy) String() string {
	switch p {
	case FloatsWithheld:
		return "withheld"
	case FloatsAllowed:
		return "allowed"
	default:
		return fmt.Sprintf("FloatPolicy(%d)", uint8(p))
	}
}

// ParseFloatPolicy parses "withheld" or "allowed", case-insensitively.
func ParseFloatPolicy(s string) (FloatPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "withheld", "":
		return FloatsWithheld, nil
	case "allowed":
		return FloatsAllowed, nil
	default:
		return FloatsWithheld, fmt.Errorf("plain: unknown float policy %q", s)
	}
}

// DeclareFloat returns the witness for float32 or float64 when p allows it
// and an error wrapping ErrFloatsWithheld otherwise.
func DeclareFloat[T Float](p FloatPolicy) (Type[T], error) {
	if p != FloatsAllowed {
		return Type[T]{}, fmt.Errorf("%w: %s", ErrFloatsWithheld, typeName[T]())
	}
	return witness[T](), nil
}
