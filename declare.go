package plain

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/rawbytedev/plain/internal/common"
)

var (
	// ErrNotPlain is wrapped by every declaration failure.
	ErrNotPlain = errors.New("plain: type is not plain data")
	// ErrFloatsWithheld is wrapped when a float is declared under FloatsWithheld.
	ErrFloatsWithheld = errors.New("plain: floating-point types are withheld by policy")
)

// vetted caches the outcome of vetting per type for the package-level
// conversions: reflect.Type -> error, nil when the type passed.
var vetted sync.Map

func mustBePlain(rt reflect.Type) {
	v, ok := vetted.Load(rt)
	if !ok {
		v, _ = vetted.LoadOrStore(rt, vetMarked(rt))
	}
	if err, _ := v.(error); err != nil {
		panic(err)
	}
}

// vetMarked checks a type that asserts PlainData. Floats pass: the assertion
// covers them, and float policy applies to Declare only.
func vetMarked(rt reflect.Type) error {
	if rt.Size() == 0 {
		return fmt.Errorf("%w: %s has zero size", ErrNotPlain, rt)
	}
	issues := common.Vet(rt, common.Rules{Floats: true, Marker: common.HasMarker})
	if len(issues) > 0 {
		return fmt.Errorf("%w: %s", ErrNotPlain, common.Join(issues))
	}
	return nil
}

type declareOptions struct {
	floats FloatPolicy
	strict bool
}

// Option configures Declare.
type Option func(*declareOptions)

// WithFloatPolicy admits float and complex fields under FloatsAllowed.
func WithFloatPolicy(p FloatPolicy) Option {
	return func(o *declareOptions) {
		o.floats = p
	}
}

// WithStrictLayout rejects types with implicit padding. Blank fields that
// spell the padding out are accepted.
func WithStrictLayout() Option {
	return func(o *declareOptions) {
		o.strict = true
	}
}

// Declare vets T and returns its witness. The PlainData method is the
// author's assertion; Declare rejects what it can see is wrong with it:
// zero-size types, bool, string, pointer, slice, map, chan, func and
// interface components, nested structs without their own PlainData, and
// floats unless allowed. Errors wrap ErrNotPlain.
func Declare[T Marker[T]](opts ...Option) (Type[T], error) {
	var o declareOptions
	for _, opt := range opts {
		opt(&o)
	}

	rt := reflect.TypeFor[T]()
	if rt.Size() == 0 {
		return Type[T]{}, fmt.Errorf("%w: %s has zero size", ErrNotPlain, rt)
	}

	issues := common.Vet(rt, common.Rules{
		Floats: o.floats == FloatsAllowed,
		Marker: common.HasMarker,
	})
	if len(issues) > 0 {
		for _, is := range issues {
			if is.Float {
				return Type[T]{}, fmt.Errorf("%w: %w: %s", ErrNotPlain, ErrFloatsWithheld, common.Join(issues))
			}
		}
		return Type[T]{}, fmt.Errorf("%w: %s", ErrNotPlain, common.Join(issues))
	}

	t := witness[T]()
	t.padding = int(common.Padding(rt))
	if t.padding > 0 {
		if o.strict {
			return Type[T]{}, fmt.Errorf("%w: %s has %d bytes of implicit padding", ErrNotPlain, rt, t.padding)
		}
		Logger().Warn("plain type has implicit padding",
			zap.String("type", rt.String()),
			zap.Int("padding", t.padding))
	}

	Logger().Debug("declared plain type",
		zap.String("type", rt.String()),
		zap.Int("size", t.size),
		zap.Int("align", t.align))
	return t, nil
}

// MustDeclare is Declare for package-level variables; it panics on error.
func MustDeclare[T Marker[T]](opts ...Option) Type[T] {
	t, err := Declare[T](opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Array is the closed set of array lengths ArrayOf composes.
type Array[E any] interface {
	[1]E | [2]E | [3]E | [4]E | [5]E | [6]E | [7]E | [8]E |
		[9]E | [10]E | [11]E | [12]E | [13]E | [14]E | [15]E | [16]E |
		[17]E | [18]E | [19]E | [20]E | [21]E | [22]E | [23]E | [24]E |
		[25]E | [26]E | [27]E | [28]E | [29]E | [30]E | [31]E | [32]E |
		[64]E | [128]E | [256]E | [1024]E
}

// ArrayOf returns the witness for an array of a declared element type:
//
//	var quad = plain.ArrayOf[[4]uint32](plain.Uint32)
func ArrayOf[A Array[E], E any](elem Type[E]) Type[A] {
	elem.mustBeDeclared()
	t := witness[A]()
	t.padding = elem.padding * (t.size / elem.size)
	return t
}
