package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/pflag"

	"github.com/rawbytedev/plain"
	"github.com/rawbytedev/plain/pkg/recfile"
)

type numeric interface {
	plain.Integer | plain.Float
}

// viewer is a record type chosen on the command line.
type viewer interface {
	Name() string
	Size() int
	// Generate encodes count sequential values as a recfile.
	Generate(count int, opts ...recfile.Option) ([]byte, error)
	// Lines views raw as values; count < 0 takes every whole value.
	Lines(raw []byte, count int) ([]string, error)
	Dump(raw []byte, count int) (string, error)
	// Records decodes a recfile of this type.
	Records(data []byte) (*recfile.Header, []string, error)
	DumpRecords(data []byte) (string, error)
}

type column[T numeric] struct {
	name string
	t    plain.Type[T]
}

func (c column[T]) Name() string { return c.name }
func (c column[T]) Size() int    { return c.t.Size() }

func (c column[T]) Generate(count int, opts ...recfile.Option) ([]byte, error) {
	vals := make([]T, count)
	for i := range vals {
		vals[i] = T(i)
	}
	return recfile.Encode(c.t, vals, opts...)
}

func (c column[T]) view(raw []byte, count int) ([]T, error) {
	if count < 0 {
		return c.t.SliceFromBytes(raw)
	}
	return c.t.SliceFromBytesLen(raw, count)
}

func (c column[T]) Lines(raw []byte, count int) ([]string, error) {
	vals, err := c.view(raw, count)
	if err != nil {
		return nil, err
	}
	return format(vals), nil
}

func (c column[T]) Dump(raw []byte, count int) (string, error) {
	vals, err := c.view(raw, count)
	if err != nil {
		return "", err
	}
	return spew.Sdump(vals), nil
}

func (c column[T]) Records(data []byte) (*recfile.Header, []string, error) {
	f, err := recfile.Decode(c.t, data)
	if err != nil {
		return nil, nil, err
	}
	return f.Header, format(f.Records), nil
}

func (c column[T]) DumpRecords(data []byte) (string, error) {
	f, err := recfile.Decode(c.t, data)
	if err != nil {
		return "", err
	}
	return spew.Sdump(f.Records), nil
}

func format[T numeric](vals []T) []string {
	lines := make([]string, len(vals))
	for i, v := range vals {
		lines[i] = fmt.Sprintf("%8d  %v", i, v)
	}
	return lines
}

var integerTypes = map[string]viewer{
	"i8":  column[int8]{"i8", plain.Int8},
	"i16": column[int16]{"i16", plain.Int16},
	"i32": column[int32]{"i32", plain.Int32},
	"i64": column[int64]{"i64", plain.Int64},
	"u8":  column[uint8]{"u8", plain.Uint8},
	"u16": column[uint16]{"u16", plain.Uint16},
	"u32": column[uint32]{"u32", plain.Uint32},
	"u64": column[uint64]{"u64", plain.Uint64},
}

func typeNames() string {
	names := []string{"f32", "f64"}
	for name := range integerTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func addTypeFlag(flags *pflag.FlagSet, p *string, usage string) {
	flags.StringVarP(p, "type", "t", "u32", usage+" ("+typeNames()+")")
}

// lookupType resolves a type name. Float types are available only when the
// policy allows them.
func lookupType(name string, p plain.FloatPolicy) (viewer, error) {
	if v, ok := integerTypes[name]; ok {
		return v, nil
	}
	switch name {
	case "f32":
		t, err := plain.DeclareFloat[float32](p)
		if err != nil {
			return nil, err
		}
		return column[float32]{"f32", t}, nil
	case "f64":
		t, err := plain.DeclareFloat[float64](p)
		if err != nil {
			return nil, err
		}
		return column[float64]{"f64", t}, nil
	}
	return nil, fmt.Errorf("unknown type %q (want one of %s)", name, typeNames())
}
