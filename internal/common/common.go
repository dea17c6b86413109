package common

import (
	"reflect"
	"strings"
)

// IsIntegerKind reports whether k is a fixed-size integer kind.
func IsIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr:
		return true
	default:
		return false
	}
}

// IsFloatKind reports whether k stores IEEE 754 data, complex kinds included.
func IsFloatKind(k reflect.Kind) bool {
	switch k {
	case reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

// HasMarker reports whether t declares PlainData for itself: its own method
// set has PlainData taking t. A method promoted from an embedded field, or
// one reached through a pointer, names a different type and does not count.
func HasMarker(t reflect.Type) bool {
	m, ok := t.MethodByName("PlainData")
	if !ok || t.Kind() == reflect.Interface {
		return false
	}
	ft := m.Type
	return ft.NumIn() == 2 && ft.In(1) == t && ft.NumOut() == 0
}

// Rules controls what Vet accepts.
type Rules struct {
	// Floats admits float and complex components.
	Floats bool
	// Marker reports whether a struct type carries its own plain declaration.
	// Nested structs without one are rejected.
	Marker func(t reflect.Type) bool
}

// Issue describes one component of a type that is not plain data.
type Issue struct {
	Path   string
	Type   reflect.Type
	Reason string
	// Float is set when the component would be accepted under a float policy.
	Float bool
}

func (i Issue) String() string {
	return i.Path + " (" + i.Type.String() + "): " + i.Reason
}

// Vet walks t field by field and reports every component that cannot be
// plain data. A nil result means t passed.
func Vet(t reflect.Type, r Rules) []Issue {
	var issues []Issue
	vet(t, t.String(), r, true, &issues)
	return issues
}

func vet(t reflect.Type, path string, r Rules, root bool, issues *[]Issue) {
	k := t.Kind()
	if IsIntegerKind(k) {
		return
	}
	if IsFloatKind(k) {
		if !r.Floats {
			*issues = append(*issues, Issue{Path: path, Type: t, Reason: "floating-point data is withheld", Float: true})
		}
		return
	}

	switch k {
	case reflect.Array:
		vet(t.Elem(), path+"[]", r, false, issues)
	case reflect.Struct:
		if !root && (r.Marker == nil || !r.Marker(t)) {
			*issues = append(*issues, Issue{Path: path, Type: t, Reason: "struct does not declare PlainData"})
			return
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			vet(f.Type, path+"."+f.Name, r, false, issues)
		}
	case reflect.Bool:
		*issues = append(*issues, Issue{Path: path, Type: t, Reason: "bool has invalid bit patterns"})
	case reflect.String, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func,
		reflect.Interface, reflect.Pointer, reflect.UnsafePointer:
		*issues = append(*issues, Issue{Path: path, Type: t, Reason: "holds a reference"})
	default:
		*issues = append(*issues, Issue{Path: path, Type: t, Reason: "unsupported kind " + k.String()})
	}
}

// Join renders issues as a single line.
func Join(issues []Issue) string {
	parts := make([]string, len(issues))
	for i, is := range issues {
		parts[i] = is.String()
	}
	return strings.Join(parts, "; ")
}

// Padding returns the number of bytes of t that belong to no field,
// including padding inside nested structs and array elements. Blank
// fields count as fields.
func Padding(t reflect.Type) uintptr {
	switch t.Kind() {
	case reflect.Array:
		return uintptr(t.Len()) * Padding(t.Elem())
	case reflect.Struct:
		var pad, end uintptr
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			pad += f.Offset - end
			pad += Padding(f.Type)
			end = f.Offset + f.Type.Size()
		}
		return pad + t.Size() - end
	default:
		return 0
	}
}
