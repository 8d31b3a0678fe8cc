package pyliteral

import (
	"fmt"
	"strconv"
)

// Kind identifies the decoded type of a Python literal.
type Kind int

const (
	None Kind = iota
	Bool
	Int
	Float
	String
)

// String returns the lower-case kind name used in serialized output.
func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	default:
		return "none"
	}
}

// Value is a typed Python literal: one of bool, int, float, string or None.
// The zero Value is None.
type Value struct {
	Kind  Kind
	BoolV bool
	IntV  int64
	FltV  float64
	StrV  string
}

// NoneValue returns the None value.
func NoneValue() Value {
	return Value{Kind: None}
}

// BoolValue wraps a bool.
func BoolValue(b bool) Value {
	return Value{Kind: Bool, BoolV: b}
}

// IntValue wraps an integer.
func IntValue(i int64) Value {
	return Value{Kind: Int, IntV: i}
}

// FloatValue wraps a float.
func FloatValue(f float64) Value {
	return Value{Kind: Float, FltV: f}
}

// StringValue wraps a string. The string is stored verbatim; opaque
// expressions that could not be decoded also end up here.
func StringValue(s string) Value {
	return Value{Kind: String, StrV: s}
}

// Interface returns the value as a plain Go value for serialization
// (nil, bool, int64, float64 or string).
func (v Value) Interface() interface{} {
	switch v.Kind {
	case Bool:
		return v.BoolV
	case Int:
		return v.IntV
	case Float:
		return v.FltV
	case String:
		return v.StrV
	default:
		return nil
	}
}

// FromInterface converts a plain Go value (as produced by a YAML or JSON
// decoder) into a Value. Unknown types are stringified.
func FromInterface(x interface{}) Value {
	switch t := x.(type) {
	case nil:
		return NoneValue()
	case bool:
		return BoolValue(t)
	case int:
		return IntValue(int64(t))
	case int64:
		return IntValue(t)
	case uint64:
		return IntValue(int64(t))
	case float64:
		return FloatValue(t)
	case string:
		return StringValue(t)
	default:
		return StringValue(fmt.Sprint(t))
	}
}

// Equal reports observational equality: same kind and same content.
// Floats are compared with a relative tolerance to absorb formatting noise.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case Bool:
		return v.BoolV == o.BoolV
	case Int:
		return v.IntV == o.IntV
	case Float:
		return floatClose(v.FltV, o.FltV)
	case String:
		return v.StrV == o.StrV
	default:
		return true
	}
}

func floatClose(a, b float64) bool {
	if a == b {
		return true
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	scale := a
	if scale < 0 {
		scale = -scale
	}
	if bb := b; bb < 0 {
		bb = -bb
		if bb > scale {
			scale = bb
		}
	} else if bb > scale {
		scale = bb
	}
	return diff <= scale*1e-11
}

// String renders the value for display and diagnostics.
func (v Value) String() string {
	switch v.Kind {
	case Bool:
		return strconv.FormatBool(v.BoolV)
	case Int:
		return strconv.FormatInt(v.IntV, 10)
	case Float:
		return strconv.FormatFloat(v.FltV, 'g', 12, 64)
	case String:
		return v.StrV
	default:
		return "None"
	}
}
