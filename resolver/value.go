package resolver

import (
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-yaml"
)

// Kind identifies the semantic type held by a Value.
type Kind uint8

const (
	// KindAbsent marks a value that was not found or was never set.
	KindAbsent Kind = iota
	// KindString is a plain string value.
	KindString
	// KindNumber is an integer or floating point value.
	KindNumber
	// KindBool is a boolean value.
	KindBool
	// KindCollection is a sequence or a mapping.
	KindCollection
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindCollection:
		return "collection"
	default:
		return "unknown"
	}
}

// Value is a tagged union of the values a parameter or a default can hold.
// The zero Value is absent.
type Value struct {
	kind    Kind
	str     string
	num     float64
	integer bool
	boolean bool
	items   []Value
	fields  map[string]Value
	mapping bool
}

// Absent returns the absent value.
func Absent() Value {
	return Value{}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number returns a floating point value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Int returns an integer value.
func Int(i int64) Value {
	return Value{kind: KindNumber, num: float64(i), integer: true}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// Collection returns a sequence value holding items.
func Collection(items ...Value) Value {
	return Value{kind: KindCollection, items: items}
}

// Mapping returns a mapping value holding fields.
func Mapping(fields map[string]Value) Value {
	return Value{kind: KindCollection, fields: fields, mapping: true}
}

// ValueOf tags a Go value, typically one decoded from YAML, with its Kind.
// Unknown types are stored as their fmt representation.
//
//nolint:cyclop // one case per decoded type
func ValueOf(v any) Value {
	switch typed := v.(type) {
	case nil:
		return Absent()
	case Value:
		return typed
	case *Value:
		if typed == nil {
			return Absent()
		}

		return *typed
	case string:
		return String(typed)
	case bool:
		return Bool(typed)
	case int:
		return Int(int64(typed))
	case int8:
		return Int(int64(typed))
	case int16:
		return Int(int64(typed))
	case int32:
		return Int(int64(typed))
	case int64:
		return Int(typed)
	case uint:
		return fromUnsigned(uint64(typed))
	case uint8:
		return Int(int64(typed))
	case uint16:
		return Int(int64(typed))
	case uint32:
		return Int(int64(typed))
	case uint64:
		return fromUnsigned(typed)
	case float32:
		return Number(float64(typed))
	case float64:
		return Number(typed)
	case []any:
		items := make([]Value, 0, len(typed))
		for _, item := range typed {
			items = append(items, ValueOf(item))
		}

		return Collection(items...)
	case []string:
		items := make([]Value, 0, len(typed))
		for _, item := range typed {
			items = append(items, String(item))
		}

		return Collection(items...)
	case map[string]any:
		fields := make(map[string]Value, len(typed))
		for key, item := range typed {
			fields[key] = ValueOf(item)
		}

		return Mapping(fields)
	case yaml.MapSlice:
		fields := make(map[string]Value, len(typed))
		for _, item := range typed {
			fields[fmt.Sprint(item.Key)] = ValueOf(item.Value)
		}

		return Mapping(fields)
	default:
		return String(fmt.Sprint(typed))
	}
}

func fromUnsigned(u uint64) Value {
	if u > math.MaxInt64 {
		return Number(float64(u))
	}

	return Int(int64(u))
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsAbsent reports whether the value is absent.
func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// IsEmpty reports whether the value is a zero-length string or collection.
// Absent, boolean and numeric values are never empty.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindString:
		return v.str == ""
	case KindCollection:
		return v.Len() == 0
	case KindAbsent, KindNumber, KindBool:
		return false
	default:
		return false
	}
}

// Len returns the number of items of a collection and the byte length of a string.
func (v Value) Len() int {
	switch v.kind {
	case KindString:
		return len(v.str)
	case KindCollection:
		if v.mapping {
			return len(v.fields)
		}

		return len(v.items)
	case KindAbsent, KindNumber, KindBool:
		return 0
	default:
		return 0
	}
}

// Interface returns the value as a plain Go value: nil, string, int64, float64,
// bool, []any or map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if v.integer {
			return int64(v.num)
		}

		return v.num
	case KindBool:
		return v.boolean
	case KindCollection:
		if v.mapping {
			out := make(map[string]any, len(v.fields))
			for key, field := range v.fields {
				out[key] = field.Interface()
			}

			return out
		}

		out := make([]any, 0, len(v.items))
		for _, item := range v.items {
			out = append(out, item.Interface())
		}

		return out
	case KindAbsent:
		return nil
	default:
		return nil
	}
}

// String renders the value for places that only accept text, such as
// environment variables. Absent renders as an empty string and collections
// render in YAML flow style.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if v.integer {
			return strconv.FormatInt(int64(v.num), 10)
		}

		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindCollection:
		out, err := yaml.MarshalWithOptions(v.Interface(), yaml.Flow(true))
		if err != nil {
			return fmt.Sprint(v.Interface())
		}

		return string(trimNewline(out))
	case KindAbsent:
		return ""
	default:
		return ""
	}
}

// GoString makes absent values readable in test failure output.
func (v Value) GoString() string {
	if v.kind == KindAbsent {
		return "resolver.Absent()"
	}

	return fmt.Sprintf("resolver.Value{%s: %q}", v.kind, v.String())
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && b[len(b)-1] == '\n' {
		b = b[:len(b)-1]
	}

	return b
}
