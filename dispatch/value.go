package dispatch

import (
	"fmt"
	"math"
	"reflect"
)

// Tag names the category a value falls into.
type Tag int

const (
	TagOther Tag = iota
	TagInteger
	TagText
	TagSequence
	TagMapping
)

func (t Tag) String() string {
	switch t {
	case TagOther:
		return "other"
	case TagInteger:
		return "integer"
	case TagText:
		return "text"
	case TagSequence:
		return "sequence"
	case TagMapping:
		return "mapping"
	default:
		return fmt.Sprintf("Tag(%d)", int(t))
	}
}

func (t Tag) valid() bool {
	return t >= TagOther && t <= TagMapping
}

// Value is a classified value. It is sealed: only the variants below implement it.
type Value interface {
	Tag() Tag
	value()
}

var (
	_ Value = Integer(0)
	_ Value = Text("")
	_ Value = Sequence(nil)
	_ Value = Mapping(nil)
	_ Value = Other{}
)

// Integer holds any signed or unsigned integer that fits in an int64.
type Integer int64

func (Integer) Tag() Tag { return TagInteger }
func (Integer) value()   {}

type Text string

func (Text) Tag() Tag { return TagText }
func (Text) value()   {}

// Sequence holds the elements of a slice or array in order.
type Sequence []any

func (Sequence) Tag() Tag { return TagSequence }
func (Sequence) value()   {}

type Mapping map[any]any

func (Mapping) Tag() Tag { return TagMapping }
func (Mapping) value()   {}

// Other holds everything that is not one of the categories above.
type Other struct {
	V any
}

func (Other) Tag() Tag { return TagOther }
func (Other) value()   {}

// Classify sorts v into a Value by its runtime shape.
//
// Booleans are Other, never Integer. So are floats, complex numbers, nil,
// pointers, structs, funcs and channels, and unsigned integers above
// math.MaxInt64. Named types follow their underlying kind, and []byte is a
// Sequence. A Value passes through unchanged.
func Classify(v any) Value {
	switch v := v.(type) {
	case Value:
		return v
	case nil:
		return Other{}
	case bool:
		return Other{V: v}
	case int:
		return Integer(v)
	case int64:
		return Integer(v)
	case string:
		return Text(v)
	case []any:
		return Sequence(v)
	case map[any]any:
		return Mapping(v)
	case map[string]any:
		m := make(Mapping, len(v))
		for k, e := range v {
			m[k] = e
		}
		return m
	}
	return classifyByKind(v)
}

func classifyByKind(v any) Value {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Integer(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := rv.Uint(); u <= math.MaxInt64 {
			return Integer(int64(u))
		}
		return Other{V: v}
	case reflect.String:
		return Text(rv.String())
	case reflect.Slice, reflect.Array:
		seq := make(Sequence, rv.Len())
		for i := range seq {
			seq[i] = rv.Index(i).Interface()
		}
		return seq
	case reflect.Map:
		m := make(Mapping, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().Interface()] = iter.Value().Interface()
		}
		return m
	default:
		return Other{V: v}
	}
}
