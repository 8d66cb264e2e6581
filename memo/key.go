package memo

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"sort"
)

// ErrUnhashableArgument is returned for an argument that is neither comparable nor a fmt.Stringer.
var ErrUnhashableArgument = errors.New("argument can not be used as a cache key")

// Key is the canonical form of a call's arguments.
// Comparable arguments match when they are ==, with every float NaN matching
// every other NaN of its type. Non-comparable fmt.Stringer arguments match
// when their type and String() agree, so two such values that print alike
// share a key.
type Key struct {
	parts []any
}

// stringKey stands in for a non-comparable fmt.Stringer argument. The type name keeps two
// Stringer types that happen to print alike from sharing an entry.
type stringKey struct {
	typ string
	str string
}

// nanKey stands in for a NaN float argument, which never equals itself.
type nanKey struct {
	typ string
}

// namedPart marks an argument passed by name so it never collides with a positional one.
type namedPart struct {
	name  string
	value any
}

// KeyOf builds the key for positional arguments.
func KeyOf(args ...any) (Key, error) {
	return NamedKeyOf(args, nil)
}

// NamedKeyOf builds the key for positional and named arguments.
// Named arguments are ordered by name, so the order they were given in never matters.
func NamedKeyOf(args []any, named map[string]any) (Key, error) {
	parts := make([]any, 0, len(args)+len(named))
	for i, arg := range args {
		part, err := keyPart(arg)
		if err != nil {
			return Key{}, fmt.Errorf("positional argument %d: %w", i, err)
		}
		parts = append(parts, part)
	}

	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		part, err := keyPart(named[name])
		if err != nil {
			return Key{}, fmt.Errorf("named argument %q: %w", name, err)
		}
		parts = append(parts, namedPart{name: name, value: part})
	}
	return Key{parts: parts}, nil
}

// MustKeyOf is KeyOf that panics on unhashable arguments.
func MustKeyOf(args ...any) Key {
	k, err := KeyOf(args...)
	if err != nil {
		panic(err)
	}
	return k
}

func keyPart(arg any) (any, error) {
	if arg == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(arg)
	if (rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64) && math.IsNaN(rv.Float()) {
		return nanKey{typ: rv.Type().String()}, nil
	}
	if rv.Comparable() {
		return arg, nil
	}
	if stringer, ok := arg.(fmt.Stringer); ok {
		return stringKey{typ: reflect.TypeOf(arg).String(), str: stringer.String()}, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnhashableArgument, arg)
}

// Equal reports whether two keys denote the same arguments.
func (k Key) Equal(other Key) bool {
	return slices.Equal(k.parts, other.parts)
}

func (k Key) String() string {
	return fmt.Sprintf("%v", k.parts)
}
