// Package jsonvalue defines the closed set of JSON-like values reportio works
// on and the helpers to classify, normalize, copy, decode, and encode them.
//
// A value is one of: nil, bool, an integer (any Go integer type, int64 after
// normalization), float64, string, []any, or map[string]any. Maps are
// key-unique and unordered.
package jsonvalue

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/erraggy/reportio/ioerrors"
)

// ErrUnsupportedType is the cause of errors reporting a Go value outside the
// closed JSON value set.
var ErrUnsupportedType = errors.New("unsupported JSON value type")

// Kind identifies a JSON value kind. Kinds are declared in canonical rank
// order: null < boolean < integer < float < string < sequence < map.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInteger
	KindFloat
	KindString
	KindSequence
	KindMap
)

var kindNames = [...]string{
	KindNull:     "null",
	KindBool:     "boolean",
	KindInteger:  "integer",
	KindFloat:    "number",
	KindString:   "string",
	KindSequence: "array",
	KindMap:      "object",
}

// String returns the JSON Schema type name of the kind.
func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= KindNull && k <= KindMap
}

// ParseKind returns the kind named by a JSON Schema type name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// KindOf classifies v. It reports false for values outside the closed set.
func KindOf(v any) (Kind, bool) {
	switch v.(type) {
	case nil:
		return KindNull, true
	case bool:
		return KindBool, true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInteger, true
	case float64, float32:
		return KindFloat, true
	case string:
		return KindString, true
	case []any:
		return KindSequence, true
	case map[string]any:
		return KindMap, true
	}
	return 0, false
}

// AsInt64 returns the value of any Go integer type as an int64.
// Unsigned values above math.MaxInt64 are reported as not representable.
func AsInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return uintToInt64(uint64(n))
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return uintToInt64(n)
	}
	return 0, false
}

func uintToInt64(n uint64) (int64, bool) {
	if n > math.MaxInt64 {
		return 0, false
	}
	return int64(n), true
}

// AsFloat64 returns a float32 or float64 value as a float64.
func AsFloat64(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	}
	return 0, false
}

// Normalize converts decoder output into the closed value set: json.Number
// becomes int64 or float64, other integer types become int64, YAML maps with
// string keys become map[string]any and timestamps become RFC 3339 strings.
// The input is not modified; containers are rebuilt.
func Normalize(v any) (any, error) {
	return normalize(v, "")
}

func normalize(v any, path string) (any, error) {
	switch x := v.(type) {
	case nil, bool, string:
		return x, nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, unsupported(path, fmt.Sprintf("invalid number %q", x.String()), err)
		}
		return checkFloat(f, path)
	case float64:
		return checkFloat(x, path)
	case float32:
		return checkFloat(float64(x), path)
	case time.Time:
		return x.Format(time.RFC3339Nano), nil
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			n, err := normalize(item, Pointer(path, i))
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			n, err := normalize(item, Pointer(path, k))
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			name, ok := k.(string)
			if !ok {
				return nil, unsupported(path, fmt.Sprintf("non-string map key %v", k), ErrUnsupportedType)
			}
			n, err := normalize(item, Pointer(path, name))
			if err != nil {
				return nil, err
			}
			out[name] = n
		}
		return out, nil
	}
	if i, ok := AsInt64(v); ok {
		return i, nil
	}
	return nil, unsupported(path, fmt.Sprintf("value of type %T", v), ErrUnsupportedType)
}

func checkFloat(f float64, path string) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, unsupported(path, fmt.Sprintf("non-finite number %v", f), ErrUnsupportedType)
	}
	return f, nil
}

func unsupported(path, msg string, cause error) error {
	return &ioerrors.ParseError{Path: path, Message: msg, Cause: cause}
}

// Clone returns a deep copy of v. Scalars are returned as is; sequences and
// maps are copied recursively. Values outside the closed set are shared.
func Clone(v any) any {
	switch x := v.(type) {
	case []any:
		if x == nil {
			return x
		}
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = Clone(item)
		}
		return out
	case map[string]any:
		if x == nil {
			return x
		}
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = Clone(item)
		}
		return out
	}
	return v
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
