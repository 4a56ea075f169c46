package canonical

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/reportio/ioerrors"
	"github.com/erraggy/reportio/jsonvalue"
)

// Unbounded is the set depth at which every sequence, at any nesting level,
// is treated as an unordered set.
const Unbounded = math.MaxInt

// DocumentSetDepth is the set depth used when comparing whole documents:
// the top-level collections and the lists directly inside their entities
// are unordered.
const DocumentSetDepth = 2

// Key is the comparable sort key of a JSON value. The zero Key is the key of
// null.
type Key struct {
	kind   jsonvalue.Kind
	b      bool
	i      int64
	f      float64
	s      string
	items  []Key
	fields []field
}

type field struct {
	name  string
	value Key
}

// KeyOf produces the sort key of v. Sequences nested at a container depth
// lower than setDepth are sorted by their items' keys; deeper sequences keep
// their order. Map members are always ordered by name.
func KeyOf(v any, setDepth int) (Key, error) {
	return keyOf(v, setDepth, "")
}

func keyOf(v any, setDepth int, path string) (Key, error) {
	kind, ok := jsonvalue.KindOf(v)
	if !ok {
		return Key{}, unsupported(path, fmt.Sprintf("value of type %T", v))
	}
	if setDepth != Unbounded {
		setDepth--
	}
	k := Key{kind: kind}
	switch kind {
	case jsonvalue.KindNull:
	case jsonvalue.KindBool:
		k.b = v.(bool)
	case jsonvalue.KindInteger:
		n, ok := jsonvalue.AsInt64(v)
		if !ok {
			return Key{}, unsupported(path, fmt.Sprintf("integer %v out of range", v))
		}
		k.i = n
	case jsonvalue.KindFloat:
		f, _ := jsonvalue.AsFloat64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Key{}, unsupported(path, fmt.Sprintf("non-finite number %v", f))
		}
		k.f = f
	case jsonvalue.KindString:
		k.s = v.(string)
	case jsonvalue.KindSequence:
		seq := v.([]any)
		k.items = make([]Key, len(seq))
		for idx, item := range seq {
			ik, err := keyOf(item, setDepth, jsonvalue.Pointer(path, idx))
			if err != nil {
				return Key{}, err
			}
			k.items[idx] = ik
		}
		if setDepth >= 0 {
			slices.SortStableFunc(k.items, Key.Compare)
		}
	case jsonvalue.KindMap:
		m := v.(map[string]any)
		k.fields = make([]field, 0, len(m))
		for _, name := range jsonvalue.SortedKeys(m) {
			fk, err := keyOf(m[name], setDepth, jsonvalue.Pointer(path, name))
			if err != nil {
				return Key{}, err
			}
			k.fields = append(k.fields, field{name: name, value: fk})
		}
	}
	return k, nil
}

func unsupported(path, msg string) error {
	return &ioerrors.ParseError{Path: path, Message: msg, Cause: jsonvalue.ErrUnsupportedType}
}

// Kind returns the kind of the value the key was produced from.
func (k Key) Kind() jsonvalue.Kind {
	return k.kind
}

// Compare returns -1, 0 or 1 as k sorts before, equal to, or after o.
// Keys of different kinds order by kind rank. Sequences compare item by item
// with a shorter prefix first; maps compare their name-ordered members as
// (name, value) pairs the same way.
func (k Key) Compare(o Key) int {
	if c := cmp.Compare(k.kind, o.kind); c != 0 {
		return c
	}
	switch k.kind {
	case jsonvalue.KindBool:
		switch {
		case k.b == o.b:
			return 0
		case !k.b:
			return -1
		}
		return 1
	case jsonvalue.KindInteger:
		return cmp.Compare(k.i, o.i)
	case jsonvalue.KindFloat:
		return cmp.Compare(k.f, o.f)
	case jsonvalue.KindString:
		return strings.Compare(k.s, o.s)
	case jsonvalue.KindSequence:
		return slices.CompareFunc(k.items, o.items, Key.Compare)
	case jsonvalue.KindMap:
		return slices.CompareFunc(k.fields, o.fields, func(a, b field) int {
			if c := strings.Compare(a.name, b.name); c != 0 {
				return c
			}
			return a.value.Compare(b.value)
		})
	}
	return 0
}

// Equal reports whether k and o compare equal.
func (k Key) Equal(o Key) bool {
	return k.Compare(o) == 0
}

// String returns a compact, deterministic encoding of the key. Keys that
// compare equal have identical strings, so the string can be used as a map
// key. Integers and floats never collide: 1 and 1.0 encode differently.
func (k Key) String() string {
	var sb strings.Builder
	k.write(&sb)
	return sb.String()
}

func (k Key) write(sb *strings.Builder) {
	switch k.kind {
	case jsonvalue.KindNull:
		sb.WriteString("null")
	case jsonvalue.KindBool:
		sb.WriteString(strconv.FormatBool(k.b))
	case jsonvalue.KindInteger:
		sb.WriteString(strconv.FormatInt(k.i, 10))
	case jsonvalue.KindFloat:
		sb.WriteString(strconv.FormatFloat(k.f, 'e', -1, 64))
	case jsonvalue.KindString:
		sb.WriteString(strconv.Quote(k.s))
	case jsonvalue.KindSequence:
		sb.WriteByte('[')
		for i, item := range k.items {
			if i > 0 {
				sb.WriteByte(',')
			}
			item.write(sb)
		}
		sb.WriteByte(']')
	case jsonvalue.KindMap:
		sb.WriteByte('{')
		for i, f := range k.fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(f.name))
			sb.WriteByte(':')
			f.value.write(sb)
		}
		sb.WriteByte('}')
	}
}

// Compare compares two JSON values under the given set depth and returns
// -1, 0 or 1.
func Compare(a, b any, setDepth int) (int, error) {
	ak, err := KeyOf(a, setDepth)
	if err != nil {
		return 0, err
	}
	bk, err := KeyOf(b, setDepth)
	if err != nil {
		return 0, err
	}
	return ak.Compare(bk), nil
}

// Equal reports whether two JSON values are equal under the given set depth.
func Equal(a, b any, setDepth int) (bool, error) {
	c, err := Compare(a, b, setDepth)
	return c == 0, err
}
