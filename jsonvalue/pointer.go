package jsonvalue

import (
	"fmt"
	"strconv"
	"strings"
)

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer appends segments to the JSON pointer base (RFC 6901). String
// segments are escaped, integer segments are written as array indices, and
// the empty base denotes the document root.
//
//	Pointer("", "checkouts", 0, "id") // "/checkouts/0/id"
func Pointer(base string, segments ...any) string {
	var b strings.Builder
	b.WriteString(base)
	for _, seg := range segments {
		b.WriteByte('/')
		if s, ok := seg.(string); ok {
			b.WriteString(pointerEscaper.Replace(s))
			continue
		}
		if i, ok := AsInt64(seg); ok {
			b.WriteString(strconv.FormatInt(i, 10))
			continue
		}
		b.WriteString(pointerEscaper.Replace(fmt.Sprint(seg)))
	}
	return b.String()
}
