package schema

import "github.com/erraggy/reportio/jsonvalue"

// Stanza reads and writes the version numbers a document declares.
// The shape of the stanza may differ between versions, so each Version
// carries its own accessor.
type Stanza interface {
	// Get returns the declared major and minor numbers, or ok == false if
	// the stanza is missing or malformed.
	Get(doc Document) (major, minor int, ok bool)
	// Set stamps doc with the given version numbers.
	Set(doc Document, major, minor int)
}

// FieldStanza keeps the version numbers as two integer fields of a
// sub-map stored under Field.
type FieldStanza struct {
	Field string
	Major string
	Minor string
}

// DefaultStanza is {"version": {"major": M, "minor": N}}.
var DefaultStanza = FieldStanza{Field: "version", Major: "major", Minor: "minor"}

// Get implements Stanza.
func (s FieldStanza) Get(doc Document) (int, int, bool) {
	m, ok := doc[s.Field].(map[string]any)
	if !ok {
		return 0, 0, false
	}
	major, ok := number(m[s.Major])
	if !ok {
		return 0, 0, false
	}
	minor, ok := number(m[s.Minor])
	if !ok {
		return 0, 0, false
	}
	return major, minor, true
}

// Set implements Stanza. Other fields already present in the stanza
// sub-map are kept.
func (s FieldStanza) Set(doc Document, major, minor int) {
	m, ok := doc[s.Field].(map[string]any)
	if !ok {
		m = make(map[string]any, 2)
		doc[s.Field] = m
	}
	m[s.Major] = int64(major)
	m[s.Minor] = int64(minor)
}

func number(v any) (int, bool) {
	n, ok := jsonvalue.AsInt64(v)
	if !ok || n < 0 || int64(int(n)) != n {
		return 0, false
	}
	return int(n), true
}
