package schema

import (
	"strings"

	"github.com/erraggy/reportio/jsonvalue"
)

const (
	// MetadataPrefix starts the names of private metadata fields.
	MetadataPrefix = "_"
	// MiscField is the free-form extension sub-map of an entity. Its
	// contents are never treated as metadata.
	MiscField = "misc"
)

// HasMetadata reports whether any map in doc has a metadata field, not
// counting the contents of misc sub-maps.
func HasMetadata(doc Document) bool {
	return hasMetadata(doc)
}

func hasMetadata(node any) bool {
	switch x := node.(type) {
	case map[string]any:
		for k, v := range x {
			if strings.HasPrefix(k, MetadataPrefix) {
				return true
			}
			if k != MiscField && hasMetadata(v) {
				return true
			}
		}
	case []any:
		for _, v := range x {
			if hasMetadata(v) {
				return true
			}
		}
	}
	return false
}

// StripMetadata removes every metadata field from doc, leaving misc
// sub-maps untouched. With copyDoc set, doc is left intact and a stripped
// copy is returned.
func StripMetadata(doc Document, copyDoc bool) Document {
	if copyDoc {
		doc, _ = jsonvalue.Clone(doc).(map[string]any)
	}
	stripMetadata(doc)
	return doc
}

func stripMetadata(node any) {
	switch x := node.(type) {
	case map[string]any:
		for k, v := range x {
			if strings.HasPrefix(k, MetadataPrefix) {
				delete(x, k)
			} else if k != MiscField {
				stripMetadata(v)
			}
		}
	case []any:
		for _, v := range x {
			stripMetadata(v)
		}
	}
}
