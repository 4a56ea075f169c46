package schema

import (
	"github.com/erraggy/reportio/ioerrors"
	"github.com/erraggy/reportio/jsonvalue"
)

// ValidateExactly validates doc against this version's schema only.
// It returns a *ioerrors.ValidationError on failure.
func (v *Version) ValidateExactly(doc Document) error {
	return v.compiled.Validate(doc)
}

// IsValidExactly reports whether doc satisfies this version's schema.
func (v *Version) IsValidExactly(doc Document) bool {
	return v.ValidateExactly(doc) == nil
}

// Validate validates doc against the version in the lineage of v that doc
// declares. A document declaring no version of the lineage is validated
// against v itself, so the failure describes what v expects.
func (v *Version) Validate(doc Document) error {
	if exact, ok := v.ResolveExact(doc); ok {
		return exact.ValidateExactly(doc)
	}
	return v.ValidateExactly(doc)
}

// IsValid reports whether Validate succeeds.
func (v *Version) IsValid(doc Document) bool {
	return v.Validate(doc) == nil
}

// unknownVersion reports that doc declares no version of the lineage of v,
// with the structural complaint v's schema has about it.
func (v *Version) unknownVersion(doc Document) error {
	declared := ""
	if major, minor, ok := v.DeclaredVersion(doc); ok {
		declared = versionName(major, minor)
	}
	cause := v.ValidateExactly(doc)
	if cause == nil {
		path := ""
		if fs, ok := v.stanza.(FieldStanza); ok {
			path = jsonvalue.Pointer("", fs.Field)
		}
		cause = &ioerrors.ValidationError{
			Version: v.String(),
			Path:    path,
			Message: "declared version is not in the lineage",
		}
	}
	return &ioerrors.VersionError{Declared: declared, Target: v.String(), Cause: cause}
}

// New returns an empty document declaring this version.
func (v *Version) New() Document {
	doc := make(Document)
	v.stanza.Set(doc, v.major, v.minor)
	return doc
}

// Count returns the number of entities in doc across every collection of
// the version doc declares.
func (v *Version) Count(doc Document) (int, error) {
	exact, ok := v.ResolveExact(doc)
	if !ok {
		return 0, v.unknownVersion(doc)
	}
	n := 0
	for _, name := range exact.collections {
		if list, ok := doc[name].([]any); ok {
			n += len(list)
		}
	}
	return n, nil
}

// IDs returns the identities of the entities in doc, per non-empty
// collection, in collection order. A single-field identity is the field
// value itself; a multi-field identity is a []any of the values in
// identity field order.
func (v *Version) IDs(doc Document) (map[string][]any, error) {
	exact, ok := v.ResolveExact(doc)
	if !ok {
		return nil, v.unknownVersion(doc)
	}
	ids := make(map[string][]any)
	for _, name := range exact.collections {
		list, ok := doc[name].([]any)
		if !ok || len(list) == 0 {
			continue
		}
		fields := exact.idFields[name]
		out := make([]any, len(list))
		for i, item := range list {
			entity, _ := item.(map[string]any)
			out[i] = identity(entity, fields)
		}
		ids[name] = out
	}
	return ids, nil
}

func identity(entity map[string]any, fields []IDField) any {
	if len(fields) == 1 {
		return entity[fields[0].Name]
	}
	values := make([]any, len(fields))
	for i, f := range fields {
		values[i] = entity[f.Name]
	}
	return values
}
