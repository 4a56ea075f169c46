package schema

import "github.com/erraggy/reportio/canonical"

// CompareDirectly compares two documents that are both directly compatible
// with v, without upgrading either. Entity collections and the entities
// within them are compared as unordered sets; lists nested inside
// entities keep their order. It returns -1, 0 or 1.
func (e *Engine) CompareDirectly(v *Version, first, second Document) (int, error) {
	for _, doc := range []Document{first, second} {
		if !v.IsCompatibleDirectly(doc) {
			return 0, v.unknownVersion(doc)
		}
	}
	return canonical.Compare(first, second, canonical.DocumentSetDepth)
}

// Compare aligns two documents of lineage to their common version (see
// Align) and compares them with CompareDirectly.
func (e *Engine) Compare(lineage *Version, first, second Document, copyFirst, copySecond bool) (int, error) {
	v, first, second, err := e.Align(lineage, first, second, copyFirst, copySecond)
	if err != nil {
		return 0, err
	}
	return e.CompareDirectly(v, first, second)
}
