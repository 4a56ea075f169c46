package schema

import (
	"slices"

	"github.com/erraggy/reportio/jsonvalue"
)

// Align brings two documents of lineage to a common version: whichever
// declares the older version is upgraded to the other's.
//
// It returns the common version and the two aligned documents.
func (e *Engine) Align(lineage *Version, first, second Document, copyFirst, copySecond bool) (*Version, Document, Document, error) {
	return e.AlignLineages(lineage, first, lineage, second, copyFirst, copySecond)
}

// AlignLineages is like Align, with each document resolved against its
// own lineage. Documents resolving to versions on different branches
// cannot be aligned and yield an *ioerrors.IncomparableError.
func (e *Engine) AlignLineages(firstLineage *Version, first Document, secondLineage *Version, second Document, copyFirst, copySecond bool) (*Version, Document, Document, error) {
	vFirst, ok := firstLineage.ResolveExact(first)
	if !ok {
		return nil, nil, nil, firstLineage.unknownVersion(first)
	}
	vSecond, ok := secondLineage.ResolveExact(second)
	if !ok {
		return nil, nil, nil, secondLineage.unknownVersion(second)
	}
	v, err := Newer(vFirst, vSecond)
	if err != nil {
		return nil, nil, nil, err
	}
	if copyFirst {
		first, _ = jsonvalue.Clone(first).(map[string]any)
	}
	if copySecond {
		second, _ = jsonvalue.Clone(second).(map[string]any)
	}
	if vFirst != vSecond {
		e.logger().Debug("aligning documents", "first", vFirst.String(), "second", vSecond.String(), "common", v.String())
	}
	if first, err = e.Upgrade(v, first, false); err != nil {
		return nil, nil, nil, err
	}
	if second, err = e.Upgrade(v, second, false); err != nil {
		return nil, nil, nil, err
	}
	return v, first, second, nil
}

// Merge appends the entities of every source onto target. Before each
// source is merged, target and source are aligned to their common version
// (see Align), so the result declares the newest version encountered.
// Collections are concatenated in graph order; nothing is deduplicated or
// reordered.
//
// The merged document is validated against its version before being
// returned, together with that version.
func (e *Engine) Merge(lineage *Version, target Document, sources []Document, copyTarget, copySources bool) (Document, *Version, error) {
	version, ok := lineage.ResolveExact(target)
	if !ok {
		return nil, nil, lineage.unknownVersion(target)
	}
	if copyTarget {
		target, _ = jsonvalue.Clone(target).(map[string]any)
	}

	for i, source := range sources {
		var err error
		version, target, source, err = e.Align(lineage, target, source, false, copySources)
		if err != nil {
			return nil, nil, err
		}
		appended := 0
		for _, name := range version.collections {
			list, ok := source[name].([]any)
			if !ok {
				continue
			}
			existing, _ := target[name].([]any)
			target[name] = slices.Concat(existing, list)
			appended += len(list)
		}
		e.logger().Debug("merged source", "index", i, "version", version.String(), "entities", appended)
	}

	if err := version.ValidateExactly(target); err != nil {
		return nil, nil, err
	}
	return target, version, nil
}
