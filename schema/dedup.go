package schema

import (
	"fmt"
	"reflect"

	"github.com/erraggy/reportio/canonical"
	"github.com/erraggy/reportio/ioerrors"
	"github.com/erraggy/reportio/jsonvalue"
)

// Dedup collapses entities of the same collection and identity into one.
// The surviving entity takes the place of the first occurrence and absorbs
// the later ones: for each field both have, pickSecond decides whether the
// later value wins; fields only the later one has are copied over.
//
// A nil pickSecond falls back to the Engine's PickSecond, and then to an
// unbiased random choice per field.
func (e *Engine) Dedup(lineage *Version, doc Document, copyDoc bool, pickSecond func() bool) (Document, error) {
	version, ok := lineage.ResolveExact(doc)
	if !ok {
		return nil, lineage.unknownVersion(doc)
	}
	pick := e.pickSecond(pickSecond)
	if copyDoc {
		doc, _ = jsonvalue.Clone(doc).(map[string]any)
	}

	for _, name := range version.collections {
		list, ok := doc[name].([]any)
		if !ok {
			continue
		}
		fields := version.idFields[name]
		index := make(map[string]int, len(list))
		survivors := make([]any, 0, len(list))
		for i, item := range list {
			entity, ok := item.(map[string]any)
			if !ok {
				return nil, &ioerrors.ValidationError{
					Version: version.String(),
					Path:    jsonvalue.Pointer("", name, i),
					Message: "entity is not an object",
				}
			}
			key, err := canonical.KeyOf(identity(entity, fields), 0)
			if err != nil {
				return nil, fmt.Errorf("identity of %s: %w", jsonvalue.Pointer("", name, i), err)
			}
			if j, seen := index[key.String()]; seen {
				mergeEntity(survivors[j].(map[string]any), entity, pick)
				continue
			}
			index[key.String()] = len(survivors)
			survivors = append(survivors, entity)
		}
		if removed := len(list) - len(survivors); removed > 0 {
			e.logger().Debug("deduplicated collection", "collection", name, "removed", removed, "remaining", len(survivors))
		}
		doc[name] = survivors
	}
	return doc, nil
}

// mergeEntity merges second into first, unless they are the same map.
func mergeEntity(first, second map[string]any, pickSecond func() bool) {
	if reflect.ValueOf(first).UnsafePointer() == reflect.ValueOf(second).UnsafePointer() {
		return
	}
	for _, k := range jsonvalue.SortedKeys(first) {
		if v, ok := second[k]; ok && pickSecond() {
			first[k] = v
		}
	}
	for k, v := range second {
		if _, ok := first[k]; !ok {
			first[k] = v
		}
	}
}
