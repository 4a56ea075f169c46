package catalog

import (
	"fmt"
	"strings"

	"github.com/erraggy/reportio/ioerrors"
	"github.com/erraggy/reportio/jsonvalue"
	"github.com/erraggy/reportio/schema"
)

// IDSeparator joins an origin and a local id into a derived id.
const IDSeparator = ":"

// upgradeToV2 turns revisions into checkouts, deriving each checkout's
// derived_id from its origin and id, and points builds at checkouts.
func upgradeToV2(doc schema.Document) (schema.Document, error) {
	origins := make(map[string]string)

	if revisions, ok := doc["revisions"].([]any); ok {
		for i, item := range revisions {
			revision, ok := item.(map[string]any)
			if !ok {
				continue
			}
			id, _ := revision["id"].(string)
			origin, _ := revision["origin"].(string)
			if strings.Contains(id, IDSeparator) {
				return nil, &ioerrors.TransformError{
					Path:    jsonvalue.Pointer("", "revisions", i, "id"),
					Value:   id,
					Message: fmt.Sprintf("id contains the %q separator", IDSeparator),
				}
			}
			revision["derived_id"] = origin + IDSeparator + id
			rename(revision, "discovery_time", "start_time")
			origins[id] = origin
		}
		doc["checkouts"] = revisions
		delete(doc, "revisions")
	}

	if builds, ok := doc["builds"].([]any); ok {
		for i, item := range builds {
			build, ok := item.(map[string]any)
			if !ok {
				continue
			}
			revisionID, _ := build["revision_id"].(string)
			if strings.Contains(revisionID, IDSeparator) {
				return nil, &ioerrors.TransformError{
					Path:    jsonvalue.Pointer("", "builds", i, "revision_id"),
					Value:   revisionID,
					Message: fmt.Sprintf("revision_id contains the %q separator", IDSeparator),
				}
			}
			origin, ok := origins[revisionID]
			if !ok {
				origin, _ = build["origin"].(string)
			}
			build["checkout_id"] = origin + IDSeparator + revisionID
			delete(build, "revision_id")
		}
	}
	return doc, nil
}

// upgradeToV3 renames every entity's description to comment and rejects
// tests with the DONE status, which has no v3 equivalent.
func upgradeToV3(doc schema.Document) (schema.Document, error) {
	if tests, ok := doc["tests"].([]any); ok {
		for i, item := range tests {
			test, ok := item.(map[string]any)
			if ok && test["status"] == "DONE" {
				return nil, &ioerrors.TransformError{
					Path:    jsonvalue.Pointer("", "tests", i, "status"),
					Value:   "DONE",
					Message: "status has no equivalent, set it to PASS or MISS",
				}
			}
		}
	}
	for _, name := range []string{"checkouts", "builds", "tests"} {
		list, _ := doc[name].([]any)
		for _, item := range list {
			if entity, ok := item.(map[string]any); ok {
				rename(entity, "description", "comment")
			}
		}
	}
	return doc, nil
}

func rename(entity map[string]any, from, to string) {
	if v, ok := entity[from]; ok {
		entity[to] = v
		delete(entity, from)
	}
}
