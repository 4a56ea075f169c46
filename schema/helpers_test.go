package schema

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erraggy/reportio/internal/testutil"
	"github.com/erraggy/reportio/ioerrors"
	"github.com/erraggy/reportio/jsonvalue"
)

// testSchema builds a permissive schema for a major version accepting
// minors up to maxMinor, with the given collections and their required
// entity fields.
func testSchema(major, maxMinor int, collections map[string][]string) map[string]any {
	props := map[string]any{
		"version": map[string]any{
			"type":     "object",
			"required": []any{"major", "minor"},
			"properties": map[string]any{
				"major": map[string]any{"const": major},
				"minor": map[string]any{"type": "integer", "minimum": 0, "maximum": maxMinor},
			},
		},
	}
	for name, required := range collections {
		req := make([]any, len(required))
		for i, r := range required {
			req[i] = r
		}
		props[name] = map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": req,
				"properties": map[string]any{
					"misc": map[string]any{"type": "object"},
				},
			},
		}
	}
	return map[string]any{
		"type":                 "object",
		"required":             []any{"version"},
		"properties":           props,
		"patternProperties":    map[string]any{"^_": map[string]any{}},
		"additionalProperties": false,
	}
}

var (
	revisionsGraph = map[string][]string{RootCollection: {"revisions"}, "revisions": {}}
	checkoutsGraph = map[string][]string{RootCollection: {"checkouts"}, "checkouts": {}}
	idOnly         = []IDField{{Name: "id", Kind: jsonvalue.KindString}}
	originAndID    = []IDField{{Name: "origin", Kind: jsonvalue.KindString}, {Name: "id", Kind: jsonvalue.KindString}}
)

// testLineage is v1.0 -> v1.1 -> v2.0 -> v2.1 -> v3.0, plus a v2.0
// sibling branching off v1.1.
type testLineage struct {
	v1, v1_1, v2, v2_1, v3 *Version
	sibling                *Version
}

// toCheckouts renames revisions to checkouts and derives "origin:id" ids.
func toCheckouts(doc Document) (Document, error) {
	revisions, ok := doc["revisions"].([]any)
	if !ok {
		return doc, nil
	}
	for i, item := range revisions {
		entity := item.(map[string]any)
		id, _ := entity["id"].(string)
		origin, _ := entity["origin"].(string)
		if strings.Contains(id, ":") {
			return nil, &ioerrors.TransformError{
				Path:    jsonvalue.Pointer("", "revisions", i, "id"),
				Value:   id,
				Message: "id contains the ':' separator",
			}
		}
		entity["derived_id"] = origin + ":" + id
	}
	doc["checkouts"] = revisions
	delete(doc, "revisions")
	return doc, nil
}

// noteToComment renames the note field of every checkout to comment.
func noteToComment(doc Document) (Document, error) {
	checkouts, _ := doc["checkouts"].([]any)
	for _, item := range checkouts {
		entity := item.(map[string]any)
		if note, ok := entity["note"]; ok {
			entity["comment"] = note
			delete(entity, "note")
		}
	}
	return doc, nil
}

var (
	lineageOnce   sync.Once
	sharedLineage *testLineage
)

// lineage returns the shared test lineage, registering it on first use.
func lineage(t testing.TB) *testLineage {
	t.Helper()
	lineageOnce.Do(func() {
		l := &testLineage{}
		l.v1 = MustRegister(Definition{
			Major:    1,
			Schema:   testSchema(1, 0, map[string][]string{"revisions": {"id", "origin"}}),
			Graph:    revisionsGraph,
			IDFields: map[string][]IDField{"revisions": idOnly},
		})
		l.v1_1 = MustRegister(Definition{
			Major:    1,
			Minor:    1,
			Schema:   testSchema(1, 1, map[string][]string{"revisions": {"id", "origin"}}),
			Graph:    revisionsGraph,
			IDFields: map[string][]IDField{"revisions": idOnly},
			Previous: l.v1,
		})
		l.v2 = MustRegister(Definition{
			Major:     2,
			Schema:    testSchema(2, 0, map[string][]string{"checkouts": {"id"}}),
			Graph:     checkoutsGraph,
			IDFields:  map[string][]IDField{"checkouts": idOnly},
			Transform: toCheckouts,
			Previous:  l.v1_1,
		})
		l.v2_1 = MustRegister(Definition{
			Major:    2,
			Minor:    1,
			Schema:   testSchema(2, 1, map[string][]string{"checkouts": {"id"}}),
			Graph:    checkoutsGraph,
			IDFields: map[string][]IDField{"checkouts": idOnly},
			Previous: l.v2,
		})
		l.v3 = MustRegister(Definition{
			Major:     3,
			Schema:    testSchema(3, 0, map[string][]string{"checkouts": {"id", "origin"}}),
			Graph:     checkoutsGraph,
			IDFields:  map[string][]IDField{"checkouts": originAndID},
			Transform: noteToComment,
			Previous:  l.v2_1,
		})
		l.sibling = MustRegister(Definition{
			Major:     2,
			Schema:    testSchema(2, 0, map[string][]string{"checkouts": {"id", "origin"}}),
			Graph:     checkoutsGraph,
			IDFields:  map[string][]IDField{"checkouts": idOnly},
			Transform: toCheckouts,
			Previous:  l.v1_1,
		})
		sharedLineage = l
	})
	require.NotNil(t, sharedLineage)
	return sharedLineage
}

// doc decodes a JSON document literal.
func doc(t testing.TB, text string) Document {
	t.Helper()
	return testutil.MustDocument(t, text)
}

// versioned returns a JSON document literal declaring major.minor with the
// given top-level members appended.
func versioned(major, minor int, members string) string {
	if members == "" {
		return fmt.Sprintf(`{"version": {"major": %d, "minor": %d}}`, major, minor)
	}
	return fmt.Sprintf(`{"version": {"major": %d, "minor": %d}, %s}`, major, minor, members)
}

// never is a dedup policy always keeping the first value.
func never() bool { return false }

// always is a dedup policy always taking the second value.
func always() bool { return true }

// recordingLogger collects debug messages.
type recordingLogger struct {
	NopLogger
	mu       sync.Mutex
	messages []string
}

func (r *recordingLogger) Debug(msg string, _ ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *recordingLogger) With(_ ...any) Logger { return r }
