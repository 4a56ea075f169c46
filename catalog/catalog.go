package catalog

import (
	"embed"
	"fmt"
	"path"

	"github.com/erraggy/reportio/jsonvalue"
	"github.com/erraggy/reportio/schema"
)

//go:embed schemas/*.yaml
var schemaFS embed.FS

var (
	// V1 is the first version: revisions, their builds, and the builds' tests.
	V1 = schema.MustRegister(schema.Definition{
		Major:    1,
		Minor:    0,
		Schema:   mustSchema("v1.0"),
		Graph:    graphV1,
		IDFields: idFieldsV1,
	})
	// V1_1 adds contact e-mail addresses to revisions.
	V1_1 = schema.MustRegister(schema.Definition{
		Major:    1,
		Minor:    1,
		Schema:   mustSchema("v1.1"),
		Graph:    graphV1,
		IDFields: idFieldsV1,
		Previous: V1,
	})
	// V2 replaces revisions with checkouts identified by origin and id.
	V2 = schema.MustRegister(schema.Definition{
		Major:     2,
		Minor:     0,
		Schema:    mustSchema("v2.0"),
		Graph:     graphV2,
		IDFields:  idFieldsV2,
		Transform: upgradeToV2,
		Previous:  V1_1,
	})
	// V2_1 adds build log URLs.
	V2_1 = schema.MustRegister(schema.Definition{
		Major:    2,
		Minor:    1,
		Schema:   mustSchema("v2.1"),
		Graph:    graphV2,
		IDFields: idFieldsV2,
		Previous: V2,
	})
	// V3 renames descriptions to comments and replaces the DONE test status
	// with MISS.
	V3 = schema.MustRegister(schema.Definition{
		Major:     3,
		Minor:     0,
		Schema:    mustSchema("v3.0"),
		Graph:     graphV2,
		IDFields:  idFieldsV2,
		Transform: upgradeToV3,
		Previous:  V2_1,
	})
	// Latest is the newest version.
	Latest = V3
)

var (
	graphV1 = map[string][]string{
		schema.RootCollection: {"revisions"},
		"revisions":           {"builds"},
		"builds":              {"tests"},
		"tests":               {},
	}
	idFieldsV1 = map[string][]schema.IDField{
		"revisions": {{Name: "id", Kind: jsonvalue.KindString}},
		"builds":    {{Name: "id", Kind: jsonvalue.KindString}},
		"tests":     {{Name: "id", Kind: jsonvalue.KindString}},
	}
	graphV2 = map[string][]string{
		schema.RootCollection: {"checkouts"},
		"checkouts":           {"builds"},
		"builds":              {"tests"},
		"tests":               {},
	}
	idFieldsV2 = map[string][]schema.IDField{
		"checkouts": {
			{Name: "origin", Kind: jsonvalue.KindString},
			{Name: "id", Kind: jsonvalue.KindString},
		},
		"builds": {{Name: "id", Kind: jsonvalue.KindString}},
		"tests":  {{Name: "id", Kind: jsonvalue.KindString}},
	}
)

// Versions returns every version, oldest first.
func Versions() []*schema.Version {
	return Latest.History()
}

// Lookup returns the version named name ("v2.1"), or the latest version for
// "latest".
func Lookup(name string) (*schema.Version, bool) {
	if name == "latest" {
		return Latest, true
	}
	for v := range Latest.Lineage() {
		if v.String() == name {
			return v, true
		}
	}
	return nil, false
}

// Schema returns the JSON Schema of the version named name, decoded from
// its embedded YAML file.
func Schema(name string) (map[string]any, error) {
	data, err := schemaFS.ReadFile(path.Join("schemas", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("catalog: no schema for %s: %w", name, err)
	}
	v, err := jsonvalue.DecodeYAML(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: schema %s: %w", name, err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("catalog: schema %s is not an object", name)
	}
	return m, nil
}

func mustSchema(name string) map[string]any {
	m, err := Schema(name)
	if err != nil {
		panic(err)
	}
	return m
}
