package schema

import (
	"fmt"
	"maps"
	"slices"

	"github.com/erraggy/reportio/canonical"
	"github.com/erraggy/reportio/ioerrors"
	"github.com/erraggy/reportio/jsonvalue"
	"github.com/erraggy/reportio/validator"
)

// RootCollection is the entity graph key listing the top-level collections.
const RootCollection = ""

// Document is a decoded report: a version stanza plus named entity
// collections, each a []any of map[string]any entities.
type Document = map[string]any

// IDField is one field of an entity's identity.
type IDField struct {
	// Name is the entity field name.
	Name string
	// Kind is the expected kind of the field's value.
	Kind jsonvalue.Kind
}

// Transform converts a document satisfying the previous major version into
// one structurally satisfying the version it belongs to. It may modify doc
// in place and must not touch the version stanza. A transform that cannot
// map its input forward returns a *ioerrors.TransformError.
type Transform func(doc Document) (Document, error)

// Definition describes a schema version to be registered.
type Definition struct {
	// Major and Minor are the version numbers.
	Major int
	Minor int
	// Schema is the JSON Schema of the version, as a decoded JSON object.
	Schema map[string]any
	// Graph maps each entity collection name to the names of the collections
	// its entities may be referenced by. The RootCollection key lists the
	// top-level collections and must be present.
	Graph map[string][]string
	// IDFields maps every non-root Graph key to the ordered identity fields
	// of its entities.
	IDFields map[string][]IDField
	// Transform upgrades documents of the previous version. Required when
	// Major is greater than the previous version's, forbidden otherwise.
	Transform Transform
	// Previous is the version this one succeeds, nil for the first version.
	Previous *Version
	// Stanza accesses the document's version numbers. Inherited from
	// Previous when nil; DefaultStanza for the first version.
	Stanza Stanza
	// Validator compiles Schema. Inherited from Previous when nil;
	// validator.New() for the first version.
	Validator validator.Validator
}

// Version is an immutable, registered schema version. Versions form a tree
// through their predecessor links; the chain from a version back to the
// first one is its lineage.
type Version struct {
	major       int
	minor       int
	schema      map[string]any
	graph       map[string][]string
	idFields    map[string][]IDField
	transform   Transform
	previous    *Version
	stanza      Stanza
	validator   validator.Validator
	compiled    validator.Schema
	collections []string
}

// Register checks def against the rules every version must obey and
// returns the registered Version. Violations are reported as
// *ioerrors.ConfigError.
func Register(def Definition) (*Version, error) {
	name := versionName(def.Major, def.Minor)
	fail := func(option string, value any, format string, args ...any) error {
		return &ioerrors.ConfigError{Version: name, Option: option, Value: value, Message: fmt.Sprintf(format, args...)}
	}

	if def.Major < 0 {
		return nil, fail("Major", def.Major, "must not be negative")
	}
	if def.Minor < 0 {
		return nil, fail("Minor", def.Minor, "must not be negative")
	}

	prev := def.Previous
	if prev == nil {
		if def.Transform != nil {
			return nil, fail("Transform", nil, "first version must not have a transform")
		}
	} else {
		switch {
		case def.Major < prev.major:
			return nil, fail("Major", def.Major, "lower than previous version %s", prev)
		case def.Major == prev.major && def.Transform != nil:
			return nil, fail("Transform", nil, "minor version must not have a transform")
		case def.Major > prev.major && def.Transform == nil:
			return nil, fail("Transform", nil, "major version requires a transform")
		case def.Major == prev.major && def.Minor <= prev.minor:
			return nil, fail("Minor", def.Minor, "not greater than previous version %s", prev)
		}
	}

	if def.Schema == nil {
		return nil, fail("Schema", nil, "missing schema")
	}
	if prev != nil {
		same, err := canonical.Equal(def.Schema, prev.schema, 0)
		if err != nil {
			return nil, &ioerrors.ConfigError{Version: name, Option: "Schema", Message: "schema is not a JSON value", Cause: err}
		}
		if same {
			return nil, fail("Schema", nil, "identical to previous version %s", prev)
		}
	}

	if cfgErr := checkGraph(def.Graph, def.IDFields); cfgErr != nil {
		cfgErr.Version = name
		return nil, cfgErr
	}

	stanza := def.Stanza
	if stanza == nil {
		if prev != nil {
			stanza = prev.stanza
		} else {
			stanza = DefaultStanza
		}
	}
	val := def.Validator
	if val == nil {
		if prev != nil {
			val = prev.validator
		} else {
			val = validator.New()
		}
	}

	schemaCopy, _ := jsonvalue.Clone(def.Schema).(map[string]any)
	compiled, err := val.Compile(name, schemaCopy)
	if err != nil {
		return nil, err
	}

	v := &Version{
		major:     def.Major,
		minor:     def.Minor,
		schema:    schemaCopy,
		graph:     make(map[string][]string, len(def.Graph)),
		idFields:  make(map[string][]IDField, len(def.IDFields)),
		transform: def.Transform,
		previous:  prev,
		stanza:    stanza,
		validator: val,
		compiled:  compiled,
	}
	for k, children := range def.Graph {
		v.graph[k] = slices.Clone(children)
	}
	for k, fields := range def.IDFields {
		v.idFields[k] = slices.Clone(fields)
	}
	v.collections = collectionOrder(v.graph)
	return v, nil
}

// MustRegister is like Register but panics on error. It is meant for
// package-level version declarations.
func MustRegister(def Definition) *Version {
	v, err := Register(def)
	if err != nil {
		panic(err)
	}
	return v
}

func checkGraph(graph map[string][]string, idFields map[string][]IDField) *ioerrors.ConfigError {
	if _, ok := graph[RootCollection]; !ok {
		return &ioerrors.ConfigError{Option: "Graph", Message: "missing root collection list"}
	}
	for _, name := range slices.Sorted(maps.Keys(graph)) {
		children := graph[name]
		for _, child := range children {
			if child == RootCollection {
				return &ioerrors.ConfigError{Option: "Graph", Value: name, Message: "root listed as a child"}
			}
			if _, ok := graph[child]; !ok {
				return &ioerrors.ConfigError{Option: "Graph", Value: child, Message: fmt.Sprintf("child of %q is not a graph collection", name)}
			}
		}
		if name == RootCollection {
			continue
		}
		if _, ok := idFields[name]; !ok {
			return &ioerrors.ConfigError{Option: "IDFields", Value: name, Message: "graph collection has no identity fields"}
		}
	}
	for _, name := range slices.Sorted(maps.Keys(idFields)) {
		fields := idFields[name]
		if _, ok := graph[name]; !ok || name == RootCollection {
			return &ioerrors.ConfigError{Option: "IDFields", Value: name, Message: "identity fields for a collection missing from the graph"}
		}
		if len(fields) == 0 {
			return &ioerrors.ConfigError{Option: "IDFields", Value: name, Message: "empty identity field list"}
		}
		seen := make(map[string]bool, len(fields))
		for _, f := range fields {
			if f.Name == "" {
				return &ioerrors.ConfigError{Option: "IDFields", Value: name, Message: "empty identity field name"}
			}
			if seen[f.Name] {
				return &ioerrors.ConfigError{Option: "IDFields", Value: name, Message: fmt.Sprintf("duplicate identity field %q", f.Name)}
			}
			seen[f.Name] = true
			if !f.Kind.Valid() {
				return &ioerrors.ConfigError{Option: "IDFields", Value: name, Message: fmt.Sprintf("invalid kind for identity field %q", f.Name)}
			}
		}
	}
	return nil
}

// collectionOrder lists the non-root collections breadth-first from the
// root, followed by any collection unreachable from it, in name order.
func collectionOrder(graph map[string][]string) []string {
	var order []string
	seen := map[string]bool{RootCollection: true}
	queue := []string{RootCollection}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		for _, child := range graph[name] {
			if !seen[child] {
				seen[child] = true
				order = append(order, child)
				queue = append(queue, child)
			}
		}
	}
	var rest []string
	for name := range graph {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	return append(order, rest...)
}

func versionName(major, minor int) string {
	return fmt.Sprintf("v%d.%d", major, minor)
}

// String returns the version as "v<major>.<minor>".
func (v *Version) String() string {
	return versionName(v.major, v.minor)
}

// Major returns the major version number.
func (v *Version) Major() int { return v.major }

// Minor returns the minor version number.
func (v *Version) Minor() int { return v.minor }

// Previous returns the preceding version, or nil for the first one.
func (v *Version) Previous() *Version { return v.previous }

// HasTransform reports whether the version upgrades documents of the
// previous major version.
func (v *Version) HasTransform() bool { return v.transform != nil }

// Stanza returns the version stanza accessor.
func (v *Version) Stanza() Stanza { return v.stanza }

// Schema returns a copy of the version's JSON Schema.
func (v *Version) Schema() map[string]any {
	m, _ := jsonvalue.Clone(v.schema).(map[string]any)
	return m
}

// Graph returns a copy of the entity graph.
func (v *Version) Graph() map[string][]string {
	out := make(map[string][]string, len(v.graph))
	for k, children := range v.graph {
		out[k] = slices.Clone(children)
	}
	return out
}

// Collections returns the entity collection names in iteration order:
// breadth-first from the root collections.
func (v *Version) Collections() []string {
	return slices.Clone(v.collections)
}

// IDFields returns the identity fields of a collection, or nil if the
// collection is not part of the version's graph.
func (v *Version) IDFields(collection string) []IDField {
	return slices.Clone(v.idFields[collection])
}
