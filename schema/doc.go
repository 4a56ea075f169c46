// Package schema implements versioned report schemas: a lineage of schema
// versions and the engine that moves documents along it.
//
// # Versions and lineages
//
// Each schema version is registered once, usually at package
// initialization, from a Definition:
//
//	var V1 = schema.MustRegister(schema.Definition{
//	    Major:  1,
//	    Schema: v1Schema,
//	    Graph:  map[string][]string{"": {"checkouts"}, "checkouts": {}},
//	    IDFields: map[string][]schema.IDField{
//	        "checkouts": {{Name: "id", Kind: jsonvalue.KindString}},
//	    },
//	})
//
// Registration enforces the rules that keep a lineage consistent: version
// numbers never go back, a new major version supplies a Transform from the
// previous one while a minor version does not, and the entity graph and
// identity fields describe the same collections. Violations are returned as
// *ioerrors.ConfigError.
//
// Versions link to their predecessor, forming a tree. Two versions are
// ordered only when one is an ancestor of the other; Version.Compare
// returns *ioerrors.IncomparableError for versions on different branches.
//
// # Compatibility
//
// A document declares its version in a stanza, {"version": {"major": 1,
// "minor": 0}} by default. A document is exactly compatible with a version
// when it declares that version, and directly compatible when it declares
// the same major version and a minor version no greater. Version.ResolveExact
// finds the version of a lineage a document declares.
//
// # Engine
//
// The Engine operates on documents of a lineage:
//
//   - Upgrade moves a document forward to a target version, applying each
//     intervening major version's Transform in order
//   - Merge appends the entities of several documents into one, aligning
//     their versions first
//   - Dedup collapses entities sharing an identity, with a pluggable
//     conflict policy
//   - Compare decides equality of two documents, ignoring the order of
//     entity collections and of entities within them
//
// Every operation that could modify its input takes explicit copy flags:
// with a flag set the corresponding input is deep-copied first.
//
// Package-level Upgrade, Merge, Dedup and Compare use an Engine created by
// New. Use NewWithOptions to configure logging, the upgrade self-check, or
// the dedup conflict policy:
//
//	engine, err := schema.NewWithOptions(
//	    schema.WithSelfCheck(true),
//	    schema.WithPickSecond(func() bool { return false }),
//	)
//	doc, err = engine.Upgrade(catalog.Latest, doc, true)
//
// # Errors
//
// Documents declaring no version of the lineage produce an
// *ioerrors.VersionError wrapping the structural complaint of the target
// version's schema. Transforms that cannot map their input forward produce
// an *ioerrors.TransformError. Use errors.Is with the ioerrors sentinels or
// errors.As with the concrete types to tell them apart.
package schema
