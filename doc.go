// Package reportio evolves versioned JSON report documents and compares them
// for semantic equivalence.
//
// Documents are plain JSON values: a top-level object declaring its schema
// version in a stanza ({"version": {"major": 2, "minor": 1}}) and holding
// collections of entities. Each schema version is registered once and links
// to its predecessor, forming a lineage. Minor versions only relax the schema;
// major versions may restructure documents and carry a forward transform.
//
// # Packages
//
//   - jsonvalue: decoding JSON and YAML into the closed value set, pointers
//   - canonical: total ordering and equality of JSON values, with sequences
//     optionally compared as multisets down to a given depth
//   - validator: JSON Schema compilation and validation
//   - schema: version registration, compatibility, upgrade, merge, dedup,
//     comparison and metadata stripping
//   - catalog: the concrete report lineage, v1.0 through v3.0
//   - ioerrors: structured error types for errors.Is and errors.As
//
// # Quick Start
//
// Upgrade a report of any known version to the latest one:
//
//	doc, _, err := jsonvalue.DecodeObject(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	doc, err = schema.Upgrade(catalog.Latest, doc, false)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Merge reports of different versions and collapse duplicate entities:
//
//	merged, version, err := schema.Merge(catalog.Latest, first, []schema.Document{second}, true, true)
//	if err != nil {
//		log.Fatal(err)
//	}
//	merged, err = schema.Dedup(version, merged, false, nil)
//
// Check two reports for semantic equivalence, ignoring entity order:
//
//	cmp, err := schema.Compare(catalog.Latest, first, second)
//	if err == nil && cmp == 0 {
//		fmt.Println("equivalent")
//	}
//
// # Configuration
//
// An Engine carries a Logger, the upgrade self-check switch and the default
// dedup conflict policy. Create one with schema.NewWithOptions:
//
//	engine, err := schema.NewWithOptions(
//		schema.WithLogger(schema.NewSlogAdapter(slog.Default())),
//		schema.WithSelfCheck(true),
//		schema.WithSeed(42),
//	)
//
// The self-check default comes from the REPORTIO_HEAVY_CHECKS environment
// variable.
//
// # Command Line
//
// The reportio command wraps these operations:
//
//	reportio validate report.json
//	reportio upgrade -o upgraded.json report.json
//	reportio merge -o merged.json a.json b.yaml
//	reportio dedup --seed 1 merged.json
//	reportio compare a.json b.json
//	reportio stats report.json
//	reportio strip --check report.json
//	reportio versions
//	reportio schema v2.1
//	reportio mcp
//
// The mcp command serves the same operations as MCP tools over stdio,
// configured with REPORTIO_* environment variables.
//
// # Errors
//
// Failures are reported with the types in package ioerrors. Use errors.Is
// with the sentinel values to classify them:
//
//	if errors.Is(err, ioerrors.ErrUnknownVersion) {
//		// the document declares no version of the lineage
//	}
package reportio
