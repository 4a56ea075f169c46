// Package ioerrors provides structured error types for the reportio library.
//
// Import path: github.com/erraggy/reportio/ioerrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to tell bad input data apart from modeling mistakes and
// decide how to recover.
//
// # Error Types
//
//   - [ValidationError]: a document does not match a version's structural schema
//   - [VersionError]: a document's declared version is unknown to a lineage
//   - [TransformError]: a forward transform cannot map a document losslessly
//   - [IncomparableError]: two versions sit on different lineage branches
//   - [ConfigError]: a version definition or option is invalid
//   - [ParseError]: JSON/YAML decoding failures and unsupported value types
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrValidation]: Matches any [ValidationError], and a [VersionError]
//     carrying one
//   - [ErrUnknownVersion]: Matches any [VersionError]
//   - [ErrTransform]: Matches any [TransformError]
//   - [ErrIncomparable]: Matches any [IncomparableError]
//   - [ErrConfig]: Matches any [ConfigError]
//   - [ErrParse]: Matches any [ParseError]
//
// # Usage Examples
//
//	doc, err := schema.Upgrade(catalog.Latest, doc, true)
//	if errors.Is(err, ioerrors.ErrTransform) {
//	    // The submitter has to clean up the document and resubmit
//	}
//
//	var valErr *ioerrors.ValidationError
//	if errors.As(err, &valErr) {
//	    fmt.Printf("invalid at %s: %s\n", valErr.Path, valErr.Message)
//	}
//
// # Error Chaining
//
// All error types support error chaining via the Cause field and Unwrap().
// A [VersionError] always carries the [ValidationError] produced by validating
// the document against the requested target version, so callers get a concrete
// structural complaint rather than an opaque "not found".
package ioerrors
