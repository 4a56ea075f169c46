package ioerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrValidation indicates a document failed structural validation.
	ErrValidation = errors.New("validation error")

	// ErrUnknownVersion indicates a document's declared version is not part of a lineage.
	ErrUnknownVersion = errors.New("unknown version")

	// ErrTransform indicates a forward transform could not map a document.
	ErrTransform = errors.New("transform impossible")

	// ErrIncomparable indicates two versions share no ancestor relationship.
	ErrIncomparable = errors.New("incomparable versions")

	// ErrConfig indicates an invalid version definition or option.
	ErrConfig = errors.New("configuration error")

	// ErrParse indicates a decoding failure.
	ErrParse = errors.New("parse error")
)

// ValidationError represents a structural schema violation.
type ValidationError struct {
	// Version is the schema version validated against (e.g., "v2.1")
	Version string
	// Path is the JSON pointer to the offending value (e.g., "/checkouts/0/id")
	Path string
	// Keyword is the schema location of the violated constraint
	Keyword string
	// Message describes the violation
	Message string
	// Cause is the underlying validator error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Version != "" {
		msg += " against " + e.Version
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// VersionError reports a document whose declared version matches no version
// in the requested lineage. Cause holds the failure produced by validating the
// document against the target version.
type VersionError struct {
	// Declared is the version found in the document, or "" if none was found
	Declared string
	// Target is the version the caller asked for
	Target string
	// Cause is the target version's validation failure
	Cause error
}

// Error returns a human-readable error message.
func (e *VersionError) Error() string {
	msg := "unknown version"
	if e.Declared != "" {
		msg += " " + e.Declared
	}
	if e.Target != "" {
		msg += " for lineage of " + e.Target
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *VersionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *VersionError) Is(target error) bool {
	return target == ErrUnknownVersion
}

// TransformError represents input a forward transform cannot safely map to
// its version: ambiguous legacy encodings, disallowed characters, or values
// the new version outlaws without a lossless equivalent.
type TransformError struct {
	// Version names the version whose transform failed (e.g., "v2.0")
	Version string
	// Path is the JSON pointer to the offending value
	Path string
	// Value is the offending value (may be nil)
	Value any
	// Message describes why the value cannot be transformed
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *TransformError) Error() string {
	msg := "transform impossible"
	if e.Version != "" {
		msg += " into " + e.Version
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *TransformError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *TransformError) Is(target error) bool {
	return target == ErrTransform
}

// IncomparableError reports an ordering request between versions on
// different lineage branches. It signals a modeling error, not bad data.
type IncomparableError struct {
	// First and Second name the two versions
	First  string
	Second string
}

// Error returns a human-readable error message.
func (e *IncomparableError) Error() string {
	return fmt.Sprintf("incomparable versions: %s and %s are on different branches", e.First, e.Second)
}

// Is reports whether target matches this error type.
func (e *IncomparableError) Is(target error) bool {
	return target == ErrIncomparable
}

// ConfigError represents an invalid version definition or option.
type ConfigError struct {
	// Version names the version being registered, if any
	Version string
	// Option is the definition field or option that was invalid
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Version != "" {
		msg += " in " + e.Version
	}
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// ParseError represents a failure to decode a document or an unsupported
// value inside an already-decoded one.
type ParseError struct {
	// Source is the file path or source identifier
	Source string
	// Path is the JSON pointer to the offending value, if known
	Path string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Source != "" {
		msg += " in " + e.Source
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
