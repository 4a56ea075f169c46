package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/reportio/ioerrors"
)

// Format represents the serialization format of a document
type Format string

const (
	// FormatJSON indicates JSON format
	FormatJSON Format = "json"
	// FormatYAML indicates YAML format
	FormatYAML Format = "yaml"
	// FormatUnknown indicates an unknown or empty input
	FormatUnknown Format = "unknown"
)

// DetectFormat guesses the format of data from its first non-blank byte.
// JSON objects and arrays start with { or [; anything else is treated as YAML.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return FormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return FormatJSON
	}
	return FormatYAML
}

// Decode decodes JSON or YAML data into a normalized value, detecting the
// format from the content. It returns the detected format alongside the value.
func Decode(data []byte) (any, Format, error) {
	format := DetectFormat(data)
	switch format {
	case FormatJSON:
		v, err := DecodeJSON(data)
		return v, format, err
	case FormatYAML:
		v, err := DecodeYAML(data)
		return v, format, err
	}
	return nil, format, &ioerrors.ParseError{Message: "empty input"}
}

// DecodeJSON decodes a single JSON value, preserving integer precision.
// Trailing data after the value is an error.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &ioerrors.ParseError{Message: "invalid JSON", Cause: err}
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, &ioerrors.ParseError{Message: "invalid JSON: trailing data"}
		}
		return nil, &ioerrors.ParseError{Message: "invalid JSON", Cause: err}
	}
	return Normalize(v)
}

// DecodeYAML decodes a single YAML document.
func DecodeYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, &ioerrors.ParseError{Message: "invalid YAML", Cause: err}
	}
	return Normalize(v)
}

// DecodeObject decodes data like Decode and requires the result to be a map.
func DecodeObject(data []byte) (map[string]any, Format, error) {
	v, format, err := Decode(data)
	if err != nil {
		return nil, format, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		kind, _ := KindOf(v)
		return nil, format, &ioerrors.ParseError{Message: fmt.Sprintf("expected an object, got %s", kind)}
	}
	return m, format, nil
}

// Encode serializes v in the given format. JSON output is indented with two
// spaces; both formats emit map keys in sorted order.
func Encode(v any, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, FormatUnknown, "":
		return json.MarshalIndent(v, "", "  ")
	case FormatYAML:
		return yaml.Marshal(v)
	}
	return nil, fmt.Errorf("jsonvalue: unsupported format %q", format)
}
