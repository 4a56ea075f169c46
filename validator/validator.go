package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/erraggy/reportio/ioerrors"
)

// Validator compiles schema definitions into reusable Schemas.
type Validator interface {
	// Compile compiles a JSON Schema given as a JSON value. The name
	// identifies the schema in errors.
	Compile(name string, schema any) (Schema, error)
}

// Schema is a compiled JSON Schema.
type Schema interface {
	// Validate returns nil if doc conforms to the schema and a
	// *ioerrors.ValidationError otherwise.
	Validate(doc any) error
}

// Compiler is the jsonschema/v5 backed Validator.
type Compiler struct {
	// Draft is the JSON Schema draft applied to schemas without "$schema".
	// Defaults to draft 7.
	Draft *jsonschema.Draft
	// AssertFormat enables validation of the "format" keyword.
	AssertFormat bool
	// AssertContent enables validation of contentEncoding and contentMediaType.
	AssertContent bool
}

// New creates a Compiler with default settings
func New(opts ...Option) *Compiler {
	c := &Compiler{
		Draft:        jsonschema.Draft7,
		AssertFormat: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile implements Validator.
func (c *Compiler) Compile(name string, schema any) (Schema, error) {
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, &ioerrors.ConfigError{Version: name, Option: "Schema", Message: "schema is not valid JSON", Cause: err}
	}

	compiler := jsonschema.NewCompiler()
	if c.Draft != nil {
		compiler.Draft = c.Draft
	}
	compiler.AssertFormat = c.AssertFormat
	compiler.AssertContent = c.AssertContent

	url := name + ".json"
	if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
		return nil, &ioerrors.ConfigError{Version: name, Option: "Schema", Message: "cannot load schema", Cause: err}
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, &ioerrors.ConfigError{Version: name, Option: "Schema", Message: "cannot compile schema", Cause: err}
	}
	return &compiledSchema{name: name, schema: compiled}, nil
}

type compiledSchema struct {
	name   string
	schema *jsonschema.Schema
}

func (s *compiledSchema) Validate(doc any) error {
	err := s.schema.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ioerrors.ValidationError{Version: s.name, Message: err.Error(), Cause: err}
	}
	leaf := firstLeaf(ve)
	return &ioerrors.ValidationError{
		Version: s.name,
		Path:    leaf.InstanceLocation,
		Keyword: leaf.KeywordLocation,
		Message: leaf.Message,
		Cause:   err,
	}
}

// String returns the schema name.
func (s *compiledSchema) String() string {
	return fmt.Sprintf("schema %s", s.name)
}

// firstLeaf descends the first cause chain to the most specific failure.
func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}
