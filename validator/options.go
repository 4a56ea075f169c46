package validator

import "github.com/santhosh-tekuri/jsonschema/v5"

// Option is a function that configures a Compiler
type Option func(*Compiler)

// WithDraft sets the JSON Schema draft used for schemas without "$schema".
// Default: draft 7
func WithDraft(draft *jsonschema.Draft) Option {
	return func(c *Compiler) {
		c.Draft = draft
	}
}

// WithFormatAssertion enables or disables "format" keyword validation for
// draft 2019-09 and later. Earlier drafts always validate formats.
// Default: true
func WithFormatAssertion(enabled bool) Option {
	return func(c *Compiler) {
		c.AssertFormat = enabled
	}
}

// WithContentAssertion enables or disables contentEncoding and
// contentMediaType validation.
// Default: false
func WithContentAssertion(enabled bool) Option {
	return func(c *Compiler) {
		c.AssertContent = enabled
	}
}
