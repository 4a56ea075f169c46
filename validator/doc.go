// Package validator checks JSON documents against JSON Schema definitions.
//
// A Validator compiles a schema once, ahead of use, into a Schema that can
// validate any number of documents. Compilation failures are reported as
// *ioerrors.ConfigError; validation failures as *ioerrors.ValidationError
// carrying the JSON pointer of the offending value and of the failing
// schema keyword.
//
// The default implementation, returned by New, is backed by
// github.com/santhosh-tekuri/jsonschema/v5 and uses JSON Schema draft 7 with
// format assertion enabled, so "uri", "date-time" and "email" formats are
// enforced.
//
// # Usage
//
//	v := validator.New()
//	s, err := v.Compile("v1.0", map[string]any{
//	    "type":     "object",
//	    "required": []any{"version"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := s.Validate(doc); err != nil {
//	    var valErr *ioerrors.ValidationError
//	    if errors.As(err, &valErr) {
//	        fmt.Println(valErr.Path, valErr.Message)
//	    }
//	}
package validator
