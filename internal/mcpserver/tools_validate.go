package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/reportio/catalog"
	"github.com/erraggy/reportio/ioerrors"
	"github.com/erraggy/reportio/schema"
)

type validateInput struct {
	Document docInput `json:"document"          jsonschema:"The report document to validate"`
	Version  string   `json:"version,omitempty" jsonschema:"Validate against this version (e.g. v2.1) instead of the one the document declares"`
}

type validateOutput struct {
	Valid     bool       `json:"valid"`
	Version   string     `json:"version,omitempty"`
	Declared  string     `json:"declared,omitempty"`
	Entities  int        `json:"entities"`
	Violation *violation `json:"violation,omitempty"`
}

func handleValidate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	doc, err := input.Document.resolve()
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	var output validateOutput
	if major, minor, ok := catalog.Latest.DeclaredVersion(doc); ok {
		output.Declared = versionLabel(major, minor)
	}

	var v *schema.Version
	if input.Version != "" {
		if v, err = lookupVersion(input.Version); err != nil {
			return errResult(err), validateOutput{}, nil
		}
		err = v.ValidateExactly(doc)
	} else if exact, ok := catalog.Latest.ResolveExact(doc); ok {
		v = exact
		err = v.ValidateExactly(doc)
	} else {
		err = catalog.Latest.Validate(doc)
		if err == nil {
			err = &ioerrors.ValidationError{Message: "declared version is not a known version"}
		}
	}

	if v != nil {
		output.Version = v.String()
	}
	if err != nil {
		output.Violation = newViolation(err)
		return nil, output, nil
	}
	output.Valid = true
	output.Entities, _ = v.Count(doc)
	return nil, output, nil
}

func versionLabel(major, minor int) string {
	return fmt.Sprintf("v%d.%d", major, minor)
}
