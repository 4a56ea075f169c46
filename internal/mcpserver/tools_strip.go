package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/reportio/schema"
)

type stripInput struct {
	Document docInput `json:"document"         jsonschema:"The report document to strip"`
	Output   string   `json:"output,omitempty" jsonschema:"File path to write the stripped document to"`
}

type stripOutput struct {
	HadMetadata bool           `json:"had_metadata"`
	WrittenTo   string         `json:"written_to,omitempty"`
	Document    map[string]any `json:"document,omitempty"`
}

func handleStripMetadata(_ context.Context, _ *mcp.CallToolRequest, input stripInput) (*mcp.CallToolResult, stripOutput, error) {
	doc, err := input.Document.resolve()
	if err != nil {
		return errResult(err), stripOutput{}, nil
	}

	output := stripOutput{HadMetadata: schema.HasMetadata(doc)}
	stripped := schema.StripMetadata(doc, false)
	if input.Output != "" {
		if err := writeDocument(input.Output, stripped); err != nil {
			return errResult(err), stripOutput{}, nil
		}
		output.WrittenTo = input.Output
		return nil, output, nil
	}
	output.Document = stripped
	return nil, output, nil
}
