package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type upgradeInput struct {
	Document  docInput `json:"document"             jsonschema:"The report document to upgrade"`
	Target    string   `json:"target,omitempty"     jsonschema:"Target version, e.g. v2.1 (default: latest)"`
	SelfCheck *bool    `json:"self_check,omitempty" jsonschema:"Validate the document after every upgrade step"`
	Output    string   `json:"output,omitempty"     jsonschema:"File path to write the upgraded document to (.yaml/.yml for YAML, JSON otherwise)"`
}

type upgradeOutput struct {
	From      string         `json:"from"`
	Version   string         `json:"version"`
	Steps     []string       `json:"steps,omitempty"`
	WrittenTo string         `json:"written_to,omitempty"`
	Document  map[string]any `json:"document,omitempty"`
}

func handleUpgrade(_ context.Context, _ *mcp.CallToolRequest, input upgradeInput) (*mcp.CallToolResult, upgradeOutput, error) {
	target, err := lookupVersion(input.Target)
	if err != nil {
		return errResult(err), upgradeOutput{}, nil
	}
	engine, err := newEngine(input.SelfCheck, nil)
	if err != nil {
		return errResult(err), upgradeOutput{}, nil
	}
	doc, err := input.Document.resolve()
	if err != nil {
		return errResult(err), upgradeOutput{}, nil
	}

	var output upgradeOutput
	if from, ok := target.ResolveExact(doc); ok {
		output.From = from.String()
		for _, v := range target.History() {
			if v != from && from.IsAncestorOf(v) {
				output.Steps = append(output.Steps, v.String())
			}
		}
	}

	upgraded, err := engine.Upgrade(target, doc, false)
	if err != nil {
		return errResult(err), upgradeOutput{}, nil
	}
	output.Version = target.String()

	if input.Output != "" {
		if err := writeDocument(input.Output, upgraded); err != nil {
			return errResult(err), upgradeOutput{}, nil
		}
		output.WrittenTo = input.Output
		return nil, output, nil
	}
	output.Document = upgraded
	return nil, output, nil
}
