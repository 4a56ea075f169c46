package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type compareInput struct {
	First     docInput `json:"first"                jsonschema:"The first report document"`
	Second    docInput `json:"second"               jsonschema:"The second report document"`
	Target    string   `json:"target,omitempty"     jsonschema:"Lineage to resolve both documents against (default: latest)"`
	SelfCheck *bool    `json:"self_check,omitempty" jsonschema:"Validate documents after every upgrade step"`
}

type compareOutput struct {
	Version    string `json:"version"`
	Result     int    `json:"result"`
	Equivalent bool   `json:"equivalent"`
}

func handleCompare(_ context.Context, _ *mcp.CallToolRequest, input compareInput) (*mcp.CallToolResult, compareOutput, error) {
	lineage, err := lookupVersion(input.Target)
	if err != nil {
		return errResult(err), compareOutput{}, nil
	}
	engine, err := newEngine(input.SelfCheck, nil)
	if err != nil {
		return errResult(err), compareOutput{}, nil
	}
	docs, err := resolveAll([]docInput{input.First, input.Second})
	if err != nil {
		return errResult(err), compareOutput{}, nil
	}

	version, first, second, err := engine.Align(lineage, docs[0], docs[1], false, false)
	if err != nil {
		return errResult(err), compareOutput{}, nil
	}
	result, err := engine.CompareDirectly(version, first, second)
	if err != nil {
		return errResult(err), compareOutput{}, nil
	}
	return nil, compareOutput{
		Version:    version.String(),
		Result:     result,
		Equivalent: result == 0,
	}, nil
}
