package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type mergeInput struct {
	Documents []docInput `json:"documents"            jsonschema:"The report documents to merge, in order (at least 2)"`
	Target    string     `json:"target,omitempty"     jsonschema:"Lineage to resolve documents against, e.g. v2.1 (default: latest)"`
	Dedup     bool       `json:"dedup,omitempty"      jsonschema:"Collapse entities with the same identity after merging"`
	Seed      *uint64    `json:"seed,omitempty"       jsonschema:"Seed for reproducible dedup conflict resolution"`
	SelfCheck *bool      `json:"self_check,omitempty" jsonschema:"Validate documents after every upgrade step"`
	Output    string     `json:"output,omitempty"     jsonschema:"File path to write the merged document to (.yaml/.yml for YAML, JSON otherwise)"`
}

type mergeOutput struct {
	Version     string         `json:"version"`
	SourceCount int            `json:"source_count"`
	Entities    int            `json:"entities"`
	Collapsed   int            `json:"collapsed,omitempty"`
	WrittenTo   string         `json:"written_to,omitempty"`
	Document    map[string]any `json:"document,omitempty"`
}

func handleMerge(_ context.Context, _ *mcp.CallToolRequest, input mergeInput) (*mcp.CallToolResult, mergeOutput, error) {
	if len(input.Documents) < 2 {
		return errResult(fmt.Errorf("at least 2 documents are required for merging (got %d)", len(input.Documents))), mergeOutput{}, nil
	}
	if len(input.Documents) > cfg.MaxMergeSources {
		return errResult(fmt.Errorf("too many documents (%d); maximum is %d", len(input.Documents), cfg.MaxMergeSources)), mergeOutput{}, nil
	}
	lineage, err := lookupVersion(input.Target)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}
	engine, err := newEngine(input.SelfCheck, input.Seed)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}
	docs, err := resolveAll(input.Documents)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}

	merged, version, err := engine.Merge(lineage, docs[0], docs[1:], false, false)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}
	count, err := version.Count(merged)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}

	output := mergeOutput{
		Version:     version.String(),
		SourceCount: len(docs),
		Entities:    count,
	}
	if input.Dedup {
		if merged, err = engine.Dedup(version, merged, false, nil); err != nil {
			return errResult(err), mergeOutput{}, nil
		}
		if output.Entities, err = version.Count(merged); err != nil {
			return errResult(err), mergeOutput{}, nil
		}
		output.Collapsed = count - output.Entities
	}

	if input.Output != "" {
		if err := writeDocument(input.Output, merged); err != nil {
			return errResult(err), mergeOutput{}, nil
		}
		output.WrittenTo = input.Output
		return nil, output, nil
	}
	output.Document = merged
	return nil, output, nil
}
