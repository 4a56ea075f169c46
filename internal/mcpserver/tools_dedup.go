package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type dedupInput struct {
	Document docInput `json:"document"         jsonschema:"The report document to deduplicate"`
	Target   string   `json:"target,omitempty" jsonschema:"Lineage to resolve the document against (default: latest)"`
	Prefer   string   `json:"prefer,omitempty" jsonschema:"Conflict policy: first keeps the earlier value, second takes the later one, random (default) picks per field"`
	Seed     *uint64  `json:"seed,omitempty"   jsonschema:"Seed for reproducible random conflict resolution"`
	Output   string   `json:"output,omitempty" jsonschema:"File path to write the deduplicated document to"`
}

type dedupOutput struct {
	Version   string         `json:"version"`
	Before    int            `json:"before"`
	After     int            `json:"after"`
	WrittenTo string         `json:"written_to,omitempty"`
	Document  map[string]any `json:"document,omitempty"`
}

// preferPolicy maps a prefer value to a dedup conflict policy. A nil
// policy defers to the engine.
func preferPolicy(prefer string) (func() bool, error) {
	switch prefer {
	case "", "random":
		return nil, nil
	case "first":
		return func() bool { return false }, nil
	case "second":
		return func() bool { return true }, nil
	}
	return nil, fmt.Errorf("invalid prefer value %q; valid values: first, second, random", prefer)
}

func handleDedup(_ context.Context, _ *mcp.CallToolRequest, input dedupInput) (*mcp.CallToolResult, dedupOutput, error) {
	pick, err := preferPolicy(input.Prefer)
	if err != nil {
		return errResult(err), dedupOutput{}, nil
	}
	lineage, err := lookupVersion(input.Target)
	if err != nil {
		return errResult(err), dedupOutput{}, nil
	}
	engine, err := newEngine(nil, input.Seed)
	if err != nil {
		return errResult(err), dedupOutput{}, nil
	}
	doc, err := input.Document.resolve()
	if err != nil {
		return errResult(err), dedupOutput{}, nil
	}

	version, ok := lineage.ResolveExact(doc)
	if !ok {
		// Let Dedup report the unknown version.
		_, err := engine.Dedup(lineage, doc, false, pick)
		return errResult(err), dedupOutput{}, nil
	}
	before, err := version.Count(doc)
	if err != nil {
		return errResult(err), dedupOutput{}, nil
	}
	deduped, err := engine.Dedup(lineage, doc, false, pick)
	if err != nil {
		return errResult(err), dedupOutput{}, nil
	}
	after, err := version.Count(deduped)
	if err != nil {
		return errResult(err), dedupOutput{}, nil
	}

	output := dedupOutput{Version: version.String(), Before: before, After: after}
	if input.Output != "" {
		if err := writeDocument(input.Output, deduped); err != nil {
			return errResult(err), dedupOutput{}, nil
		}
		output.WrittenTo = input.Output
		return nil, output, nil
	}
	output.Document = deduped
	return nil, output, nil
}
