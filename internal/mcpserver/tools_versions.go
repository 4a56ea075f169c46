package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/reportio/catalog"
)

type versionsInput struct{}

type versionInfo struct {
	Name        string   `json:"name"`
	Major       int      `json:"major"`
	Minor       int      `json:"minor"`
	Previous    string   `json:"previous,omitempty"`
	Transform   bool     `json:"transform"`
	Latest      bool     `json:"latest,omitempty"`
	Collections []string `json:"collections"`
}

type versionsOutput struct {
	Versions []versionInfo `json:"versions"`
}

func handleVersions(_ context.Context, _ *mcp.CallToolRequest, _ versionsInput) (*mcp.CallToolResult, versionsOutput, error) {
	var output versionsOutput
	for _, v := range catalog.Versions() {
		info := versionInfo{
			Name:        v.String(),
			Major:       v.Major(),
			Minor:       v.Minor(),
			Transform:   v.HasTransform(),
			Latest:      v == catalog.Latest,
			Collections: v.Collections(),
		}
		if prev := v.Previous(); prev != nil {
			info.Previous = prev.String()
		}
		output.Versions = append(output.Versions, info)
	}
	return nil, output, nil
}
