// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes reportio capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/reportio"
	"github.com/erraggy/reportio/catalog"
	"github.com/erraggy/reportio/internal/cliutil"
	"github.com/erraggy/reportio/ioerrors"
	"github.com/erraggy/reportio/jsonvalue"
	"github.com/erraggy/reportio/schema"
)

const serverInstructions = `reportio MCP server: validates, upgrades, merges, deduplicates and compares versioned report documents (v1.0 through v3.0).

Documents are passed either as a file path or as inline JSON/YAML content. Versions are named "v2.1"; "latest" names the newest one.

Configuration: defaults are configurable via REPORTIO_* environment variables set in your MCP client config.

Key settings:
- REPORTIO_TARGET (default: latest): default target version for upgrade, merge, dedup and compare
- REPORTIO_HEAVY_CHECKS (default: false): validate the document after every upgrade step
- REPORTIO_DEDUP_SEED: seed for reproducible dedup conflict resolution
- REPORTIO_MAX_INLINE_SIZE (default: 10MiB): maximum inline content size
- REPORTIO_MAX_MERGE_SOURCES (default: 20): maximum documents per merge
- REPORTIO_CACHE_ENABLED (default: true): disable document caching entirely

Caching: decoded documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). A background sweeper removes expired entries.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "reportio", Version: reportio.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "versions",
		Description: "List the known report schema versions, oldest first, with their entity collections and whether reaching them from the previous version needs a transform.",
	}, handleVersions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate a report document against the schema of the version it declares, or against an explicit version. Returns the first violation with its JSON pointer location and the failing schema keyword.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "upgrade",
		Description: "Upgrade a report document to a newer schema version (default: latest, configurable via REPORTIO_TARGET). Set self_check to validate after every step. Use output to write to a file instead of returning inline.",
	}, handleUpgrade)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge",
		Description: "Merge report documents of any known versions into one. Documents are upgraded to the newest version among them and their entities concatenated; set dedup to collapse entities with the same identity afterwards. Requires at least 2 documents.",
	}, handleMerge)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "dedup",
		Description: "Collapse entities with the same identity in a report document. Conflicting field values are resolved by prefer (first or second) or randomly; pass seed for a reproducible result.",
	}, handleDedup)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compare",
		Description: "Check two report documents for semantic equivalence. The older document is upgraded to the other's version first, and entity order is ignored. Returns -1, 0 or 1.",
	}, handleCompare)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "strip_metadata",
		Description: "Remove private metadata fields (names starting with an underscore) from a report document. Contents of misc fields are kept.",
	}, handleStripMetadata)
}

// lookupVersion resolves a version name, falling back to the configured
// default target when name is empty.
func lookupVersion(name string) (*schema.Version, error) {
	if name == "" {
		name = cfg.Target
	}
	v, ok := catalog.Lookup(name)
	if !ok {
		names := make([]string, 0, len(catalog.Versions()))
		for _, known := range catalog.Versions() {
			names = append(names, known.String())
		}
		return nil, &ioerrors.ConfigError{
			Option:  "version",
			Value:   name,
			Message: "unknown version; valid values: latest, " + strings.Join(names, ", "),
		}
	}
	return v, nil
}

// newEngine builds an engine for a single tool call. Explicit arguments
// override the configured defaults.
func newEngine(selfCheck *bool, seed *uint64) (*schema.Engine, error) {
	check := cfg.SelfCheck
	if selfCheck != nil {
		check = *selfCheck
	}
	if seed == nil {
		seed = cfg.DedupSeed
	}
	opts := []schema.Option{
		schema.WithLogger(schema.NewSlogAdapter(slog.Default())),
		schema.WithSelfCheck(check),
	}
	if seed != nil {
		opts = append(opts, schema.WithSeed(*seed))
	}
	return schema.NewWithOptions(opts...)
}

// writeDocument encodes doc in the format implied by the output file's
// extension and writes it.
func writeDocument(path string, doc schema.Document) error {
	format := jsonvalue.FormatJSON
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = jsonvalue.FormatYAML
	}
	data, err := jsonvalue.Encode(doc, format)
	if err != nil {
		return err
	}
	if err := cliutil.WriteOutput(path, data, nil); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// violation is a validation failure in tool output.
type violation struct {
	Version string `json:"version,omitempty"`
	Path    string `json:"path"`
	Keyword string `json:"keyword,omitempty"`
	Message string `json:"message"`
}

func newViolation(err error) *violation {
	var ve *ioerrors.ValidationError
	if errors.As(err, &ve) {
		return &violation{Version: ve.Version, Path: ve.Path, Keyword: ve.Keyword, Message: ve.Message}
	}
	return &violation{Message: sanitizeError(err)}
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
