package main

import (
	"fmt"
	"os"

	"github.com/erraggy/reportio"
	"github.com/erraggy/reportio/cmd/reportio/commands"
)

// handlers maps command names to their handlers.
var handlers = map[string]func([]string) error{
	"validate": commands.HandleValidate,
	"upgrade":  commands.HandleUpgrade,
	"merge":    commands.HandleMerge,
	"dedup":    commands.HandleDedup,
	"compare":  commands.HandleCompare,
	"stats":    commands.HandleStats,
	"strip":    commands.HandleStrip,
	"versions": commands.HandleVersions,
	"schema":   commands.HandleSchema,
	"mcp":      commands.HandleMCP,
}

// knownCommands lists every command name, including the built-ins.
var knownCommands = []string{
	"validate", "upgrade", "merge", "dedup", "compare",
	"stats", "strip", "versions", "schema", "mcp", "version", "help",
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("reportio %s\n", reportio.Version())
		if len(os.Args) > 2 && os.Args[2] == "--verbose" {
			fmt.Println(reportio.BuildInfo())
		}
		return
	case "help", "-h", "--help":
		printUsage()
		return
	}

	handler, ok := handlers[command]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
	if err := handler(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the known command closest to input, or "" when
// none is within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, cmd := range knownCommands {
		if d := editDistance(input, cmd); d < bestDist {
			best, bestDist = cmd, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`reportio - versioned report tools

Usage:
  reportio <command> [options]

Commands:
  validate    Validate a report against the schema of its version
  upgrade     Upgrade a report to a newer schema version
  merge       Merge reports of any known versions into one
  dedup       Collapse entities with the same identity
  compare     Check two reports for semantic equivalence
  stats       Count the entities of a report
  strip       Remove private metadata fields from a report
  versions    List the known schema versions
  schema      Print the JSON Schema of a version
  mcp         Run an MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  reportio validate report.json
  reportio upgrade -t v2.1 -o upgraded.json report.json
  reportio merge --dedup --seed 42 -o merged.json a.json b.yaml
  reportio compare old.json new.json

Run 'reportio <command> --help' for more information on a command.`)
}
