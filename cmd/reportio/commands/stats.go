package commands

import (
	"errors"
	"flag"
	"fmt"

	"golang.org/x/text/message"

	"github.com/erraggy/reportio/canonical"
	"github.com/erraggy/reportio/catalog"
	"github.com/erraggy/reportio/internal/cliutil"
	"github.com/erraggy/reportio/schema"
)

// StatsFlags contains flags for the stats command
type StatsFlags struct {
	Format string
}

// CollectionStats counts the entities of one collection.
type CollectionStats struct {
	Name     string `json:"name" yaml:"name"`
	Count    int    `json:"count" yaml:"count"`
	Distinct int    `json:"distinct" yaml:"distinct"`
}

// StatsResult is the structured output of the stats command.
type StatsResult struct {
	File        string            `json:"file" yaml:"file"`
	Version     string            `json:"version" yaml:"version"`
	Collections []CollectionStats `json:"collections" yaml:"collections"`
	Total       int               `json:"total" yaml:"total"`
	HasMetadata bool              `json:"has_metadata" yaml:"has_metadata"`
}

// SetupStatsFlags creates and configures a FlagSet for the stats command.
// Returns the FlagSet and a StatsFlags struct with bound flag variables.
func SetupStatsFlags() (*flag.FlagSet, *StatsFlags) {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	flags := &StatsFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: reportio stats [flags] <file|->\n\n")
		Writef(fs.Output(), "Count the entities of a report per collection, with the number of distinct\n")
		Writef(fs.Output(), "identities among them.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  reportio stats merged.json\n")
		Writef(fs.Output(), "  reportio stats --format json merged.json | jq '.total'\n")
	}

	return fs, flags
}

// HandleStats executes the stats command
func HandleStats(args []string) error {
	fs, flags := SetupStatsFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("stats command requires exactly one file path or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	path := fs.Arg(0)
	doc, _, err := ReadDocument(path)
	if err != nil {
		return err
	}
	result, err := collectStats(doc)
	if err != nil {
		return err
	}
	result.File = cliutil.DisplayPath(path)

	if flags.Format != FormatText {
		return OutputStructured(result, flags.Format)
	}

	p := message.NewPrinter(message.MatchLanguage("en")) // adds commas
	p.Fprintf(stdout, "Report: %s\n", result.File)
	p.Fprintf(stdout, "Version: %s\n", result.Version)
	for _, c := range result.Collections {
		p.Fprintf(stdout, "  %-10s %d", c.Name, c.Count)
		if dup := c.Count - c.Distinct; dup > 0 {
			p.Fprintf(stdout, " (%d duplicates)", dup)
		}
		p.Fprintf(stdout, "\n")
	}
	p.Fprintf(stdout, "Total: %d entities\n", result.Total)
	if result.HasMetadata {
		p.Fprintf(stdout, "Contains metadata fields\n")
	}
	return nil
}

// collectStats counts the entities of doc, which must declare a known
// version.
func collectStats(doc schema.Document) (*StatsResult, error) {
	v, ok := catalog.Latest.ResolveExact(doc)
	if !ok {
		return nil, fmt.Errorf("report declares unknown version %s", declaredName(doc))
	}
	ids, err := v.IDs(doc)
	if err != nil {
		return nil, err
	}

	result := &StatsResult{Version: v.String(), HasMetadata: schema.HasMetadata(doc)}
	for _, name := range v.Collections() {
		list := ids[name]
		distinct := make(map[string]struct{}, len(list))
		for _, id := range list {
			key, err := canonical.KeyOf(id, 0)
			if err != nil {
				return nil, fmt.Errorf("identity in %s: %w", name, err)
			}
			distinct[key.String()] = struct{}{}
		}
		result.Collections = append(result.Collections, CollectionStats{
			Name:     name,
			Count:    len(list),
			Distinct: len(distinct),
		})
		result.Total += len(list)
	}
	return result, nil
}
