package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/reportio/internal/cliutil"
)

// DedupFlags contains flags for the dedup command
type DedupFlags struct {
	Target string
	Output string
	Format string
	Prefer string
	Quiet  bool
	Engine EngineFlags
}

// SetupDedupFlags creates and configures a FlagSet for the dedup command.
// Returns the FlagSet and a DedupFlags struct with bound flag variables.
func SetupDedupFlags() (*flag.FlagSet, *DedupFlags) {
	fs := flag.NewFlagSet("dedup", flag.ContinueOnError)
	flags := &DedupFlags{}

	fs.StringVar(&flags.Target, "t", "latest", "lineage the report is resolved against")
	fs.StringVar(&flags.Target, "target", "latest", "lineage the report is resolved against")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Format, "format", "", "document format: json or yaml (default: from the output extension, then the input)")
	fs.StringVar(&flags.Prefer, "prefer", "random", "conflict policy: first, second, or random")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: no summary on stderr")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: no summary on stderr")
	flags.Engine.register(fs, true)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: reportio dedup [flags] <file|->\n\n")
		Writef(fs.Output(), "Collapse entities with the same identity. The surviving entity keeps the\n")
		Writef(fs.Output(), "position of the first occurrence; conflicting fields follow --prefer.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  reportio dedup merged.json\n")
		Writef(fs.Output(), "  reportio dedup --seed 7 -o clean.json merged.json\n")
		Writef(fs.Output(), "  reportio dedup --prefer first merged.yaml\n")
	}

	return fs, flags
}

// HandleDedup executes the dedup command
func HandleDedup(args []string) error {
	fs, flags := SetupDedupFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("dedup command requires exactly one file path or '-' for stdin")
	}
	if err := ValidateDocumentFormat(flags.Format); err != nil {
		return err
	}
	if err := ValidatePrefer(flags.Prefer); err != nil {
		return err
	}
	lineage, err := ResolveVersion(flags.Target)
	if err != nil {
		return err
	}
	path := fs.Arg(0)
	if err := CheckOutput(flags.Output, []string{path}); err != nil {
		return err
	}

	doc, format, err := ReadDocument(path)
	if err != nil {
		return err
	}
	engine, flush, err := flags.Engine.NewEngine()
	if err != nil {
		return err
	}
	defer flush()

	before, err := lineage.Count(doc)
	if err != nil {
		return err
	}
	deduped, err := engine.Dedup(lineage, doc, false, preferPicker(flags.Prefer))
	if err != nil {
		return fmt.Errorf("deduplicating: %w", err)
	}
	after, err := lineage.Count(deduped)
	if err != nil {
		return err
	}

	if err := WriteDocument(deduped, flags.Output, flags.Format, format); err != nil {
		return err
	}
	if !flags.Quiet {
		Writef(stderr, "Deduplicated %s: %d entities, %d duplicates collapsed\n", cliutil.DisplayPath(path), after, before-after)
	}
	return nil
}
