package commands

import (
	"errors"
	"flag"
	"fmt"
)

// MergeFlags contains flags for the merge command
type MergeFlags struct {
	Target string
	Output string
	Format string
	Dedup  bool
	Prefer string
	Quiet  bool
	Engine EngineFlags
}

// SetupMergeFlags creates and configures a FlagSet for the merge command.
// Returns the FlagSet and a MergeFlags struct with bound flag variables.
func SetupMergeFlags() (*flag.FlagSet, *MergeFlags) {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	flags := &MergeFlags{}

	fs.StringVar(&flags.Target, "t", "latest", "lineage the reports are resolved against")
	fs.StringVar(&flags.Target, "target", "latest", "lineage the reports are resolved against")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Format, "format", "", "document format: json or yaml (default: from the output extension, then the first input)")
	fs.BoolVar(&flags.Dedup, "dedup", false, "collapse entities with the same identity after merging")
	fs.StringVar(&flags.Prefer, "prefer", "random", "dedup conflict policy: first, second, or random")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: no summary on stderr")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: no summary on stderr")
	flags.Engine.register(fs, true)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: reportio merge [flags] <file> <file>...\n\n")
		Writef(fs.Output(), "Merge reports of any known versions into one. Reports are upgraded to the\n")
		Writef(fs.Output(), "newest version among them and their entities concatenated in order.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  reportio merge -o merged.json a.json b.yaml\n")
		Writef(fs.Output(), "  reportio merge --dedup --seed 42 a.json b.json c.json\n")
		Writef(fs.Output(), "  reportio merge --dedup --prefer second old.json new.json\n")
	}

	return fs, flags
}

// HandleMerge executes the merge command
func HandleMerge(args []string) error {
	fs, flags := SetupMergeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("merge command requires at least 2 input files")
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
	paths := fs.Args()
	if err := CheckOutput(flags.Output, paths); err != nil {
		return err
	}

	docs, format, err := ReadDocuments(paths)
	if err != nil {
		return err
	}
	engine, flush, err := flags.Engine.NewEngine()
	if err != nil {
		return err
	}
	defer flush()

	merged, version, err := engine.Merge(lineage, docs[0], docs[1:], false, false)
	if err != nil {
		return fmt.Errorf("merging: %w", err)
	}
	entities, err := version.Count(merged)
	if err != nil {
		return err
	}
	collapsed := 0
	if flags.Dedup {
		if merged, err = engine.Dedup(version, merged, false, preferPicker(flags.Prefer)); err != nil {
			return fmt.Errorf("deduplicating: %w", err)
		}
		remaining, err := version.Count(merged)
		if err != nil {
			return err
		}
		collapsed = entities - remaining
		entities = remaining
	}

	if err := WriteDocument(merged, flags.Output, flags.Format, format); err != nil {
		return err
	}
	if !flags.Quiet {
		Writef(stderr, "Merged %d reports into %s: %d entities", len(docs), version, entities)
		if flags.Dedup {
			Writef(stderr, " (%d duplicates collapsed)", collapsed)
		}
		Writef(stderr, "\n")
	}
	return nil
}
