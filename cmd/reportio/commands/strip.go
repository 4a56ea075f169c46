package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/reportio/internal/cliutil"
	"github.com/erraggy/reportio/schema"
)

// ErrHasMetadata is returned by HandleStrip in check mode when the report
// contains metadata fields.
var ErrHasMetadata = errors.New("report contains metadata fields")

// StripFlags contains flags for the strip command
type StripFlags struct {
	Output string
	Format string
	Check  bool
}

// SetupStripFlags creates and configures a FlagSet for the strip command.
// Returns the FlagSet and a StripFlags struct with bound flag variables.
func SetupStripFlags() (*flag.FlagSet, *StripFlags) {
	fs := flag.NewFlagSet("strip", flag.ContinueOnError)
	flags := &StripFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Format, "format", "", "document format: json or yaml (default: from the output extension, then the input)")
	fs.BoolVar(&flags.Check, "check", false, "only report whether metadata is present (exit 1 if it is)")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: reportio strip [flags] <file|->\n\n")
		Writef(fs.Output(), "Remove private metadata fields (names starting with '_') from a report.\n")
		Writef(fs.Output(), "The contents of misc fields are left untouched.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  reportio strip -o public.json report.json\n")
		Writef(fs.Output(), "  reportio strip --check report.json\n")
	}

	return fs, flags
}

// HandleStrip executes the strip command
func HandleStrip(args []string) error {
	fs, flags := SetupStripFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("strip command requires exactly one file path or '-' for stdin")
	}
	if err := ValidateDocumentFormat(flags.Format); err != nil {
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

	if flags.Check {
		if schema.HasMetadata(doc) {
			Writef(stdout, "%s: contains metadata\n", cliutil.DisplayPath(path))
			return ErrHasMetadata
		}
		Writef(stdout, "%s: no metadata\n", cliutil.DisplayPath(path))
		return nil
	}

	return WriteDocument(schema.StripMetadata(doc, false), flags.Output, flags.Format, format)
}
