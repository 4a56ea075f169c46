package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/reportio/internal/cliutil"
)

// UpgradeFlags contains flags for the upgrade command
type UpgradeFlags struct {
	Target string
	Output string
	Format string
	Quiet  bool
	Engine EngineFlags
}

// SetupUpgradeFlags creates and configures a FlagSet for the upgrade command.
// Returns the FlagSet and an UpgradeFlags struct with bound flag variables.
func SetupUpgradeFlags() (*flag.FlagSet, *UpgradeFlags) {
	fs := flag.NewFlagSet("upgrade", flag.ContinueOnError)
	flags := &UpgradeFlags{}

	fs.StringVar(&flags.Target, "t", "latest", "target version")
	fs.StringVar(&flags.Target, "target", "latest", "target version")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Format, "format", "", "document format: json or yaml (default: from the output extension, then the input)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: no summary on stderr")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: no summary on stderr")
	flags.Engine.register(fs, false)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: reportio upgrade [flags] <file|->\n\n")
		Writef(fs.Output(), "Upgrade a report to a newer schema version.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  reportio upgrade report.json\n")
		Writef(fs.Output(), "  reportio upgrade -t v2.1 -o upgraded.yaml report.json\n")
		Writef(fs.Output(), "  cat report.json | reportio upgrade --self-check - > upgraded.json\n")
	}

	return fs, flags
}

// HandleUpgrade executes the upgrade command
func HandleUpgrade(args []string) error {
	fs, flags := SetupUpgradeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("upgrade command requires exactly one file path or '-' for stdin")
	}
	if err := ValidateDocumentFormat(flags.Format); err != nil {
		return err
	}
	target, err := ResolveVersion(flags.Target)
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

	declared := declaredName(doc)
	upgraded, err := engine.Upgrade(target, doc, false)
	if err != nil {
		return fmt.Errorf("upgrading: %w", err)
	}
	if err := WriteDocument(upgraded, flags.Output, flags.Format, format); err != nil {
		return err
	}
	if !flags.Quiet {
		Writef(stderr, "Upgraded %s from %s to %s\n", cliutil.DisplayPath(path), declared, target)
	}
	return nil
}
