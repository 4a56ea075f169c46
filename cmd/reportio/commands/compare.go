package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/reportio/internal/cliutil"
)

// ErrNotEquivalent is returned by HandleCompare when the reports differ.
var ErrNotEquivalent = errors.New("reports are not equivalent")

// CompareFlags contains flags for the compare command
type CompareFlags struct {
	Target string
	Quiet  bool
	Format string
	Engine EngineFlags
}

// CompareResult is the structured output of the compare command.
type CompareResult struct {
	First      string `json:"first" yaml:"first"`
	Second     string `json:"second" yaml:"second"`
	Version    string `json:"version" yaml:"version"`
	Result     int    `json:"result" yaml:"result"`
	Equivalent bool   `json:"equivalent" yaml:"equivalent"`
}

// SetupCompareFlags creates and configures a FlagSet for the compare command.
// Returns the FlagSet and a CompareFlags struct with bound flag variables.
func SetupCompareFlags() (*flag.FlagSet, *CompareFlags) {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	flags := &CompareFlags{}

	fs.StringVar(&flags.Target, "t", "latest", "lineage the reports are resolved against")
	fs.StringVar(&flags.Target, "target", "latest", "lineage the reports are resolved against")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only set the exit code")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only set the exit code")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	flags.Engine.register(fs, false)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: reportio compare [flags] <first> <second>\n\n")
		Writef(fs.Output(), "Check two reports for semantic equivalence. The report declaring the older\n")
		Writef(fs.Output(), "version is upgraded first; the order of entities is ignored.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  reportio compare old.json new.json\n")
		Writef(fs.Output(), "  reportio compare -q v1.json v3.yaml && echo same\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Reports are equivalent\n")
		Writef(fs.Output(), "  1    Reports differ or could not be compared\n")
	}

	return fs, flags
}

// HandleCompare executes the compare command
func HandleCompare(args []string) error {
	fs, flags := SetupCompareFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("compare command requires exactly two file paths")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	lineage, err := ResolveVersion(flags.Target)
	if err != nil {
		return err
	}

	docs, _, err := ReadDocuments(fs.Args())
	if err != nil {
		return err
	}
	engine, flush, err := flags.Engine.NewEngine()
	if err != nil {
		return err
	}
	defer flush()

	version, first, second, err := engine.Align(lineage, docs[0], docs[1], false, false)
	if err != nil {
		return fmt.Errorf("aligning: %w", err)
	}
	cmp, err := engine.CompareDirectly(version, first, second)
	if err != nil {
		return fmt.Errorf("comparing: %w", err)
	}

	result := CompareResult{
		First:      cliutil.DisplayPath(fs.Arg(0)),
		Second:     cliutil.DisplayPath(fs.Arg(1)),
		Version:    version.String(),
		Result:     cmp,
		Equivalent: cmp == 0,
	}
	switch {
	case flags.Format != FormatText:
		if err := OutputStructured(result, flags.Format); err != nil {
			return err
		}
	case flags.Quiet:
	case result.Equivalent:
		Writef(stdout, "%s and %s are equivalent as %s\n", result.First, result.Second, result.Version)
	default:
		order := "before"
		if cmp > 0 {
			order = "after"
		}
		Writef(stdout, "%s and %s differ as %s (%s sorts %s)\n", result.First, result.Second, result.Version, result.First, order)
	}

	if !result.Equivalent {
		return ErrNotEquivalent
	}
	return nil
}
