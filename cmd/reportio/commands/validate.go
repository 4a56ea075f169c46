package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/reportio/catalog"
	"github.com/erraggy/reportio/internal/cliutil"
	"github.com/erraggy/reportio/ioerrors"
	"github.com/erraggy/reportio/schema"
)

// ErrInvalid is returned by HandleValidate when the document fails validation.
var ErrInvalid = errors.New("document is invalid")

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Version string
	Quiet   bool
	Format  string
}

// ValidateResult is the structured output of the validate command.
type ValidateResult struct {
	File     string `json:"file" yaml:"file"`
	Declared string `json:"declared" yaml:"declared"`
	Version  string `json:"version,omitempty" yaml:"version,omitempty"`
	Valid    bool   `json:"valid" yaml:"valid"`
	Entities int    `json:"entities" yaml:"entities"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	Keyword  string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Message  string `json:"message,omitempty" yaml:"message,omitempty"`
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.StringVar(&flags.Version, "version", "", "validate against this version instead of the declared one")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only set the exit code")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only set the exit code")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: reportio validate [flags] <file|->\n\n")
		Writef(fs.Output(), "Validate a report against the schema of the version it declares.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  reportio validate report.json\n")
		Writef(fs.Output(), "  reportio validate --version v2.1 report.yaml\n")
		Writef(fs.Output(), "  cat report.json | reportio validate -q -\n")
		Writef(fs.Output(), "  reportio validate --format json report.json | jq '.valid'\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Validation successful\n")
		Writef(fs.Output(), "  1    Validation failed or the report could not be read\n")
	}

	return fs, flags
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one file path or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if flags.Version != "" {
		if _, err := ResolveVersion(flags.Version); err != nil {
			return err
		}
	}

	path := fs.Arg(0)
	doc, _, err := ReadDocument(path)
	if err != nil {
		return err
	}

	result := validateDocument(doc, flags.Version)
	result.File = cliutil.DisplayPath(path)

	switch {
	case flags.Format != FormatText:
		if err := OutputStructured(result, flags.Format); err != nil {
			return err
		}
	case flags.Quiet:
	case result.Valid:
		Writef(stdout, "%s: valid %s (%d entities)\n", result.File, result.Version, result.Entities)
	default:
		against := result.Version
		if against == "" {
			against = "any known version (declares " + result.Declared + ")"
		}
		Writef(stdout, "%s: invalid against %s\n", result.File, against)
		Writef(stdout, "  at %q: %s\n", result.Path, result.Message)
	}

	if !result.Valid {
		return ErrInvalid
	}
	return nil
}

// validateDocument validates doc against the named version, or the one it
// declares when name is empty. The name must be known.
func validateDocument(doc schema.Document, name string) *ValidateResult {
	result := &ValidateResult{Declared: declaredName(doc)}

	var v *schema.Version
	var err error
	if name != "" {
		v, _ = catalog.Lookup(name)
		err = v.ValidateExactly(doc)
	} else if exact, ok := catalog.Latest.ResolveExact(doc); ok {
		v = exact
		err = v.ValidateExactly(doc)
	} else {
		err = catalog.Latest.Validate(doc)
		if err == nil {
			err = &ioerrors.ValidationError{Message: "declared version is not a known version"}
		}
	}

	if v != nil {
		result.Version = v.String()
	}
	if err != nil {
		var ve *ioerrors.ValidationError
		if errors.As(err, &ve) {
			result.Path, result.Keyword, result.Message = ve.Path, ve.Keyword, ve.Message
		} else {
			result.Message = err.Error()
		}
		return result
	}
	result.Valid = true
	result.Entities, _ = v.Count(doc)
	return result
}
