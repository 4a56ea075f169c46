package commands

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/erraggy/reportio/catalog"
	"github.com/erraggy/reportio/jsonvalue"
)

// VersionsFlags contains flags for the versions command
type VersionsFlags struct {
	Format string
}

// VersionInfo describes one schema version.
type VersionInfo struct {
	Name        string   `json:"name" yaml:"name"`
	Previous    string   `json:"previous,omitempty" yaml:"previous,omitempty"`
	Transform   bool     `json:"transform" yaml:"transform"`
	Latest      bool     `json:"latest,omitempty" yaml:"latest,omitempty"`
	Collections []string `json:"collections" yaml:"collections"`
}

// SetupVersionsFlags creates and configures a FlagSet for the versions command.
func SetupVersionsFlags() (*flag.FlagSet, *VersionsFlags) {
	fs := flag.NewFlagSet("versions", flag.ContinueOnError)
	flags := &VersionsFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: reportio versions [flags]\n\n")
		Writef(fs.Output(), "List the known report schema versions, oldest first.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}

	return fs, flags
}

// HandleVersions executes the versions command
func HandleVersions(args []string) error {
	fs, flags := SetupVersionsFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("versions command takes no arguments")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	var infos []VersionInfo
	for _, v := range catalog.Versions() {
		info := VersionInfo{
			Name:        v.String(),
			Transform:   v.HasTransform(),
			Latest:      v == catalog.Latest,
			Collections: v.Collections(),
		}
		if prev := v.Previous(); prev != nil {
			info.Previous = prev.String()
		}
		infos = append(infos, info)
	}

	if flags.Format != FormatText {
		return OutputStructured(infos, flags.Format)
	}
	for _, info := range infos {
		marker := ""
		switch {
		case info.Latest:
			marker = " (latest)"
		case info.Transform:
			marker = " (transform)"
		}
		if info.Latest && info.Transform {
			marker = " (latest, transform)"
		}
		Writef(stdout, "%s%s: %s\n", info.Name, marker, strings.Join(info.Collections, ", "))
	}
	return nil
}

// SchemaFlags contains flags for the schema command
type SchemaFlags struct {
	Format string
}

// SetupSchemaFlags creates and configures a FlagSet for the schema command.
func SetupSchemaFlags() (*flag.FlagSet, *SchemaFlags) {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	flags := &SchemaFlags{}

	fs.StringVar(&flags.Format, "format", FormatJSON, "output format: json or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: reportio schema [flags] [version]\n\n")
		Writef(fs.Output(), "Print the JSON Schema of a report version (default: latest).\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  reportio schema v2.1\n")
		Writef(fs.Output(), "  reportio schema --format yaml\n")
	}

	return fs, flags
}

// HandleSchema executes the schema command
func HandleSchema(args []string) error {
	fs, flags := SetupSchemaFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("schema command takes at most one version")
	}
	if err := ValidateDocumentFormat(flags.Format); err != nil {
		return err
	}

	v, err := ResolveVersion(fs.Arg(0))
	if err != nil {
		return err
	}
	format := jsonvalue.FormatJSON
	if flags.Format == FormatYAML {
		format = jsonvalue.FormatYAML
	}
	data, err := jsonvalue.Encode(v.Schema(), format)
	if err != nil {
		return fmt.Errorf("encoding schema: %w", err)
	}
	Writef(stdout, "%s\n", strings.TrimRight(string(data), "\n"))
	return nil
}
