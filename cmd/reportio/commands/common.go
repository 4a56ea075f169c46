// Package commands provides CLI command handlers for reportio.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/reportio/catalog"
	"github.com/erraggy/reportio/internal/cliutil"
	"github.com/erraggy/reportio/jsonvalue"
	"github.com/erraggy/reportio/schema"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = cliutil.StdinPath

// Standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Writef writes formatted output to the writer.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// ValidateDocumentFormat validates the format of a written document. An
// empty format keeps the format of the input.
func ValidateDocumentFormat(format string) error {
	if format != "" && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", format, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured outputs data in the specified format (json or yaml) to stdout.
// Returns an error if marshaling fails.
func OutputStructured(data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(stdout, "%s\n", strings.TrimRight(string(bytes), "\n"))
	return nil
}

// ReadDocument reads and decodes the report at path, or from stdin when
// path is StdinFilePath.
func ReadDocument(path string) (schema.Document, jsonvalue.Format, error) {
	data, err := cliutil.ReadInput(path, stdin)
	if err != nil {
		return nil, jsonvalue.FormatUnknown, err
	}
	doc, format, err := jsonvalue.DecodeObject(data)
	if err != nil {
		return nil, format, fmt.Errorf("decoding %s: %w", cliutil.DisplayPath(path), err)
	}
	return doc, format, nil
}

// ReadDocuments reads every path in order. At most one of them may be
// StdinFilePath.
func ReadDocuments(paths []string) ([]schema.Document, jsonvalue.Format, error) {
	stdinCount := 0
	for _, p := range paths {
		if p == StdinFilePath {
			stdinCount++
		}
	}
	if stdinCount > 1 {
		return nil, jsonvalue.FormatUnknown, errors.New("stdin ('-') can only be used once")
	}

	docs := make([]schema.Document, len(paths))
	var first jsonvalue.Format
	for i, p := range paths {
		doc, format, err := ReadDocument(p)
		if err != nil {
			return nil, jsonvalue.FormatUnknown, err
		}
		if i == 0 {
			first = format
		}
		docs[i] = doc
	}
	return docs, first, nil
}

// documentFormat picks the encoding of a written document: an explicit
// format wins, then the output file's extension, then the input's format.
func documentFormat(explicit, output string, input jsonvalue.Format) jsonvalue.Format {
	switch explicit {
	case FormatJSON:
		return jsonvalue.FormatJSON
	case FormatYAML:
		return jsonvalue.FormatYAML
	}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".json":
		return jsonvalue.FormatJSON
	case ".yaml", ".yml":
		return jsonvalue.FormatYAML
	}
	if input == jsonvalue.FormatYAML {
		return jsonvalue.FormatYAML
	}
	return jsonvalue.FormatJSON
}

// WriteDocument encodes doc and writes it to output, or to stdout when
// output is empty.
func WriteDocument(doc schema.Document, output, format string, input jsonvalue.Format) error {
	data, err := jsonvalue.Encode(doc, documentFormat(format, output, input))
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	if err := cliutil.WriteOutput(output, data, stdout); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// CheckOutput rejects an output file that would overwrite an input and
// warns when it already exists.
func CheckOutput(output string, inputs []string) error {
	if output == "" {
		return nil
	}
	if err := cliutil.CheckOutputPath(output, inputs); err != nil {
		return err
	}
	if _, err := os.Stat(output); err == nil {
		Writef(stderr, "Warning: output file %s already exists and will be overwritten\n", output)
	}
	return nil
}

// ResolveVersion looks up a version by name. An empty name or "latest"
// selects the newest version.
func ResolveVersion(name string) (*schema.Version, error) {
	if name == "" {
		return catalog.Latest, nil
	}
	v, ok := catalog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown version '%s'. Valid versions: latest, %s", name, strings.Join(versionNames(), ", "))
	}
	return v, nil
}

func versionNames() []string {
	versions := catalog.Versions()
	names := make([]string, len(versions))
	for i, v := range versions {
		names[i] = v.String()
	}
	return names
}

// declaredName returns the version doc declares, for messages.
func declaredName(doc schema.Document) string {
	major, minor, ok := catalog.Latest.DeclaredVersion(doc)
	if !ok {
		return "none"
	}
	return fmt.Sprintf("v%d.%d", major, minor)
}

// seedValue is a flag.Value for an optional uint64 seed.
type seedValue struct {
	value uint64
	set   bool
}

func (s *seedValue) String() string {
	if s == nil || !s.set {
		return ""
	}
	return strconv.FormatUint(s.value, 10)
}

func (s *seedValue) Set(v string) error {
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fmt.Errorf("seed must be a non-negative integer: %w", err)
	}
	s.value, s.set = n, true
	return nil
}

// ValidatePrefer validates a dedup conflict policy name.
func ValidatePrefer(prefer string) error {
	switch prefer {
	case "", "random", "first", "second":
		return nil
	}
	return fmt.Errorf("invalid prefer '%s'. Valid values: first, second, random", prefer)
}

// preferPicker maps a conflict policy name to a dedup picker. Nil defers to
// the engine.
func preferPicker(prefer string) func() bool {
	switch prefer {
	case "first":
		return func() bool { return false }
	case "second":
		return func() bool { return true }
	}
	return nil
}
