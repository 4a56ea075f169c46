package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/reportio/catalog"
	"github.com/erraggy/reportio/internal/testutil"
	"github.com/erraggy/reportio/jsonvalue"
)

// captureOutput redirects the command streams to buffers for one test.
func captureOutput(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	savedOut, savedErr := stdout, stderr
	stdout, stderr = out, errOut
	t.Cleanup(func() { stdout, stderr = savedOut, savedErr })
	return out, errOut
}

// withStdin feeds text to commands reading "-".
func withStdin(t *testing.T, text string) {
	t.Helper()
	saved := stdin
	stdin = strings.NewReader(text)
	t.Cleanup(func() { stdin = saved })
}

// writeReport writes text to a fresh temporary file named name.
func writeReport(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func TestValidateOutputFormat(t *testing.T) {
	for _, f := range []string{FormatText, FormatJSON, FormatYAML} {
		assert.NoError(t, ValidateOutputFormat(f))
	}
	assert.Error(t, ValidateOutputFormat("xml"))
	assert.Error(t, ValidateOutputFormat(""))
}

func TestValidateDocumentFormat(t *testing.T) {
	for _, f := range []string{"", FormatJSON, FormatYAML} {
		assert.NoError(t, ValidateDocumentFormat(f))
	}
	assert.Error(t, ValidateDocumentFormat(FormatText))
}

func TestOutputStructured(t *testing.T) {
	out, _ := captureOutput(t)
	data := map[string]any{"valid": true}

	require.NoError(t, OutputStructured(data, FormatJSON))
	assert.Equal(t, "{\n  \"valid\": true\n}\n", out.String())

	out.Reset()
	require.NoError(t, OutputStructured(data, FormatYAML))
	assert.Equal(t, "valid: true\n", out.String())

	assert.Error(t, OutputStructured(data, FormatText))
}

func TestReadDocument(t *testing.T) {
	path := writeReport(t, "report.yaml", "version: {major: 1, minor: 0}\n")

	doc, format, err := ReadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, jsonvalue.FormatYAML, format)
	assert.Equal(t, "v1.0", declaredName(doc))

	withStdin(t, `{"version": {"major": 2, "minor": 1}}`)
	doc, format, err = ReadDocument(StdinFilePath)
	require.NoError(t, err)
	assert.Equal(t, jsonvalue.FormatJSON, format)
	assert.Equal(t, "v2.1", declaredName(doc))
}

func TestReadDocument_Errors(t *testing.T) {
	_, _, err := ReadDocument(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, _, err = ReadDocument(writeReport(t, "list.json", "[1]"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding")
}

func TestReadDocuments_StdinOnce(t *testing.T) {
	_, _, err := ReadDocuments([]string{StdinFilePath, StdinFilePath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only be used once")
}

func TestDocumentFormat(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		output   string
		input    jsonvalue.Format
		want     jsonvalue.Format
	}{
		{"explicit wins", FormatYAML, "out.json", jsonvalue.FormatJSON, jsonvalue.FormatYAML},
		{"extension", "", "out.yml", jsonvalue.FormatJSON, jsonvalue.FormatYAML},
		{"json extension", "", "out.JSON", jsonvalue.FormatYAML, jsonvalue.FormatJSON},
		{"input format", "", "", jsonvalue.FormatYAML, jsonvalue.FormatYAML},
		{"default json", "", "out.txt", jsonvalue.FormatUnknown, jsonvalue.FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, documentFormat(tt.explicit, tt.output, tt.input))
		})
	}
}

func TestWriteDocument(t *testing.T) {
	out, _ := captureOutput(t)
	doc := map[string]any{"version": map[string]any{"major": int64(3), "minor": int64(0)}}

	require.NoError(t, WriteDocument(doc, "", "", jsonvalue.FormatJSON))
	assert.True(t, strings.HasSuffix(out.String(), "}\n"))

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, WriteDocument(doc, path, "", jsonvalue.FormatJSON))
	got, format, err := ReadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, jsonvalue.FormatYAML, format)
	assert.Equal(t, doc, got)
}

func TestCheckOutput(t *testing.T) {
	_, errOut := captureOutput(t)
	input := writeReport(t, "in.json", "{}")

	assert.NoError(t, CheckOutput("", []string{input}))
	assert.Error(t, CheckOutput(input, []string{input}))

	existing := writeReport(t, "out.json", "{}")
	assert.NoError(t, CheckOutput(existing, []string{input}))
	assert.Contains(t, errOut.String(), "already exists")
}

func TestResolveVersion(t *testing.T) {
	v, err := ResolveVersion("")
	require.NoError(t, err)
	assert.Same(t, catalog.Latest, v)

	v, err = ResolveVersion("latest")
	require.NoError(t, err)
	assert.Same(t, catalog.Latest, v)

	v, err = ResolveVersion("v1.1")
	require.NoError(t, err)
	assert.Same(t, catalog.V1_1, v)

	_, err = ResolveVersion("v1.2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Valid versions: latest, v1.0, v1.1, v2.0, v2.1, v3.0")
}

func TestDeclaredName(t *testing.T) {
	assert.Equal(t, "v2.0", declaredName(testutil.MustDocument(t, `{"version": {"major": 2, "minor": 0}}`)))
	assert.Equal(t, "none", declaredName(map[string]any{}))
}

func TestSeedValue(t *testing.T) {
	var s seedValue
	assert.Empty(t, s.String())
	require.NoError(t, s.Set("42"))
	assert.True(t, s.set)
	assert.Equal(t, uint64(42), s.value)
	assert.Equal(t, "42", s.String())

	assert.Error(t, s.Set("-1"))
	assert.Error(t, s.Set("many"))
}

func TestPrefer(t *testing.T) {
	for _, p := range []string{"", "random", "first", "second"} {
		assert.NoError(t, ValidatePrefer(p))
	}
	assert.Error(t, ValidatePrefer("last"))

	assert.Nil(t, preferPicker("random"))
	assert.False(t, preferPicker("first")())
	assert.True(t, preferPicker("second")())
}
