package commands

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/reportio/internal/testutil"
)

func TestSetupValidateFlags(t *testing.T) {
	fs, flags := SetupValidateFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Empty(t, flags.Version)
		assert.False(t, flags.Quiet, "expected Quiet to be false by default")
		assert.Equal(t, FormatText, flags.Format)
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"--version", "v2.1", "-q", "--format", "json", "report.json"}
		require.NoError(t, fs.Parse(args))

		assert.Equal(t, "v2.1", flags.Version)
		assert.True(t, flags.Quiet)
		assert.Equal(t, "json", flags.Format)
		assert.Equal(t, "report.json", fs.Arg(0))
	})
}

func TestHandleValidate_NoArgs(t *testing.T) {
	assert.Error(t, HandleValidate([]string{}))
}

func TestHandleValidate_Help(t *testing.T) {
	assert.NoError(t, HandleValidate([]string{"--help"}))
}

func TestHandleValidate_InvalidFormat(t *testing.T) {
	assert.Error(t, HandleValidate([]string{"--format", "invalid", "report.json"}))
}

func TestHandleValidate_UnknownVersion(t *testing.T) {
	err := HandleValidate([]string{"--version", "v0.9", "report.json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown version 'v0.9'")
}

func TestHandleValidate_Valid(t *testing.T) {
	out, _ := captureOutput(t)
	path := writeReport(t, "report.json", testutil.SampleV1JSON)

	require.NoError(t, HandleValidate([]string{path}))
	assert.Equal(t, path+": valid v1.0 (3 entities)\n", out.String())
}

func TestHandleValidate_Stdin(t *testing.T) {
	out, _ := captureOutput(t)
	withStdin(t, testutil.SampleV3JSON)

	require.NoError(t, HandleValidate([]string{"-"}))
	assert.Equal(t, "<stdin>: valid v3.0 (3 entities)\n", out.String())
}

func TestHandleValidate_Invalid(t *testing.T) {
	out, _ := captureOutput(t)
	path := writeReport(t, "report.json", `{"version": {"major": 1, "minor": 0}, "revisions": [{"id": "x"}]}`)

	err := HandleValidate([]string{path})
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.Contains(t, out.String(), "invalid against v1.0")
	assert.Contains(t, out.String(), `at "/revisions/0"`)
}

func TestHandleValidate_Quiet(t *testing.T) {
	out, _ := captureOutput(t)
	path := writeReport(t, "report.json", `{"version": {"major": 7, "minor": 0}}`)

	err := HandleValidate([]string{"-q", path})
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.Empty(t, out.String())
}

func TestHandleValidate_JSON(t *testing.T) {
	out, _ := captureOutput(t)
	path := writeReport(t, "report.json", testutil.SampleV1JSON)

	err := HandleValidate([]string{"--format", "json", "--version", "v2.0", path})
	assert.True(t, errors.Is(err, ErrInvalid), "a v1.0 report does not validate as exactly v2.0")

	var result ValidateResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.False(t, result.Valid)
	assert.Equal(t, "v2.0", result.Version)
	assert.Equal(t, "v1.0", result.Declared)
	assert.NotEmpty(t, result.Message)
}

func TestValidateDocument_UnknownDeclared(t *testing.T) {
	result := validateDocument(testutil.MustDocument(t, `{"version": {"major": 4, "minor": 0}}`), "")
	assert.False(t, result.Valid)
	assert.Empty(t, result.Version)
	assert.Equal(t, "v4.0", result.Declared)
	assert.NotEmpty(t, result.Message)
}
