package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/reportio/jsonvalue"
)

// TestSampleDocuments verifies the sample fixtures decode into the normalized value set.
func TestSampleDocuments(t *testing.T) {
	v1 := MustDocument(t, SampleV1JSON)
	assert.Equal(t, map[string]any{"major": int64(1), "minor": int64(0)}, v1["version"])
	assert.Len(t, v1["revisions"], 1)
	assert.Len(t, v1["builds"], 1)
	assert.Len(t, v1["tests"], 1)

	v3 := MustDocument(t, SampleV3JSON)
	assert.Equal(t, map[string]any{"major": int64(3), "minor": int64(0)}, v3["version"])
	assert.Contains(t, v3, "checkouts")
	assert.NotContains(t, v3, "revisions")
}

// TestMustValue verifies scalars and YAML are accepted.
func TestMustValue(t *testing.T) {
	assert.Equal(t, int64(3), MustValue(t, "3"))
	assert.Equal(t, []any{"a", 1.5}, MustValue(t, "- a\n- 1.5\n"))
}

// TestWriteTempYAML verifies that documents can be written to temporary YAML files.
func TestWriteTempYAML(t *testing.T) {
	doc := MustDocument(t, SampleV1JSON)

	path := WriteTempYAML(t, doc)
	assert.FileExists(t, path)
	assert.Equal(t, ".yaml", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	back, format, err := jsonvalue.DecodeObject(data)
	require.NoError(t, err)
	assert.Equal(t, jsonvalue.FormatYAML, format)
	assert.Equal(t, doc, back)
}

// TestWriteTempJSON verifies that documents can be written to temporary JSON files.
func TestWriteTempJSON(t *testing.T) {
	doc := MustDocument(t, SampleV3JSON)

	path := WriteTempJSON(t, doc)
	assert.FileExists(t, path)
	assert.Equal(t, ".json", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n", "JSON should be indented with newlines")
	back, format, err := jsonvalue.DecodeObject(data)
	require.NoError(t, err)
	assert.Equal(t, jsonvalue.FormatJSON, format)
	assert.Equal(t, doc, back)
}
