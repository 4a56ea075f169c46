package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/reportio/jsonvalue"
)

func TestHandleVersions_Text(t *testing.T) {
	out, _ := captureOutput(t)

	require.NoError(t, HandleVersions(nil))
	assert.Equal(t, "v1.0: revisions, builds, tests\n"+
		"v1.1: revisions, builds, tests\n"+
		"v2.0 (transform): checkouts, builds, tests\n"+
		"v2.1: checkouts, builds, tests\n"+
		"v3.0 (latest, transform): checkouts, builds, tests\n", out.String())
}

func TestHandleVersions_JSON(t *testing.T) {
	out, _ := captureOutput(t)

	require.NoError(t, HandleVersions([]string{"--format", "json"}))

	var infos []VersionInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &infos))
	require.Len(t, infos, 5)
	assert.Equal(t, VersionInfo{Name: "v1.0", Collections: []string{"revisions", "builds", "tests"}}, infos[0])
	assert.Equal(t, "v1.1", infos[2].Previous)
	assert.True(t, infos[2].Transform)
	assert.True(t, infos[4].Latest)
	assert.Equal(t, "v2.1", infos[4].Previous)
}

func TestHandleVersions_Errors(t *testing.T) {
	assert.Error(t, HandleVersions([]string{"extra"}))
	assert.Error(t, HandleVersions([]string{"--format", "xml"}))
	assert.NoError(t, HandleVersions([]string{"--help"}))
}

func TestHandleSchema(t *testing.T) {
	out, _ := captureOutput(t)

	require.NoError(t, HandleSchema([]string{"v2.1"}))
	doc, format, err := jsonvalue.DecodeObject(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, jsonvalue.FormatJSON, format)
	assert.Equal(t, "reportio v2.1", doc["title"])

	out.Reset()
	require.NoError(t, HandleSchema([]string{"--format", "yaml"}))
	doc, format, err = jsonvalue.DecodeObject(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, jsonvalue.FormatYAML, format)
	assert.Equal(t, "reportio v3.0", doc["title"])
}

func TestHandleSchema_Errors(t *testing.T) {
	assert.Error(t, HandleSchema([]string{"v1.0", "v2.0"}))
	assert.Error(t, HandleSchema([]string{"v5.0"}))
	assert.Error(t, HandleSchema([]string{"--format", "text"}))
	assert.NoError(t, HandleSchema([]string{"--help"}))
}

func TestHandleMCP_Args(t *testing.T) {
	assert.NoError(t, HandleMCP([]string{"--help"}))
	assert.Error(t, HandleMCP([]string{"stdio"}))
}
