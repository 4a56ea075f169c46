package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/reportio/internal/testutil"
)

func TestHandleStats_Errors(t *testing.T) {
	captureOutput(t)
	path := writeReport(t, "report.json", testutil.SampleV1JSON)

	assert.Error(t, HandleStats([]string{}))
	assert.Error(t, HandleStats([]string{"--format", "csv", path}))
	assert.NoError(t, HandleStats([]string{"--help"}))

	unknown := writeReport(t, "unknown.json", `{"version": {"major": 0, "minor": 1}}`)
	err := HandleStats([]string{unknown})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown version v0.1")
}

func TestHandleStats_Text(t *testing.T) {
	out, _ := captureOutput(t)
	path := writeReport(t, "report.json", testutil.SampleV1JSON)

	require.NoError(t, HandleStats([]string{path}))

	text := out.String()
	assert.Contains(t, text, "Report: "+path+"\n")
	assert.Contains(t, text, "Version: v1.0\n")
	assert.Contains(t, text, "  revisions  1\n")
	assert.Contains(t, text, "Total: 3 entities\n")
	assert.NotContains(t, text, "metadata", "misc contents are not metadata")
}

func TestHandleStats_Duplicates(t *testing.T) {
	out, _ := captureOutput(t)
	withStdin(t, duplicateCheckoutsV3)

	require.NoError(t, HandleStats([]string{"-"}))
	assert.Contains(t, out.String(), "Report: <stdin>\n")
	assert.Contains(t, out.String(), "  checkouts  3 (1 duplicates)\n")
}

func TestHandleStats_GroupsThousands(t *testing.T) {
	var b strings.Builder
	b.WriteString(`{"version": {"major": 3, "minor": 0}, "_source": "ci", "checkouts": [`)
	for i := range 1200 {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"origin": "o", "id": "c%d"}`, i)
	}
	b.WriteString("]}")

	out, _ := captureOutput(t)
	path := writeReport(t, "big.json", b.String())

	require.NoError(t, HandleStats([]string{path}))
	assert.Contains(t, out.String(), "Total: 1,200 entities\n")
	assert.Contains(t, out.String(), "Contains metadata fields\n")
}

func TestHandleStats_JSON(t *testing.T) {
	out, _ := captureOutput(t)
	path := writeReport(t, "report.json", duplicateCheckoutsV3)

	require.NoError(t, HandleStats([]string{"--format", "json", path}))

	var result StatsResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, "v3.0", result.Version)
	assert.Equal(t, 3, result.Total)
	assert.False(t, result.HasMetadata)
	require.NotEmpty(t, result.Collections)
	assert.Equal(t, CollectionStats{Name: "checkouts", Count: 3, Distinct: 2}, result.Collections[0])
}

func TestCollectStats_MultiFieldIdentity(t *testing.T) {
	doc := testutil.MustDocument(t, `{
  "version": {"major": 2, "minor": 0},
  "checkouts": [
    {"origin": "a", "id": "1"},
    {"origin": "b", "id": "1"},
    {"origin": "a", "id": "1"}
  ]
}`)

	result, err := collectStats(doc)
	require.NoError(t, err)
	assert.Equal(t, "v2.0", result.Version)
	assert.Equal(t, CollectionStats{Name: "checkouts", Count: 3, Distinct: 2}, result.Collections[0])
}
