package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/reportio/internal/testutil"
	"github.com/erraggy/reportio/ioerrors"
	"github.com/erraggy/reportio/schema"
)

func TestVersions(t *testing.T) {
	versions := Versions()
	names := make([]string, len(versions))
	for i, v := range versions {
		names[i] = v.String()
	}
	assert.Equal(t, []string{"v1.0", "v1.1", "v2.0", "v2.1", "v3.0"}, names)
	assert.Same(t, Latest, versions[len(versions)-1])

	for _, v := range versions {
		assert.True(t, v.IsValidExactly(v.New()), "empty %s document", v)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want *schema.Version
	}{
		{"v1.0", V1},
		{"v1.1", V1_1},
		{"v2.0", V2},
		{"v2.1", V2_1},
		{"v3.0", V3},
		{"latest", Latest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := Lookup(tt.name)
			require.True(t, ok)
			assert.Same(t, tt.want, v)
		})
	}

	for _, name := range []string{"", "v4.0", "2.1", "V2.1"} {
		_, ok := Lookup(name)
		assert.False(t, ok, name)
	}
}

func TestSchema(t *testing.T) {
	s, err := Schema("v2.1")
	require.NoError(t, err)
	assert.Equal(t, "reportio v2.1", s["title"])
	assert.Equal(t, V2_1.Schema(), s)

	_, err = Schema("v9.9")
	assert.Error(t, err)
}

func TestSampleUpgrade(t *testing.T) {
	v1 := testutil.MustDocument(t, testutil.SampleV1JSON)
	require.NoError(t, V1.ValidateExactly(v1))

	got, err := schema.Upgrade(Latest, v1, true)
	require.NoError(t, err)
	want := testutil.MustDocument(t, testutil.SampleV3JSON)
	assert.Equal(t, want, got)
	require.NoError(t, Latest.ValidateExactly(got))

	// Every intermediate version validates its stage of the upgrade
	e := schema.New()
	e.SelfCheck = true
	_, err = e.Upgrade(Latest, testutil.MustDocument(t, testutil.SampleV1JSON), false)
	require.NoError(t, err)

	cmp, err := schema.Compare(Latest, v1, want)
	require.NoError(t, err)
	assert.Zero(t, cmp)
}

func TestUpgradeToV2(t *testing.T) {
	doc := testutil.MustDocument(t, `{
		"version": {"major": 1, "minor": 1},
		"revisions": [
			{"id": "abc", "origin": "lab", "discovery_time": "2021-01-01T00:00:00Z", "contacts": ["a@example.com"]}
		],
		"builds": [
			{"id": "lab:1", "origin": "lab", "revision_id": "abc"},
			{"id": "other:1", "origin": "other", "revision_id": "def"}
		]
	}`)

	got, err := schema.Upgrade(V2, doc, true)
	require.NoError(t, err)
	assert.Equal(t, testutil.MustDocument(t, `{
		"version": {"major": 2, "minor": 0},
		"checkouts": [
			{"id": "abc", "origin": "lab", "derived_id": "lab:abc", "start_time": "2021-01-01T00:00:00Z", "contacts": ["a@example.com"]}
		],
		"builds": [
			{"id": "lab:1", "origin": "lab", "checkout_id": "lab:abc"},
			{"id": "other:1", "origin": "other", "checkout_id": "other:def"}
		]
	}`), got)
	assert.NoError(t, V2.ValidateExactly(got))
}

func TestTransformErrors(t *testing.T) {
	tests := []struct {
		name    string
		target  *schema.Version
		doc     string
		version string
		path    string
	}{
		{
			"revision id with separator",
			V2,
			`{"version": {"major": 1, "minor": 0}, "revisions": [{"id": "a:b", "origin": "lab"}]}`,
			"v2.0",
			"/revisions/0/id",
		},
		{
			"build revision id with separator",
			V2,
			`{"version": {"major": 1, "minor": 0}, "builds": [{"id": "b", "origin": "lab", "revision_id": "x:y"}]}`,
			"v2.0",
			"/builds/0/revision_id",
		},
		{
			"done status",
			Latest,
			`{"version": {"major": 2, "minor": 1}, "tests": [
				{"id": "t1", "origin": "lab", "build_id": "b", "status": "PASS"},
				{"id": "t2", "origin": "lab", "build_id": "b", "status": "DONE"}
			]}`,
			"v3.0",
			"/tests/1/status",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.Upgrade(tt.target, testutil.MustDocument(t, tt.doc), true)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ioerrors.ErrTransform))
			var trErr *ioerrors.TransformError
			require.True(t, errors.As(err, &trErr))
			assert.Equal(t, tt.version, trErr.Version)
			assert.Equal(t, tt.path, trErr.Path)
		})
	}
}

func TestSchemaConstraints(t *testing.T) {
	tests := []struct {
		name    string
		version *schema.Version
		doc     string
		valid   bool
	}{
		{"log url", V2_1, `{"version": {"major": 2, "minor": 1}, "builds": [{"id": "b", "origin": "lab", "checkout_id": "lab:c", "log_url": "https://logs.example.com/b"}]}`, true},
		{"log url before v2.1", V2, `{"version": {"major": 2, "minor": 0}, "builds": [{"id": "b", "origin": "lab", "checkout_id": "lab:c", "log_url": "https://logs.example.com/b"}]}`, false},
		{"relative log url", V2_1, `{"version": {"major": 2, "minor": 1}, "builds": [{"id": "b", "origin": "lab", "checkout_id": "lab:c", "log_url": "logs/b"}]}`, false},
		{"contacts before v1.1", V1, `{"version": {"major": 1, "minor": 0}, "revisions": [{"id": "r", "origin": "lab", "contacts": ["a@example.com"]}]}`, false},
		{"bad contact", V1_1, `{"version": {"major": 1, "minor": 1}, "revisions": [{"id": "r", "origin": "lab", "contacts": ["nobody"]}]}`, false},
		{"checkout id with separator", V2, `{"version": {"major": 2, "minor": 0}, "checkouts": [{"id": "a:b", "origin": "lab", "derived_id": "lab:a"}]}`, false},
		{"checkout without derived id", V2, `{"version": {"major": 2, "minor": 0}, "checkouts": [{"id": "a", "origin": "lab"}]}`, false},
		{"miss status", V3, `{"version": {"major": 3, "minor": 0}, "tests": [{"id": "t", "origin": "lab", "build_id": "b", "status": "MISS"}]}`, true},
		{"done status in v3", V3, `{"version": {"major": 3, "minor": 0}, "tests": [{"id": "t", "origin": "lab", "build_id": "b", "status": "DONE"}]}`, false},
		{"description in v3", V3, `{"version": {"major": 3, "minor": 0}, "tests": [{"id": "t", "origin": "lab", "build_id": "b", "description": "x"}]}`, false},
		{"metadata fields", V3, `{"version": {"major": 3, "minor": 0}, "_generator": "ci", "tests": [{"id": "t", "origin": "lab", "build_id": "b", "_score": 1}]}`, true},
		{"bad origin", V1, `{"version": {"major": 1, "minor": 0}, "revisions": [{"id": "r", "origin": "Lab"}]}`, false},
		{"bad commit hash", V1, `{"version": {"major": 1, "minor": 0}, "revisions": [{"id": "r", "origin": "lab", "git_commit_hash": "abc"}]}`, false},
		{"negative duration", V1, `{"version": {"major": 1, "minor": 0}, "tests": [{"id": "t", "origin": "lab", "build_id": "b", "duration": -1}]}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.version.ValidateExactly(testutil.MustDocument(t, tt.doc))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ioerrors.ErrValidation), "got %v", err)
			}
		})
	}
}

func TestDedupCheckouts(t *testing.T) {
	doc := testutil.MustDocument(t, `{
		"version": {"major": 3, "minor": 0},
		"checkouts": [
			{"id": "c", "origin": "lab", "derived_id": "lab:c", "valid": true},
			{"id": "c", "origin": "ci", "derived_id": "ci:c"},
			{"id": "c", "origin": "lab", "derived_id": "lab:c", "comment": "again"}
		]
	}`)

	got, err := schema.Dedup(Latest, doc, true, func() bool { return false })
	require.NoError(t, err)
	ids, err := Latest.IDs(got)
	require.NoError(t, err)
	assert.Equal(t, map[string][]any{"checkouts": {[]any{"lab", "c"}, []any{"ci", "c"}}}, ids)
	assert.Equal(t, "again", got["checkouts"].([]any)[0].(map[string]any)["comment"])
}
