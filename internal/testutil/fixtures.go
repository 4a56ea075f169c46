// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/reportio/jsonvalue"
)

// SampleV1JSON is a v1.0 report with one entity of every collection, the
// way external producers emit it.
const SampleV1JSON = `{
  "version": {"major": 1, "minor": 0},
  "revisions": [
    {
      "id": "5e29d1443c46b6ca70a4c940a67e8c09f05dcb7e",
      "origin": "redhat",
      "git_repository_url": "https://git.kernel.org/pub/scm/linux/kernel/git/torvalds/linux.git",
      "git_commit_hash": "5e29d1443c46b6ca70a4c940a67e8c09f05dcb7e",
      "description": "v5.8-rc7",
      "discovery_time": "2020-08-14T23:08:06.967000+00:00",
      "valid": true,
      "misc": {"_internal": true}
    }
  ],
  "builds": [
    {
      "id": "redhat:887318",
      "origin": "redhat",
      "revision_id": "5e29d1443c46b6ca70a4c940a67e8c09f05dcb7e",
      "architecture": "aarch64",
      "start_time": "2020-08-14T23:08:06.967000+00:00",
      "duration": 2.5,
      "valid": true
    }
  ],
  "tests": [
    {
      "id": "redhat:1",
      "origin": "redhat",
      "build_id": "redhat:887318",
      "path": "ltp.syscalls",
      "description": "LTP syscalls",
      "status": "PASS",
      "waived": false
    }
  ]
}`

// SampleV3JSON is SampleV1JSON upgraded to v3.0.
const SampleV3JSON = `{
  "version": {"major": 3, "minor": 0},
  "checkouts": [
    {
      "id": "5e29d1443c46b6ca70a4c940a67e8c09f05dcb7e",
      "origin": "redhat",
      "derived_id": "redhat:5e29d1443c46b6ca70a4c940a67e8c09f05dcb7e",
      "git_repository_url": "https://git.kernel.org/pub/scm/linux/kernel/git/torvalds/linux.git",
      "git_commit_hash": "5e29d1443c46b6ca70a4c940a67e8c09f05dcb7e",
      "comment": "v5.8-rc7",
      "start_time": "2020-08-14T23:08:06.967000+00:00",
      "valid": true,
      "misc": {"_internal": true}
    }
  ],
  "builds": [
    {
      "id": "redhat:887318",
      "origin": "redhat",
      "checkout_id": "redhat:5e29d1443c46b6ca70a4c940a67e8c09f05dcb7e",
      "architecture": "aarch64",
      "start_time": "2020-08-14T23:08:06.967000+00:00",
      "duration": 2.5,
      "valid": true
    }
  ],
  "tests": [
    {
      "id": "redhat:1",
      "origin": "redhat",
      "build_id": "redhat:887318",
      "path": "ltp.syscalls",
      "comment": "LTP syscalls",
      "status": "PASS",
      "waived": false
    }
  ]
}`

// MustDocument decodes a JSON or YAML object into the normalized value set,
// failing the test on error.
func MustDocument(t testing.TB, text string) map[string]any {
	t.Helper()

	doc, _, err := jsonvalue.DecodeObject([]byte(text))
	if err != nil {
		t.Fatalf("Failed to decode document: %v", err)
	}
	return doc
}

// MustValue decodes any JSON or YAML value, failing the test on error.
func MustValue(t testing.TB, text string) any {
	t.Helper()

	v, _, err := jsonvalue.Decode([]byte(text))
	if err != nil {
		t.Fatalf("Failed to decode value: %v", err)
	}
	return v
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t testing.TB, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}
	return writeTemp(t, "report.yaml", data)
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
func WriteTempJSON(t testing.TB, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}
	return writeTemp(t, "report.json", data)
}

func writeTemp(t testing.TB, name string, data []byte) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return tmpFile
}
