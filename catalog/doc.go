// Package catalog declares the report schema versions shipped with
// reportio.
//
// The lineage is linear:
//
//	v1.0  revisions, builds, tests
//	v1.1  revisions gain contact e-mail addresses
//	v2.0  revisions become checkouts with a derived_id of "origin:id";
//	      builds reference checkouts through checkout_id
//	v2.1  builds gain a log_url
//	v3.0  description fields become comment; test status DONE is replaced
//	      by MISS
//
// Each version's JSON Schema is embedded from schemas/<version>.yaml.
// Upgrading to v2.0 fails for revision ids containing ":", and upgrading to
// v3.0 fails for tests with status DONE: neither has a lossless equivalent.
package catalog
