package schema

import (
	"math/rand/v2"
	"os"
	"strconv"
)

// HeavyChecksEnv names the environment variable enabling the upgrade
// self-check by default. Any value other than a false boolean enables it.
const HeavyChecksEnv = "REPORTIO_HEAVY_CHECKS"

// Engine upgrades, merges, deduplicates and compares documents.
// The zero value is not usable; create one with New or NewWithOptions.
type Engine struct {
	// Logger receives debug output about resolution and each upgrade step.
	Logger Logger
	// SelfCheck re-validates the document against each version an upgrade
	// steps through.
	SelfCheck bool
	// PickSecond decides dedup conflicts when Dedup is called without its
	// own policy. Nil means an unbiased random choice per field.
	PickSecond func() bool
}

// New creates a new Engine instance with default settings
func New() *Engine {
	return &Engine{
		Logger:    NopLogger{},
		SelfCheck: DefaultSelfCheck(),
	}
}

// DefaultSelfCheck reports whether the HeavyChecksEnv environment
// variable enables the upgrade self-check.
func DefaultSelfCheck() bool {
	val := os.Getenv(HeavyChecksEnv)
	if val == "" {
		return false
	}
	enabled, err := strconv.ParseBool(val)
	if err != nil {
		return true
	}
	return enabled
}

func (e *Engine) logger() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}

func (e *Engine) pickSecond(explicit func() bool) func() bool {
	if explicit != nil {
		return explicit
	}
	if e.PickSecond != nil {
		return e.PickSecond
	}
	return randomBit
}

func randomBit() bool {
	return rand.Uint64()&1 == 1
}

// Upgrade is a convenience function that upgrades doc to target with a
// default Engine. See Engine.Upgrade.
//
// Example:
//
//	doc, err := schema.Upgrade(catalog.Latest, doc, true)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Upgrade(target *Version, doc Document, copyDoc bool) (Document, error) {
	return New().Upgrade(target, doc, copyDoc)
}

// Merge is a convenience function that merges sources into target with a
// default Engine. See Engine.Merge.
func Merge(lineage *Version, target Document, sources []Document, copyTarget, copySources bool) (Document, *Version, error) {
	return New().Merge(lineage, target, sources, copyTarget, copySources)
}

// Dedup is a convenience function that deduplicates doc with a default
// Engine. See Engine.Dedup.
func Dedup(lineage *Version, doc Document, copyDoc bool, pickSecond func() bool) (Document, error) {
	return New().Dedup(lineage, doc, copyDoc, pickSecond)
}

// Compare is a convenience function that compares two documents with a
// default Engine, copying both. See Engine.Compare.
func Compare(lineage *Version, first, second Document) (int, error) {
	return New().Compare(lineage, first, second, true, true)
}
