// Package options provides shared utilities for option validation across packages.
package options

import (
	"strings"

	"github.com/erraggy/reportio/ioerrors"
)

// Source names an option together with whether it was set.
type Source struct {
	Name string
	Set  bool
}

// ValidateSingleInputSource ensures exactly one of sources is set.
// Returns a *ioerrors.ConfigError naming the candidates otherwise.
func ValidateSingleInputSource(sources ...Source) error {
	set := countSet(sources)
	if set == 0 {
		return &ioerrors.ConfigError{
			Option:  joinNames(sources),
			Message: "must specify an input source",
		}
	}
	if set > 1 {
		return &ioerrors.ConfigError{
			Option:  joinNames(sources),
			Message: "must specify exactly one input source",
		}
	}
	return nil
}

// ValidateAtMostOne ensures no more than one of sources is set.
func ValidateAtMostOne(sources ...Source) error {
	if countSet(sources) > 1 {
		return &ioerrors.ConfigError{
			Option:  joinNames(sources),
			Message: "options are mutually exclusive",
		}
	}
	return nil
}

func countSet(sources []Source) int {
	n := 0
	for _, s := range sources {
		if s.Set {
			n++
		}
	}
	return n
}

func joinNames(sources []Source) string {
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name
	}
	return strings.Join(names, "/")
}
