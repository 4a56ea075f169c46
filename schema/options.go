package schema

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/erraggy/reportio/internal/options"
	"github.com/erraggy/reportio/ioerrors"
)

// Option is a function that configures an Engine
type Option func(*engineConfig) error

// engineConfig holds configuration for an Engine
type engineConfig struct {
	logger     Logger
	selfCheck  *bool
	pickSecond func() bool
	seed       *uint64
}

// NewWithOptions creates an Engine using functional options.
//
// Example:
//
//	engine, err := schema.NewWithOptions(
//	    schema.WithLogger(schema.NewSlogAdapter(slog.Default())),
//	    schema.WithSeed(42),
//	)
func NewWithOptions(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("schema: invalid options: %w", err)
		}
	}
	if err := options.ValidateAtMostOne(
		options.Source{Name: "WithPickSecond", Set: cfg.pickSecond != nil},
		options.Source{Name: "WithSeed", Set: cfg.seed != nil},
	); err != nil {
		return nil, fmt.Errorf("schema: invalid options: %w", err)
	}

	e := New()
	if cfg.logger != nil {
		e.Logger = cfg.logger
	}
	if cfg.selfCheck != nil {
		e.SelfCheck = *cfg.selfCheck
	}
	switch {
	case cfg.pickSecond != nil:
		e.PickSecond = cfg.pickSecond
	case cfg.seed != nil:
		e.PickSecond = seededPicker(*cfg.seed)
	}
	return e, nil
}

// WithLogger sets the logger. A nil logger is an error.
func WithLogger(l Logger) Option {
	return func(cfg *engineConfig) error {
		if l == nil {
			return &ioerrors.ConfigError{Option: "WithLogger", Message: "logger must not be nil"}
		}
		cfg.logger = l
		return nil
	}
}

// WithSelfCheck enables or disables validation after each upgrade step.
// Default: DefaultSelfCheck()
func WithSelfCheck(enabled bool) Option {
	return func(cfg *engineConfig) error {
		cfg.selfCheck = &enabled
		return nil
	}
}

// WithPickSecond sets the default dedup conflict policy.
// Mutually exclusive with WithSeed.
func WithPickSecond(pick func() bool) Option {
	return func(cfg *engineConfig) error {
		if pick == nil {
			return &ioerrors.ConfigError{Option: "WithPickSecond", Message: "policy must not be nil"}
		}
		cfg.pickSecond = pick
		return nil
	}
}

// WithSeed makes the default dedup conflict policy a pseudo-random choice
// from a source seeded with seed, so runs are reproducible.
// Mutually exclusive with WithPickSecond.
func WithSeed(seed uint64) Option {
	return func(cfg *engineConfig) error {
		cfg.seed = &seed
		return nil
	}
}

func seededPicker(seed uint64) func() bool {
	var mu sync.Mutex
	r := rand.New(rand.NewPCG(seed, seed))
	return func() bool {
		mu.Lock()
		defer mu.Unlock()
		return r.IntN(2) == 1
	}
}
