package commands

import (
	"flag"
	"io"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/erraggy/reportio/schema"
)

// EngineFlags holds the flags shared by every command that runs the engine.
type EngineFlags struct {
	SelfCheck bool
	Verbose   bool
	LogJSON   bool
	Seed      seedValue
}

// register binds the flags to fs. Seed is only offered by commands that
// deduplicate.
func (f *EngineFlags) register(fs *flag.FlagSet, withSeed bool) {
	fs.BoolVar(&f.SelfCheck, "self-check", schema.DefaultSelfCheck(), "validate the document after every upgrade step (default from "+schema.HeavyChecksEnv+")")
	fs.BoolVar(&f.Verbose, "verbose", false, "log engine decisions to stderr")
	fs.BoolVar(&f.LogJSON, "log-json", false, "log as JSON lines instead of text")
	if withSeed {
		fs.Var(&f.Seed, "seed", "seed for reproducible dedup conflict resolution")
	}
}

// NewEngine builds an engine from the flags. The returned function flushes
// the logger and must be called when the command is done.
func (f *EngineFlags) NewEngine() (*schema.Engine, func(), error) {
	logger, flush := newLogger(stderr, f.Verbose, f.LogJSON)
	opts := []schema.Option{
		schema.WithLogger(logger),
		schema.WithSelfCheck(f.SelfCheck),
	}
	if f.Seed.set {
		opts = append(opts, schema.WithSeed(f.Seed.value))
	}
	engine, err := schema.NewWithOptions(opts...)
	if err != nil {
		flush()
		return nil, nil, err
	}
	return engine, flush, nil
}

// newLogger returns a logger writing to w: warnings only, or everything
// down to debug when verbose is set.
func newLogger(w io.Writer, verbose, asJSON bool) (schema.Logger, func()) {
	if asJSON {
		level := zapcore.WarnLevel
		if verbose {
			level = zapcore.DebugLevel
		}
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(w),
			level,
		)
		logger := zap.New(core)
		return &zapAdapter{logger: logger}, func() { _ = logger.Sync() }
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return schema.NewSlogAdapter(slog.New(handler)), func() {}
}

// zapAdapter adapts a zap.Logger to schema.Logger.
type zapAdapter struct {
	logger *zap.Logger
}

func (a *zapAdapter) Debug(msg string, attrs ...any) {
	a.logger.Debug(msg, fieldsToZap(attrs)...)
}

func (a *zapAdapter) Info(msg string, attrs ...any) {
	a.logger.Info(msg, fieldsToZap(attrs)...)
}

func (a *zapAdapter) Warn(msg string, attrs ...any) {
	a.logger.Warn(msg, fieldsToZap(attrs)...)
}

func (a *zapAdapter) Error(msg string, attrs ...any) {
	a.logger.Error(msg, fieldsToZap(attrs)...)
}

func (a *zapAdapter) With(attrs ...any) schema.Logger {
	return &zapAdapter{logger: a.logger.With(fieldsToZap(attrs)...)}
}

var _ schema.Logger = (*zapAdapter)(nil)

// fieldsToZap converts alternating key-value pairs to zap fields. A
// trailing key without a value is dropped.
func fieldsToZap(attrs []any) []zap.Field {
	fields := make([]zap.Field, 0, len(attrs)/2)
	for i := 0; i+1 < len(attrs); i += 2 {
		key, ok := attrs[i].(string)
		if !ok {
			key = "!BADKEY"
		}
		fields = append(fields, zap.Any(key, attrs[i+1]))
	}
	return fields
}
