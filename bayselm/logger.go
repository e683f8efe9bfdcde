package bayselm

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with sampler-specific helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, a text handler to stderr at info level is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger writing JSON records to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger writing human-readable records to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// LogInitialize logs the initial state of a segmenter.
func (l *Logger) LogInitialize(ctx context.Context, sequences, atoms, vocabulary int) {
	l.InfoContext(ctx, "segmenter initialized",
		"sequences", sequences,
		"atoms", atoms,
		"vocabulary", vocabulary,
	)
}

// LogIteration logs the state after one sampling pass.
func (l *Logger) LogIteration(ctx context.Context, iteration int, dp *DP, splits, merges int) {
	l.DebugContext(ctx, "iteration completed",
		"iteration", iteration,
		"segments", dp.Total(),
		"types", dp.NumTypes(),
		"alpha", dp.Concentration(),
		"splits", splits,
		"merges", merges,
	)
}

// LogTrain logs the end of a training run.
func (l *Logger) LogTrain(ctx context.Context, iterations int, dp *DP, err error) {
	if err != nil {
		l.WarnContext(ctx, "training stopped",
			"iterations", iterations,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "training completed",
		"iterations", iterations,
		"segments", dp.Total(),
		"types", dp.NumTypes(),
	)
}
