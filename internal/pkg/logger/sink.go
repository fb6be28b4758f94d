package logger

import (
	"context"
	"log/slog"

	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/exception"
)

// ErrorSink is the single place operational errors are reported. Detection
// (sources, gateway) never prints; it returns errors that end up here.
type ErrorSink struct {
	logger   *slog.Logger
	onReport func(kind exception.Kind)
}

// NewErrorSink builds a sink. onReport may be nil.
func NewErrorSink(logger *slog.Logger, onReport func(kind exception.Kind)) *ErrorSink {
	if logger == nil {
		logger = slog.Default()
	}

	return &ErrorSink{logger: logger, onReport: onReport}
}

// Report logs err with its kind. Per-tuple failures are warnings, the rest
// are errors.
func (s *ErrorSink) Report(ctx context.Context, err error) {
	if err == nil {
		return
	}

	kind := exception.KindOf(err)
	level := slog.LevelError

	switch kind {
	case exception.KindExtraction, exception.KindTransport, exception.KindUnsupported:
		level = slog.LevelWarn
	}

	s.logger.Log(ctx, level, "operation failed",
		slog.String("kind", string(kind)),
		slog.String("error", err.Error()))

	if s.onReport != nil {
		s.onReport(kind)
	}
}
