package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSink writes every event to the log
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink creates a LogSink
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Name implements Sink
func (s *LogSink) Name() string { return "log" }

// Deliver implements Sink
func (s *LogSink) Deliver(_ context.Context, e Event) error {
	s.logger.Info().
		Str("kind", string(e.Kind)).
		Int64("subjectID", e.SubjectID).
		Int64("messID", e.MessID).
		Interface("payload", e.Payload).
		Msg("Lifecycle event")
	return nil
}
