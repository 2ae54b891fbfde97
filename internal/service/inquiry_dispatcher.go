package service

import (
	"context"

	"github.com/rs/zerolog"
)

// Dispatcher issues one outbound call to the email dispatch provider. The
// provider offers no retry or queuing; a returned error means the message was
// not accepted.
type Dispatcher interface {
	Send(ctx context.Context, templateID string, params map[string]string) error
}

// LogDispatcher is a development stand-in that logs instead of sending. It is
// wired when EmailJS credentials are absent so the workflow stays exercisable
// locally.
type LogDispatcher struct {
	logger zerolog.Logger
}

// NewLogDispatcher constructs a logging dispatcher.
func NewLogDispatcher(logger zerolog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger.With().Str("component", "inquiry_dispatcher").Logger()}
}

// Send logs the dispatch and reports success.
func (d *LogDispatcher) Send(ctx context.Context, templateID string, params map[string]string) error {
	d.logger.Info().
		Str("template_id", templateID).
		Int("params", len(params)).
		Msg("inquiry dispatch logged instead of sent")
	return nil
}
