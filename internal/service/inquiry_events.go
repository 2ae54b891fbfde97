package service

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// InquiryEvents publishes submission outcomes to interested observers, such
// as back-office tooling watching for failed acknowledgements. Publishing is
// best effort and never influences the submission outcome. A nil publisher
// (no broker configured) is a no-op.
type InquiryEvents struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
}

type inquiryEvent struct {
	ReferenceID string    `json:"reference_id"`
	Status      string    `json:"status"`
	FailedStage string    `json:"failed_stage,omitempty"`
	Email       string    `json:"email"`
	Product     string    `json:"product,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewInquiryEvents constructs an outcome publisher on the given subject.
func NewInquiryEvents(conn *nats.Conn, subject string, logger zerolog.Logger) *InquiryEvents {
	return &InquiryEvents{
		conn:    conn,
		subject: subject,
		logger:  logger.With().Str("component", "inquiry_events").Logger(),
	}
}

func (e *InquiryEvents) publish(event inquiryEvent) {
	if e == nil || e.conn == nil || e.subject == "" {
		return
	}

	event.OccurredAt = time.Now().UTC()

	payload, err := json.Marshal(event)
	if err != nil {
		e.logger.Warn().Err(err).Msg("failed to encode inquiry event")
		return
	}

	if err := e.conn.Publish(e.subject, payload); err != nil {
		e.logger.Warn().Err(err).Str("reference_id", event.ReferenceID).Msg("failed to publish inquiry event")
	}
}

// Submitted signals a fully delivered submission.
func (e *InquiryEvents) Submitted(referenceID, maskedEmail, product string) {
	e.publish(inquiryEvent{ReferenceID: referenceID, Status: "submitted", Email: maskedEmail, Product: product})
}

// Failed signals a submission that ended in the error state. The failed stage
// is carried for diagnostics even though the visitor only sees a generic
// failure.
func (e *InquiryEvents) Failed(referenceID, maskedEmail, stage string) {
	e.publish(inquiryEvent{ReferenceID: referenceID, Status: "error", Email: maskedEmail, FailedStage: stage})
}
