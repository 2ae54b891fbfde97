package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/growora/site-api/internal/dto"
	"github.com/growora/site-api/internal/form"
	"github.com/growora/site-api/internal/observability"
)

var (
	// ErrInquirySpam indicates the honeypot field was filled.
	ErrInquirySpam = errors.New("inquiry submission flagged as spam")
	// ErrSubmissionInFlight indicates an overlapping submit was rejected by
	// the single-permit guard.
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	// ErrDispatchFailed indicates the provider rejected or could not be
	// reached for either of the two dispatch calls. The two failure modes
	// are deliberately not distinguished for callers.
	ErrDispatchFailed = errors.New("inquiry dispatch failed")
)

// Dispatch stage names, also used as idempotency key components.
const (
	stageNotification    = "notification"
	stageAcknowledgement = "acknowledgement"
)

// InquiryService runs the inquiry submission workflow: it owns the form
// state store and submission status, composes both outgoing messages, and
// drives the strictly sequential two-stage dispatch.
type InquiryService interface {
	Submit(ctx context.Context, req dto.InquiryRequest) (dto.InquiryResponse, error)
	Status() form.Status
	Form() form.InquiryForm
}

// Templates carries the provider template identifiers for the two messages.
type Templates struct {
	Notification    string
	Acknowledgement string
}

type inquiryService struct {
	store      *form.Store
	composer   Composer
	dispatcher Dispatcher
	templates  Templates
	validator  *validator.Validate
	sanitizer  *bluemonday.Policy
	idem       *IdempotencyGuard
	events     *InquiryEvents
	logger     zerolog.Logger
	tracer     trace.Tracer

	// mu is the single permit around Submit; an overlapping call fails
	// with ErrSubmissionInFlight instead of interleaving dispatches.
	mu     sync.Mutex
	status form.Status
}

// NewInquiryService constructs the submission workflow service. The guard
// and events publisher may be nil, which disables the idempotency layer and
// outcome events respectively.
func NewInquiryService(dispatcher Dispatcher, templates Templates, composer Composer, validate *validator.Validate, idem *IdempotencyGuard, events *InquiryEvents, logger zerolog.Logger) InquiryService {
	return &inquiryService{
		store:      form.NewStore(),
		composer:   composer,
		dispatcher: dispatcher,
		templates:  templates,
		validator:  validate,
		sanitizer:  bluemonday.StrictPolicy(),
		idem:       idem,
		events:     events,
		logger:     logger.With().Str("component", "inquiry_service").Logger(),
		tracer:     otel.Tracer("github.com/growora/site-api/internal/service/inquiry"),
	}
}

// Status returns the current submission status. Observers only read it; the
// service is the sole writer.
func (s *inquiryService) Status() form.Status {
	return s.status
}

// Form returns a snapshot of the current form values. After a failed attempt
// the snapshot still holds what the visitor typed; after a successful one it
// is empty again.
func (s *inquiryService) Form() form.InquiryForm {
	return s.store.Get()
}

func (s *inquiryService) Submit(ctx context.Context, req dto.InquiryRequest) (dto.InquiryResponse, error) {
	ctx, span := s.tracer.Start(ctx, "inquiry.submit")
	defer span.End()

	if req.Honeypot != "" {
		span.SetStatus(codes.Error, "honeypot tripped")
		observability.InquirySubmissions().WithLabelValues("spam").Inc()
		return dto.InquiryResponse{}, ErrInquirySpam
	}

	if err := s.validator.Struct(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		observability.InquirySubmissions().WithLabelValues("invalid").Inc()
		return dto.InquiryResponse{}, err
	}

	if !s.mu.TryLock() {
		span.SetStatus(codes.Error, "submission in flight")
		observability.InquirySubmissions().WithLabelValues("rejected_in_flight").Inc()
		return dto.InquiryResponse{}, ErrSubmissionInFlight
	}
	defer s.mu.Unlock()

	s.replayFields(req)
	snapshot := s.store.Get()

	// Format checks belong to the boundary; the workflow only confirms it
	// actually has a name and an address to work with.
	if snapshot.Name == "" || snapshot.Email == "" {
		s.status = form.StatusError
		return dto.InquiryResponse{}, errors.New("inquiry form is missing name or email")
	}

	s.status = form.StatusSubmitting

	referenceID := uuid.New().String()
	checksum := formChecksum(snapshot.Name, snapshot.Email, snapshot.Company, snapshot.Product, snapshot.Quantity, snapshot.Message)
	masked := maskEmail(snapshot.Email)

	span.SetAttributes(
		attribute.String("inquiry.reference_id", referenceID),
		attribute.String("inquiry.checksum", checksum),
	)

	if err := s.dispatch(ctx, checksum, stageNotification, s.templates.Notification, s.composer.Notification(snapshot)); err != nil {
		return dto.InquiryResponse{}, s.fail(span, referenceID, masked, stageNotification, err)
	}

	// The acknowledgement is only attempted once the notification call has
	// returned successfully. The business-facing message is the primary
	// obligation; the two calls are never issued concurrently.
	if err := s.dispatch(ctx, checksum, stageAcknowledgement, s.templates.Acknowledgement, s.composer.Acknowledgement(snapshot)); err != nil {
		return dto.InquiryResponse{}, s.fail(span, referenceID, masked, stageAcknowledgement, err)
	}

	s.status = form.StatusSubmitted
	s.store.Reset()

	observability.InquirySubmissions().WithLabelValues("submitted").Inc()
	s.events.Submitted(referenceID, masked, snapshot.Product)
	s.logger.Info().Str("reference_id", referenceID).Str("email", masked).Msg("inquiry submitted")
	span.SetStatus(codes.Ok, "submitted")

	return dto.InquiryResponse{ReferenceID: referenceID, Status: "sent"}, nil
}

// replayFields applies the request onto the store field by field, the same
// sequence of mutations the field-change events would have produced.
// Free-text values are stripped of any markup first.
func (s *inquiryService) replayFields(req dto.InquiryRequest) {
	s.store.SetField(form.FieldName, s.sanitizer.Sanitize(req.Name))
	s.store.SetField(form.FieldEmail, req.Email)
	s.store.SetField(form.FieldCompany, s.sanitizer.Sanitize(req.Company))
	s.store.SetField(form.FieldProduct, req.Product)
	s.store.SetField(form.FieldQuantity, s.sanitizer.Sanitize(req.Quantity))
	s.store.SetField(form.FieldMessage, s.sanitizer.Sanitize(req.Message))
}

// dispatch sends one stage through the provider, honouring the idempotency
// layer when it is enabled: a stage already delivered for this checksum is
// skipped rather than duplicated.
func (s *inquiryService) dispatch(ctx context.Context, checksum, stage, templateID string, params map[string]string) error {
	if s.idem.Done(ctx, checksum, stage) {
		observability.InquiryDispatches().WithLabelValues(stage, "skipped").Inc()
		s.logger.Info().Str("stage", stage).Msg("stage already delivered, skipping dispatch")
		return nil
	}

	start := time.Now()
	err := s.dispatcher.Send(ctx, templateID, params)
	observability.InquiryDispatchLatency().WithLabelValues(stage).Observe(time.Since(start).Seconds())

	if err != nil {
		observability.InquiryDispatches().WithLabelValues(stage, "failed").Inc()
		return err
	}

	observability.InquiryDispatches().WithLabelValues(stage, "sent").Inc()
	s.idem.Mark(ctx, checksum, stage)
	return nil
}

// fail converts a stage failure into the error state. The form store is left
// untouched so the visitor need not retype anything; which stage failed is
// recorded for diagnostics but never surfaced to the caller.
func (s *inquiryService) fail(span trace.Span, referenceID, masked, stage string, cause error) error {
	s.status = form.StatusError

	span.RecordError(cause)
	span.SetStatus(codes.Error, "dispatch failed")
	observability.InquirySubmissions().WithLabelValues("error").Inc()

	s.logger.Warn().
		Err(cause).
		Str("reference_id", referenceID).
		Str("email", masked).
		Str("stage", stage).
		Msg("inquiry dispatch failed")
	s.events.Failed(referenceID, masked, stage)

	return ErrDispatchFailed
}
