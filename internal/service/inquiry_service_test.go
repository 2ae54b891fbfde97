package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/growora/site-api/internal/dto"
	"github.com/growora/site-api/internal/form"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func testTemplates() Templates {
	return Templates{Notification: "template_notify", Acknowledgement: "template_ack"}
}

// recordingDispatcher captures every dispatch in call order and can be told
// to fail specific templates.
type recordingDispatcher struct {
	mu       sync.Mutex
	calls    []string
	payloads map[string]map[string]string
	failOn   map[string]error
}

func newRecordingDispatcher() *recordingDispatcher {
	return &recordingDispatcher{payloads: make(map[string]map[string]string), failOn: make(map[string]error)}
}

func (d *recordingDispatcher) Send(_ context.Context, templateID string, params map[string]string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, templateID)
	d.payloads[templateID] = params
	if err := d.failOn[templateID]; err != nil {
		return err
	}
	return nil
}

func validRequest() dto.InquiryRequest {
	return dto.InquiryRequest{
		Name:    "Jane Doe",
		Email:   "jane@acme.com",
		Product: "rice",
	}
}

func newTestService(dispatcher Dispatcher, idem *IdempotencyGuard) InquiryService {
	return NewInquiryService(
		dispatcher,
		testTemplates(),
		testComposer(),
		validator.New(validator.WithRequiredStructEnabled()),
		idem,
		nil,
		testLogger(),
	)
}

func TestSubmitSuccessDispatchesBothInOrder(t *testing.T) {
	dispatcher := newRecordingDispatcher()
	svc := newTestService(dispatcher, nil)

	resp, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	require.Equal(t, "sent", resp.Status)
	require.NotEmpty(t, resp.ReferenceID)

	require.Equal(t, []string{"template_notify", "template_ack"}, dispatcher.calls)
	require.Equal(t, form.StatusSubmitted, svc.Status())
	require.True(t, svc.Form().IsEmpty(), "store must be reset after a successful sequence")
}

func TestSubmitNotificationPayloadUsesPlaceholders(t *testing.T) {
	dispatcher := newRecordingDispatcher()
	svc := newTestService(dispatcher, nil)

	req := dto.InquiryRequest{Name: "Jane Doe", Email: "jane@acme.com", Product: "rice"}
	_, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, map[string]string{
		"from_name":  "Jane Doe",
		"from_email": "jane@acme.com",
		"company":    "Not provided",
		"product":    "rice",
		"quantity":   "Not specified",
		"message":    "No message",
		"to_email":   "info@groworaindia.com",
	}, dispatcher.payloads["template_notify"])

	require.Equal(t, map[string]string{
		"to_name":   "Jane Doe",
		"to_email":  "jane@acme.com",
		"from_name": "GROWORA Team",
	}, dispatcher.payloads["template_ack"])
}

func TestSubmitNotificationFailureSkipsAcknowledgement(t *testing.T) {
	dispatcher := newRecordingDispatcher()
	dispatcher.failOn["template_notify"] = errors.New("provider unreachable")
	svc := newTestService(dispatcher, nil)

	req := dto.InquiryRequest{Name: "Jane Doe", Email: "jane@acme.com", Quantity: "100 MT"}
	_, err := svc.Submit(context.Background(), req)
	require.ErrorIs(t, err, ErrDispatchFailed)

	require.Equal(t, []string{"template_notify"}, dispatcher.calls,
		"acknowledgement must never be attempted before the notification succeeds")
	require.Equal(t, form.StatusError, svc.Status())

	// Form state survives the failed attempt so nothing has to be retyped.
	kept := svc.Form()
	require.Equal(t, "Jane Doe", kept.Name)
	require.Equal(t, "jane@acme.com", kept.Email)
	require.Equal(t, "100 MT", kept.Quantity)
}

func TestSubmitAcknowledgementFailureStillReportsError(t *testing.T) {
	dispatcher := newRecordingDispatcher()
	dispatcher.failOn["template_ack"] = errors.New("template rejected")
	svc := newTestService(dispatcher, nil)

	_, err := svc.Submit(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrDispatchFailed)

	// The business was already notified, yet the visitor sees the same
	// generic failure and the form is preserved.
	require.Equal(t, []string{"template_notify", "template_ack"}, dispatcher.calls)
	require.Equal(t, form.StatusError, svc.Status())
	require.Equal(t, "Jane Doe", svc.Form().Name)
}

func TestSubmitHoneypotRejected(t *testing.T) {
	dispatcher := newRecordingDispatcher()
	svc := newTestService(dispatcher, nil)

	req := validRequest()
	req.Honeypot = "bot"
	_, err := svc.Submit(context.Background(), req)
	require.ErrorIs(t, err, ErrInquirySpam)
	require.Empty(t, dispatcher.calls)
}

func TestSubmitValidationFailureSkipsDispatch(t *testing.T) {
	dispatcher := newRecordingDispatcher()
	svc := newTestService(dispatcher, nil)

	cases := []dto.InquiryRequest{
		{Email: "jane@acme.com"},
		{Name: "Jane Doe", Email: "not-an-email"},
		{Name: "Jane Doe", Email: "jane@acme.com", Product: "diamonds"},
	}

	for _, req := range cases {
		_, err := svc.Submit(context.Background(), req)
		var validationErrors validator.ValidationErrors
		require.ErrorAs(t, err, &validationErrors)
	}

	require.Empty(t, dispatcher.calls)
}

// blockingDispatcher holds the first dispatch open until released so an
// overlapping submit can be attempted.
type blockingDispatcher struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (d *blockingDispatcher) Send(_ context.Context, _ string, _ map[string]string) error {
	d.once.Do(func() {
		close(d.entered)
		<-d.release
	})
	return nil
}

func TestSubmitRejectsOverlappingInvocation(t *testing.T) {
	dispatcher := &blockingDispatcher{entered: make(chan struct{}), release: make(chan struct{})}
	svc := newTestService(dispatcher, nil)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), validRequest())
		done <- err
	}()

	select {
	case <-dispatcher.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first submission never reached the dispatcher")
	}

	_, err := svc.Submit(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSubmissionInFlight)

	close(dispatcher.release)
	require.NoError(t, <-done)
}

func TestSubmitConsecutiveSuccessesDoNotLeakState(t *testing.T) {
	dispatcher := newRecordingDispatcher()
	svc := newTestService(dispatcher, nil)

	first := dto.InquiryRequest{Name: "Jane Doe", Email: "jane@acme.com", Company: "Acme Imports"}
	_, err := svc.Submit(context.Background(), first)
	require.NoError(t, err)
	require.True(t, svc.Form().IsEmpty())

	second := dto.InquiryRequest{Name: "John Roe", Email: "john@other.com"}
	_, err = svc.Submit(context.Background(), second)
	require.NoError(t, err)

	// The second notification must not carry anything from the first.
	require.Equal(t, "John Roe", dispatcher.payloads["template_notify"]["from_name"])
	require.Equal(t, "Not provided", dispatcher.payloads["template_notify"]["company"])
}

func TestSubmitSanitizesMarkupInFreeText(t *testing.T) {
	dispatcher := newRecordingDispatcher()
	svc := newTestService(dispatcher, nil)

	req := validRequest()
	req.Message = "<script>alert(1)</script>Need 500 MT"
	_, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, "Need 500 MT", dispatcher.payloads["template_notify"]["message"])
}

func TestSubmitIdempotencySkipsDeliveredStageOnRetry(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer redisClient.Close()

	idem := NewIdempotencyGuard(redisClient, time.Hour, testLogger())

	dispatcher := newRecordingDispatcher()
	dispatcher.failOn["template_ack"] = errors.New("temporary outage")
	svc := newTestService(dispatcher, idem)

	req := validRequest()
	_, err = svc.Submit(context.Background(), req)
	require.ErrorIs(t, err, ErrDispatchFailed)
	require.Equal(t, []string{"template_notify", "template_ack"}, dispatcher.calls)

	// Retry with identical content: the notification stage was recorded as
	// delivered, so only the acknowledgement is re-sent.
	delete(dispatcher.failOn, "template_ack")
	dispatcher.calls = nil

	resp, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "sent", resp.Status)
	require.Equal(t, []string{"template_ack"}, dispatcher.calls)
}

func TestSubmitWithoutGuardDuplicatesNotificationOnRetry(t *testing.T) {
	dispatcher := newRecordingDispatcher()
	dispatcher.failOn["template_ack"] = errors.New("temporary outage")
	svc := newTestService(dispatcher, nil)

	req := validRequest()
	_, err := svc.Submit(context.Background(), req)
	require.ErrorIs(t, err, ErrDispatchFailed)

	delete(dispatcher.failOn, "template_ack")
	dispatcher.calls = nil

	_, err = svc.Submit(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, []string{"template_notify", "template_ack"}, dispatcher.calls)
}
