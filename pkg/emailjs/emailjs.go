package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const sendPath = "/api/v1.0/email/send"

// Config contains credentials required to talk to EmailJS.
type Config struct {
	BaseURL   string
	ServiceID string
	PublicKey string
	Timeout   time.Duration
}

// Client sends templated emails through the EmailJS REST API. The provider
// offers no retry or queuing; one call is one delivery attempt.
type Client struct {
	httpClient *http.Client
	baseURL    string
	serviceID  string
	publicKey  string
	logger     zerolog.Logger
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// New constructs an EmailJS client instance.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.ServiceID == "" || cfg.PublicKey == "" {
		return nil, fmt.Errorf("emailjs credentials must be provided")
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.emailjs.com"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		serviceID:  cfg.ServiceID,
		publicKey:  cfg.PublicKey,
		logger:     logger.With().Str("component", "emailjs").Logger(),
	}, nil
}

// Send dispatches one templated email. Any transport failure or non-200
// provider response counts as a failed dispatch.
func (c *Client) Send(ctx context.Context, templateID string, params map[string]string) error {
	if templateID == "" {
		return fmt.Errorf("emailjs template id must be provided")
	}

	payload := sendRequest{
		ServiceID:      c.serviceID,
		TemplateID:     templateID,
		UserID:         c.publicKey,
		TemplateParams: params,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode emailjs payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build emailjs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("template_id", templateID).
			Msg("emailjs rejected dispatch")
		return fmt.Errorf("emailjs rejected dispatch: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	c.logger.Debug().Str("template_id", templateID).Msg("emailjs dispatch accepted")

	return nil
}
