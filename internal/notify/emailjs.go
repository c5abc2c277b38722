// Package notify sends best-effort email notifications through EmailJS.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/Zubair-hussain/xovato-tech/internal/domain"
	"github.com/Zubair-hussain/xovato-tech/pkg/httpclient"
)

// DefaultEndpoint is the EmailJS REST send endpoint. The form variant at
// DefaultEndpoint + "-form" is used as a one-shot fallback when the JSON
// endpoint rejects a send.
const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJSConfig holds the EmailJS account values. Sending is skipped entirely
// unless every field is set.
type EmailJSConfig struct {
	ServiceID   string
	TemplateID  string
	PublicKey   string
	NotifyEmail string

	// Endpoint overrides the EmailJS API URL, used in tests.
	Endpoint string
}

// Configured reports whether all account values are present.
func (c EmailJSConfig) Configured() bool {
	return c.ServiceID != "" && c.TemplateID != "" && c.PublicKey != "" && c.NotifyEmail != ""
}

// EmailJSSender delivers notifications through the EmailJS REST API. Delivery
// is best effort: callers log failures and move on, a lost email never fails
// the operation that triggered it.
type EmailJSSender struct {
	cfg    EmailJSConfig
	client *httpclient.Client
	logger *slog.Logger
}

// NewEmailJSSender creates a sender. The client should be configured without
// transport retries; the form-endpoint fallback is the only retry this
// channel performs.
func NewEmailJSSender(cfg EmailJSConfig, client *httpclient.Client, logger *slog.Logger) *EmailJSSender {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return &EmailJSSender{cfg: cfg, client: client, logger: logger}
}

// sendRequest is the EmailJS REST payload.
type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams map[string]any `json:"template_params"`
}

// NotifyReviewSubmitted emails the moderation inbox about a new submission.
func (s *EmailJSSender) NotifyReviewSubmitted(ctx context.Context, review *domain.Review) error {
	if !s.cfg.Configured() {
		s.logger.DebugContext(ctx, "emailjs not configured, skipping review notification")
		return nil
	}

	displayName := review.DisplayName
	if displayName == "" {
		displayName = "Anonymous"
	}
	title := review.Title
	if title == "" {
		title = "(no title)"
	}

	params := map[string]any{
		"to_email":       s.cfg.NotifyEmail,
		"display_name":   displayName,
		"reviewer_email": review.ReviewerEmail,
		"title":          title,
		"comment":        review.Comment,
		"rating":         strconv.Itoa(review.Rating),
		"country_code":   review.CountryCode,
		"category":       review.Category,
	}

	if err := s.send(ctx, params); err != nil {
		return fmt.Errorf("notify review submitted: %w", err)
	}

	s.logger.InfoContext(ctx, "review notification sent",
		slog.String("review_id", review.ID),
		slog.String("to", s.cfg.NotifyEmail),
	)
	return nil
}

// SendLoginLink emails a single-use moderator login link.
func (s *EmailJSSender) SendLoginLink(ctx context.Context, email, link string) error {
	if !s.cfg.Configured() {
		s.logger.DebugContext(ctx, "emailjs not configured, skipping login link")
		return nil
	}

	params := map[string]any{
		"to_email":   email,
		"login_link": link,
	}

	if err := s.send(ctx, params); err != nil {
		return fmt.Errorf("send login link: %w", err)
	}

	s.logger.InfoContext(ctx, "login link sent", slog.String("to", email))
	return nil
}

// send posts the JSON payload first and falls back to the form endpoint once
// if that is rejected. Both attempts failing is reported as a single error.
func (s *EmailJSSender) send(ctx context.Context, params map[string]any) error {
	jsonErr := s.sendJSON(ctx, params)
	if jsonErr == nil {
		return nil
	}

	s.logger.WarnContext(ctx, "emailjs json send failed, trying form endpoint",
		slog.String("error", jsonErr.Error()),
	)

	if formErr := s.sendForm(ctx, params); formErr != nil {
		return errors.Join(jsonErr, fmt.Errorf("form fallback: %w", formErr))
	}
	return nil
}

func (s *EmailJSSender) sendJSON(ctx context.Context, params map[string]any) error {
	payload := sendRequest{
		ServiceID:      s.cfg.ServiceID,
		TemplateID:     s.cfg.TemplateID,
		UserID:         s.cfg.PublicKey,
		TemplateParams: params,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal emailjs payload: %w", err)
	}

	resp, err := s.client.Post(ctx, s.cfg.Endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post to emailjs: %w", err)
	}
	defer resp.Body.Close()

	if !httpclient.IsSuccess(resp.StatusCode) {
		return httpclient.ReadResponseError(resp)
	}
	return nil
}

func (s *EmailJSSender) sendForm(ctx context.Context, params map[string]any) error {
	form := url.Values{}
	form.Set("service_id", s.cfg.ServiceID)
	form.Set("template_id", s.cfg.TemplateID)
	form.Set("user_id", s.cfg.PublicKey)
	for k, v := range params {
		form.Set(k, fmt.Sprint(v))
	}

	resp, err := s.client.Post(ctx, s.cfg.Endpoint+"-form", "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("post to emailjs form endpoint: %w", err)
	}
	defer resp.Body.Close()

	if !httpclient.IsSuccess(resp.StatusCode) {
		return httpclient.ReadResponseError(resp)
	}
	return nil
}
