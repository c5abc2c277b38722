package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/Zubair-hussain/xovato-tech/internal/auth"
	"github.com/Zubair-hussain/xovato-tech/internal/notify"
	apperrors "github.com/Zubair-hussain/xovato-tech/pkg/errors"
)

// GateService implements the moderator access gate. The flow is a login link:
// an allowlisted email requests entry, receives a single-use token by email,
// and exchanges it for a short-lived session. Requests for addresses outside
// the allowlist get the same response as successful ones, so the endpoint
// never confirms who is on the list.
type GateService struct {
	allowlist *auth.Allowlist
	tokens    auth.TokenStore
	sessions  *auth.SessionManager
	notifier  *notify.EmailJSSender
	baseURL   string
	tokenTTL  time.Duration
	logger    *slog.Logger
}

// NewGateService creates a new access gate service.
func NewGateService(
	allowlist *auth.Allowlist,
	tokens auth.TokenStore,
	sessions *auth.SessionManager,
	notifier *notify.EmailJSSender,
	baseURL string,
	tokenTTL time.Duration,
	logger *slog.Logger,
) *GateService {
	return &GateService{
		allowlist: allowlist,
		tokens:    tokens,
		sessions:  sessions,
		notifier:  notifier,
		baseURL:   strings.TrimRight(baseURL, "/"),
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// CheckAdmin reports whether the email is on the moderator allowlist.
func (s *GateService) CheckAdmin(email string) bool {
	return s.allowlist.Contains(email)
}

// RequestLogin issues a single-use login link for an allowlisted email. The
// caller gets a nil error for unknown addresses too; only the logs record
// the difference.
func (s *GateService) RequestLogin(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return apperrors.InvalidInput("please enter a valid email address")
	}

	if !s.allowlist.Contains(email) {
		s.logger.WarnContext(ctx, "login requested for non-allowlisted email",
			slog.String("email", email),
		)
		return nil
	}

	token, err := auth.NewLoginToken()
	if err != nil {
		return fmt.Errorf("request login: %w", err)
	}

	if err := s.tokens.Save(ctx, token, email, s.tokenTTL); err != nil {
		return fmt.Errorf("request login: %w", err)
	}

	link := fmt.Sprintf("%s/admin/login?token=%s", s.baseURL, url.QueryEscape(token))
	if err := s.notifier.SendLoginLink(ctx, email, link); err != nil {
		return fmt.Errorf("request login: %w", err)
	}

	s.logger.InfoContext(ctx, "login link issued", slog.String("email", email))
	return nil
}

// Exchange redeems a login token for a session token. The token is consumed
// even when the exchange fails afterwards; a link never works twice.
func (s *GateService) Exchange(ctx context.Context, token string) (string, string, error) {
	email, err := s.tokens.Redeem(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenInvalid) {
			return "", "", apperrors.Unauthorized("login link is invalid or has expired")
		}
		return "", "", fmt.Errorf("exchange login token: %w", err)
	}

	// The allowlist may have changed since the link was issued.
	if !s.allowlist.Contains(email) {
		s.logger.WarnContext(ctx, "login token redeemed by delisted email",
			slog.String("email", email),
		)
		return "", "", apperrors.Unauthorized("login link is invalid or has expired")
	}

	session, err := s.sessions.Generate(email)
	if err != nil {
		return "", "", fmt.Errorf("generate session: %w", err)
	}

	s.logger.InfoContext(ctx, "moderator session issued", slog.String("email", email))
	return session, email, nil
}

// ValidateSession checks a bearer session token and returns its claims.
func (s *GateService) ValidateSession(token string) (*auth.SessionClaims, error) {
	return s.sessions.Validate(token)
}
