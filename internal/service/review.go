// Package service implements the business logic for review submission,
// personalization, moderation, and the admin access gate.
package service

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Zubair-hussain/xovato-tech/internal/domain"
	"github.com/Zubair-hussain/xovato-tech/internal/event"
	"github.com/Zubair-hussain/xovato-tech/internal/notify"
	"github.com/Zubair-hussain/xovato-tech/internal/repository"
	apperrors "github.com/Zubair-hussain/xovato-tech/pkg/errors"
)

// emailPattern is the submission email shape check. Deliverability is not
// verified; the address only needs to look like one.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

// defaultCategory is used when a submission does not name one.
const defaultCategory = "general"

// ReviewService implements review submission and public listing.
type ReviewService struct {
	repo     repository.ReviewRepository
	producer *event.Producer
	notifier *notify.EmailJSSender
	logger   *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(
	repo repository.ReviewRepository,
	producer *event.Producer,
	notifier *notify.EmailJSSender,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		repo:     repo,
		producer: producer,
		notifier: notifier,
		logger:   logger,
	}
}

// SubmitReviewInput holds the parameters for a new review submission.
type SubmitReviewInput struct {
	CountryCode   string
	Category      string
	Rating        int
	Title         string
	Comment       string
	DisplayName   string
	ReviewerEmail string
}

// Submit validates and stores a new review. The row always lands as pending;
// the Kafka event and the notification email are best effort and never fail
// the submission.
func (s *ReviewService) Submit(ctx context.Context, in SubmitReviewInput) (*domain.Review, error) {
	title := strings.TrimSpace(in.Title)
	comment := strings.TrimSpace(in.Comment)
	name := strings.TrimSpace(in.DisplayName)
	email := strings.ToLower(strings.TrimSpace(in.ReviewerEmail))

	if title == "" || comment == "" || name == "" || email == "" {
		return nil, apperrors.InvalidInput("please fill in all fields, including email")
	}
	if !emailPattern.MatchString(email) {
		return nil, apperrors.InvalidInput("please enter a valid email address")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, apperrors.InvalidInput("rating must be between 1 and 5")
	}

	countryCode := strings.ToUpper(strings.TrimSpace(in.CountryCode))
	if countryCode == "" {
		return nil, apperrors.InvalidInput("country code is required")
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = defaultCategory
	}

	draft := &domain.ReviewDraft{
		CountryCode:   countryCode,
		Category:      category,
		Rating:        in.Rating,
		Title:         title,
		Comment:       comment,
		DisplayName:   name,
		ReviewerEmail: email,
	}

	review, err := s.repo.Insert(ctx, draft)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "review submitted",
		slog.String("review_id", review.ID),
		slog.String("country_code", review.CountryCode),
		slog.Int("rating", review.Rating),
	)

	// Publish submission event (non-blocking on failure).
	if err := s.producer.PublishReviewSubmitted(ctx, review); err != nil {
		s.logger.WarnContext(ctx, "failed to publish review.submitted event",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}

	// Notify the moderation inbox (non-blocking on failure).
	if err := s.notifier.NotifyReviewSubmitted(ctx, review); err != nil {
		s.logger.WarnContext(ctx, "failed to send review notification",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}

	return review, nil
}

// ListApproved returns approved reviews for the public wall.
func (s *ReviewService) ListApproved(ctx context.Context, country, category string, limit int) ([]domain.Review, error) {
	return s.repo.SelectApproved(ctx, country, category, limit)
}
