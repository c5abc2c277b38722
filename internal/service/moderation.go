package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/Zubair-hussain/xovato-tech/internal/domain"
	"github.com/Zubair-hussain/xovato-tech/internal/event"
	"github.com/Zubair-hussain/xovato-tech/internal/repository"
	apperrors "github.com/Zubair-hussain/xovato-tech/pkg/errors"
)

// topCountriesLimit caps the per-country breakdown in queue metrics.
const topCountriesLimit = 6

// ModerationService implements the moderator queue operations.
type ModerationService struct {
	repo     repository.ReviewRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewModerationService creates a new moderation service.
func NewModerationService(repo repository.ReviewRepository, producer *event.Producer, logger *slog.Logger) *ModerationService {
	return &ModerationService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// ListPending returns the moderation queue, newest first.
func (s *ModerationService) ListPending(ctx context.Context) ([]domain.Review, error) {
	return s.repo.SelectPending(ctx)
}

// SetStatus moves a pending review to approved, hidden, or removed. Any
// other target status, including pending itself, is rejected before touching
// the store.
func (s *ModerationService) SetStatus(ctx context.Context, id string, status domain.Status, moderatorEmail string) error {
	if !domain.CanTransition(domain.StatusPending, status) {
		return apperrors.InvalidInput("status must be approved, hidden, or removed")
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "review moderated",
		slog.String("review_id", id),
		slog.String("status", string(status)),
		slog.String("moderator", moderatorEmail),
	)

	// Publish status change event (non-blocking on failure).
	moderated := &domain.Review{ID: id, Status: status}
	if err := s.producer.PublishReviewStatusChanged(ctx, moderated, moderatorEmail); err != nil {
		s.logger.WarnContext(ctx, "failed to publish review.status_changed event",
			slog.String("review_id", id),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

// CountryCount is one row of the per-country queue breakdown.
type CountryCount struct {
	CountryCode string `json:"country_code"`
	Count       int    `json:"count"`
}

// QueueMetrics summarizes the moderation queue.
type QueueMetrics struct {
	PendingCount int            `json:"pending_count"`
	TopCountries []CountryCount `json:"top_countries"`
}

// Metrics returns the pending count and the six countries with the most
// queued reviews. Ties break alphabetically so the breakdown is stable
// between refreshes.
func (s *ModerationService) Metrics(ctx context.Context) (*QueueMetrics, error) {
	pending, err := s.repo.SelectPending(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, rv := range pending {
		counts[rv.CountryCode]++
	}

	top := make([]CountryCount, 0, len(counts))
	for cc, n := range counts {
		top = append(top, CountryCount{CountryCode: cc, Count: n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].CountryCode < top[j].CountryCode
	})
	if len(top) > topCountriesLimit {
		top = top[:topCountriesLimit]
	}

	return &QueueMetrics{
		PendingCount: len(pending),
		TopCountries: top,
	}, nil
}
