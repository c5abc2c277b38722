// Package event publishes review domain events to Kafka.
package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Zubair-hussain/xovato-tech/internal/domain"
	pkgkafka "github.com/Zubair-hussain/xovato-tech/pkg/kafka"
)

// Kafka topic constants for review domain events.
const (
	TopicReviewSubmitted     = "showcase.review.submitted"
	TopicReviewStatusChanged = "showcase.review.status_changed"
)

// Aggregate type constant.
const AggregateTypeReview = "review"

// Source identifier for events originating from the review service.
const SourceReviewService = "review-service"

// ReviewSubmittedData is the payload for a review.submitted event. The
// reviewer's email stays out of the payload; downstream consumers only need
// the public row.
type ReviewSubmittedData struct {
	ID          string `json:"id"`
	CountryCode string `json:"country_code"`
	Category    string `json:"category"`
	Rating      int    `json:"rating"`
	Title       string `json:"title"`
	DisplayName string `json:"display_name"`
}

// ReviewStatusChangedData is the payload for a review.status_changed event.
type ReviewStatusChangedData struct {
	ID             string `json:"id"`
	CountryCode    string `json:"country_code"`
	Status         string `json:"status"`
	ModeratorEmail string `json:"moderator_email"`
}

// Producer publishes review domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the review service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishReviewSubmitted publishes a review.submitted event.
func (p *Producer) PublishReviewSubmitted(ctx context.Context, review *domain.Review) error {
	data := ReviewSubmittedData{
		ID:          review.ID,
		CountryCode: review.CountryCode,
		Category:    review.Category,
		Rating:      review.Rating,
		Title:       review.Title,
		DisplayName: review.DisplayName,
	}

	event, err := pkgkafka.NewEvent(TopicReviewSubmitted, review.ID, AggregateTypeReview, SourceReviewService, data)
	if err != nil {
		return fmt.Errorf("create review.submitted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewSubmitted, event); err != nil {
		return fmt.Errorf("publish review.submitted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.submitted event",
		slog.String("review_id", review.ID),
		slog.String("country_code", review.CountryCode),
	)

	return nil
}

// PublishReviewStatusChanged publishes a review.status_changed event.
func (p *Producer) PublishReviewStatusChanged(ctx context.Context, review *domain.Review, moderatorEmail string) error {
	data := ReviewStatusChangedData{
		ID:             review.ID,
		CountryCode:    review.CountryCode,
		Status:         string(review.Status),
		ModeratorEmail: moderatorEmail,
	}

	event, err := pkgkafka.NewEvent(TopicReviewStatusChanged, review.ID, AggregateTypeReview, SourceReviewService, data)
	if err != nil {
		return fmt.Errorf("create review.status_changed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewStatusChanged, event); err != nil {
		return fmt.Errorf("publish review.status_changed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.status_changed event",
		slog.String("review_id", review.ID),
		slog.String("status", string(review.Status)),
	)

	return nil
}
