// Package repository defines data access interfaces for the review service.
package repository

import (
	"context"

	"github.com/Zubair-hussain/xovato-tech/internal/domain"
)

// ReviewRepository defines review persistence operations.
//
// Insert always stores the row as pending regardless of what the caller
// supplies; moderation is the only path that changes a status afterwards.
type ReviewRepository interface {
	// Insert stores a new review and returns the persisted row.
	Insert(ctx context.Context, draft *domain.ReviewDraft) (*domain.Review, error)

	// SelectApproved returns approved reviews, newest first, optionally
	// filtered by country code and category. A non-positive or oversized
	// limit is clamped. An empty result is a valid outcome, not an error.
	SelectApproved(ctx context.Context, country, category string, limit int) ([]domain.Review, error)

	// SelectPending returns all pending reviews, newest first.
	SelectPending(ctx context.Context) ([]domain.Review, error)

	// UpdateStatus moves a pending review to the given status. Rows that do
	// not exist or were already moderated yield ErrNotFound.
	UpdateStatus(ctx context.Context, id string, status domain.Status) error
}
