// Package postgres provides PostgreSQL-backed repository implementations.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Zubair-hussain/xovato-tech/internal/domain"
	"github.com/Zubair-hussain/xovato-tech/pkg/database"
	apperrors "github.com/Zubair-hussain/xovato-tech/pkg/errors"
)

const (
	defaultListLimit = 20
	maxListLimit     = 50
)

// ReviewRepository implements review persistence using PostgreSQL. All writes
// go through the table's row-level security policies, so a policy rejection
// surfaces here as SQLSTATE 42501.
type ReviewRepository struct {
	pool   database.DBTX
	logger *slog.Logger
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX, logger *slog.Logger) *ReviewRepository {
	return &ReviewRepository{pool: pool, logger: logger}
}

// Insert stores a new review. The status is always forced to pending and the
// id and creation time are assigned here, never taken from the caller.
func (r *ReviewRepository) Insert(ctx context.Context, draft *domain.ReviewDraft) (*domain.Review, error) {
	review := &domain.Review{
		ID:            uuid.NewString(),
		CountryCode:   draft.CountryCode,
		Category:      draft.Category,
		Rating:        draft.Rating,
		Title:         draft.Title,
		Comment:       draft.Comment,
		Status:        domain.StatusPending,
		CreatedAt:     time.Now().UTC(),
		DisplayName:   draft.DisplayName,
		ReviewerEmail: draft.ReviewerEmail,
	}

	query := `
		INSERT INTO reviews (id, country_code, category, rating, title, comment, status, created_at, display_name, reviewer_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	ctx, end := database.TraceQuery(ctx, "InsertReview", query)
	_, err := r.pool.Exec(ctx, query,
		review.ID,
		review.CountryCode,
		review.Category,
		review.Rating,
		review.Title,
		review.Comment,
		string(review.Status),
		review.CreatedAt,
		review.DisplayName,
		review.ReviewerEmail,
	)
	end(err)
	if err != nil {
		if isPermissionDenied(err) {
			r.logPgDiagnostics(ctx, "review insert rejected by row security policy", err)
			return nil, apperrors.PermissionDenied("review insert")
		}
		if isCheckViolation(err) {
			return nil, apperrors.InvalidInput("review violates a table constraint")
		}
		return nil, fmt.Errorf("insert review: %w", err)
	}

	return review, nil
}

// SelectApproved returns approved reviews, newest first. Country and category
// filters are applied only when non-empty.
func (r *ReviewRepository) SelectApproved(ctx context.Context, country, category string, limit int) ([]domain.Review, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	query := `
		SELECT id, country_code, category, rating, title, comment, status, created_at, display_name, reviewer_email, image
		FROM reviews
		WHERE status = 'approved'`

	args := []any{}
	if country != "" {
		args = append(args, strings.ToUpper(strings.TrimSpace(country)))
		query += fmt.Sprintf(" AND country_code = $%d", len(args))
	}
	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	ctx, end := database.TraceQuery(ctx, "SelectApproved", query)
	rows, err := r.pool.Query(ctx, query, args...)
	end(err)
	if err != nil {
		return nil, fmt.Errorf("select approved reviews: %w", err)
	}
	defer rows.Close()

	return collectReviews(rows)
}

// SelectPending returns every pending review, newest first.
func (r *ReviewRepository) SelectPending(ctx context.Context) ([]domain.Review, error) {
	query := `
		SELECT id, country_code, category, rating, title, comment, status, created_at, display_name, reviewer_email, image
		FROM reviews
		WHERE status = 'pending'
		ORDER BY created_at DESC`

	ctx, end := database.TraceQuery(ctx, "SelectPending", query)
	rows, err := r.pool.Query(ctx, query)
	end(err)
	if err != nil {
		if isPermissionDenied(err) {
			r.logPgDiagnostics(ctx, "pending select rejected by row security policy", err)
			return nil, apperrors.PermissionDenied("pending review select")
		}
		return nil, fmt.Errorf("select pending reviews: %w", err)
	}
	defer rows.Close()

	return collectReviews(rows)
}

// UpdateStatus moves a pending review to the given status. The WHERE clause
// keeps moderated rows final; a zero row count means the review does not
// exist or was already moderated.
func (r *ReviewRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	query := `UPDATE reviews SET status = $1 WHERE id = $2 AND status = 'pending'`

	ctx, end := database.TraceQuery(ctx, "UpdateStatus", query)
	tag, err := r.pool.Exec(ctx, query, string(status), id)
	end(err)
	if err != nil {
		if isPermissionDenied(err) {
			r.logPgDiagnostics(ctx, "status update rejected by row security policy", err)
			return apperrors.PermissionDenied("review status update")
		}
		return fmt.Errorf("update review status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("pending review", id)
	}

	return nil
}

// collectReviews drains the row set. Callers always get a non-nil slice.
func collectReviews(rows pgx.Rows) ([]domain.Review, error) {
	reviews := []domain.Review{}

	for rows.Next() {
		var (
			rv     domain.Review
			status string
		)
		if err := rows.Scan(
			&rv.ID,
			&rv.CountryCode,
			&rv.Category,
			&rv.Rating,
			&rv.Title,
			&rv.Comment,
			&status,
			&rv.CreatedAt,
			&rv.DisplayName,
			&rv.ReviewerEmail,
			&rv.Image,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		rv.Status = domain.Status(status)
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

// logPgDiagnostics records the server-side detail of a policy rejection. The
// structured fields are only available when the driver surfaced a PgError.
func (r *ReviewRepository) logPgDiagnostics(ctx context.Context, msg string, err error) {
	if r.logger == nil {
		return
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		r.logger.WarnContext(ctx, msg,
			slog.String("pg_code", pgErr.Code),
			slog.String("pg_message", pgErr.Message),
			slog.String("pg_hint", pgErr.Hint),
		)
		return
	}
	r.logger.WarnContext(ctx, msg, slog.String("error", err.Error()))
}

func isPermissionDenied(err error) bool {
	return err != nil && strings.Contains(err.Error(), "42501")
}

func isCheckViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23514")
}
