package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"truthlens/internal/domain/models"
)

// FeedbackRepository stores feedback and content reports in PostgreSQL
type FeedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(pool *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{pool: pool}
}

// SaveFeedback inserts a feedback record
func (r *FeedbackRepository) SaveFeedback(ctx context.Context, f *models.Feedback) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO feedback (id, content_hash, was_accurate, user_rating, comments, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		f.ID, f.ContentHash, f.WasAccurate, f.UserRating, textOrNull(f.Comments), timeToTimestamptz(f.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

// SaveReport inserts a content report
func (r *FeedbackRepository) SaveReport(ctx context.Context, rep *models.ContentReport) error {
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO content_reports (id, content_hash, category, source, evidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		rep.ID, rep.ContentHash, rep.Category, textOrNull(rep.Source), textOrNull(rep.Evidence),
		timeToTimestamptz(rep.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// ListFeedback returns the most recent feedback, newest first
func (r *FeedbackRepository) ListFeedback(ctx context.Context, limit int) ([]*models.Feedback, error) {
	query := `
		SELECT id, content_hash, was_accurate, user_rating, comments, created_at
		FROM feedback
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	var out []*models.Feedback
	for rows.Next() {
		var (
			f         models.Feedback
			comments  pgtype.Text
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&f.ID, &f.ContentHash, &f.WasAccurate, &f.UserRating, &comments, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		f.Comments = nullTextToString(comments)
		f.CreatedAt = timestamptzToTime(createdAt)
		out = append(out, &f)
	}

	return out, rows.Err()
}

// Stats aggregates feedback and report counts
func (r *FeedbackRepository) Stats(ctx context.Context) (*models.FeedbackStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM feedback),
			(SELECT COUNT(*) FROM feedback WHERE was_accurate),
			(SELECT COALESCE(AVG(user_rating), 0)::float8 FROM feedback),
			(SELECT COUNT(*) FROM content_reports)`

	var stats models.FeedbackStats
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalFeedback, &stats.AccurateCount, &stats.AverageRating, &stats.TotalReports,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback stats: %w", err)
	}
	return &stats, nil
}
