package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"truthlens/internal/domain/models"
)

// SQLiteFeedbackRepository stores feedback and content reports in SQLite
type SQLiteFeedbackRepository struct {
	db *sql.DB
}

// NewSQLiteFeedbackRepository creates a new SQLite feedback repository
func NewSQLiteFeedbackRepository(db *sql.DB) *SQLiteFeedbackRepository {
	return &SQLiteFeedbackRepository{db: db}
}

// SaveFeedback inserts a feedback record
func (r *SQLiteFeedbackRepository) SaveFeedback(ctx context.Context, f *models.Feedback) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO feedback (id, content_hash, was_accurate, user_rating, comments, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		f.ID.String(), f.ContentHash, f.WasAccurate, f.UserRating, nullString(f.Comments), formatTime(f.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

// SaveReport inserts a content report
func (r *SQLiteFeedbackRepository) SaveReport(ctx context.Context, rep *models.ContentReport) error {
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO content_reports (id, content_hash, category, source, evidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		rep.ID.String(), rep.ContentHash, rep.Category, nullString(rep.Source), nullString(rep.Evidence),
		formatTime(rep.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// ListFeedback returns the most recent feedback, newest first
func (r *SQLiteFeedbackRepository) ListFeedback(ctx context.Context, limit int) ([]*models.Feedback, error) {
	query := `
		SELECT id, content_hash, was_accurate, user_rating, comments, created_at
		FROM feedback
		ORDER BY created_at DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	var out []*models.Feedback
	for rows.Next() {
		var (
			f         models.Feedback
			id        string
			comments  sql.NullString
			createdAt string
		)
		if err := rows.Scan(&id, &f.ContentHash, &f.WasAccurate, &f.UserRating, &comments, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		if f.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid feedback id %q: %w", id, err)
		}
		if f.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("invalid feedback timestamp %q: %w", createdAt, err)
		}
		f.Comments = comments.String
		out = append(out, &f)
	}

	return out, rows.Err()
}

// Stats aggregates feedback and report counts
func (r *SQLiteFeedbackRepository) Stats(ctx context.Context) (*models.FeedbackStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM feedback),
			(SELECT COUNT(*) FROM feedback WHERE was_accurate = 1),
			(SELECT COALESCE(AVG(user_rating), 0.0) FROM feedback),
			(SELECT COUNT(*) FROM content_reports)`

	var stats models.FeedbackStats
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalFeedback, &stats.AccurateCount, &stats.AverageRating, &stats.TotalReports,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback stats: %w", err)
	}
	return &stats, nil
}
