package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"truthlens/internal/detection"
	"truthlens/internal/domain/models"
	"truthlens/internal/metrics"
	"truthlens/pkg/logger"
)

// Feedback and report limits
const (
	MaxCommentLength       = 500
	MinReportContentLength = 10
	MaxReportContentLength = 5000
)

// FeedbackStore persists feedback and content reports
type FeedbackStore interface {
	SaveFeedback(ctx context.Context, f *models.Feedback) error
	SaveReport(ctx context.Context, r *models.ContentReport) error
	ListFeedback(ctx context.Context, limit int) ([]*models.Feedback, error)
	Stats(ctx context.Context) (*models.FeedbackStats, error)
}

// FeedbackService records user feedback and content reports. Nothing it
// stores is read back by the engine.
type FeedbackService struct {
	store     FeedbackStore
	publisher EventPublisher
	logger    *logger.Logger
}

// NewFeedbackService creates a new feedback service. store and publisher may be nil;
// without a store submissions are acknowledged and published only.
func NewFeedbackService(store FeedbackStore, publisher EventPublisher, log *logger.Logger) *FeedbackService {
	return &FeedbackService{
		store:     store,
		publisher: publisher,
		logger:    log.WithComponent("feedback-service"),
	}
}

// SubmitFeedback validates and stores feedback on a verdict
func (s *FeedbackService) SubmitFeedback(ctx context.Context, req models.FeedbackRequest) (*models.Feedback, error) {
	hash := strings.TrimSpace(req.ContentHash)
	if hash == "" {
		return nil, fmt.Errorf("%w: content_hash is required", detection.ErrInvalidInput)
	}
	if req.UserRating < 1 || req.UserRating > 5 {
		return nil, fmt.Errorf("%w: user_rating must be between 1 and 5", detection.ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.Comments) > MaxCommentLength {
		return nil, fmt.Errorf("%w: comments exceed %d characters", detection.ErrInvalidInput, MaxCommentLength)
	}

	fb := &models.Feedback{
		ID:          uuid.New(),
		ContentHash: hash,
		WasAccurate: req.WasAccurate,
		UserRating:  req.UserRating,
		Comments:    strings.TrimSpace(req.Comments),
		CreatedAt:   time.Now().UTC(),
	}

	if s.store != nil {
		if err := s.store.SaveFeedback(ctx, fb); err != nil {
			metrics.RecordError("save_failed", "feedback")
			return nil, err
		}
	}

	metrics.RecordFeedback(fb.WasAccurate)
	s.logger.Info().
		Str("feedback_id", fb.ID.String()).
		Str("content_hash", fb.ContentHash).
		Bool("was_accurate", fb.WasAccurate).
		Int("rating", fb.UserRating).
		Msg("feedback recorded")

	if s.publisher != nil {
		if err := s.publisher.PublishFeedback(ctx, fb); err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish feedback event")
		}
	}

	return fb, nil
}

// ReportContent stores a report of misjudged content. Only the content hash is kept.
func (s *FeedbackService) ReportContent(ctx context.Context, req models.ReportContentRequest) (*models.ContentReport, error) {
	n := utf8.RuneCountInString(strings.TrimSpace(req.Content))
	if n < MinReportContentLength || n > MaxReportContentLength {
		return nil, fmt.Errorf("%w: content must be %d-%d characters",
			detection.ErrInvalidInput, MinReportContentLength, MaxReportContentLength)
	}
	category := strings.ToLower(strings.TrimSpace(req.Category))
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", detection.ErrInvalidInput)
	}

	report := &models.ContentReport{
		ID:          uuid.New(),
		ContentHash: detection.ContentHash(req.Content),
		Category:    category,
		Source:      strings.TrimSpace(req.Source),
		Evidence:    strings.TrimSpace(req.Evidence),
		CreatedAt:   time.Now().UTC(),
	}

	if s.store != nil {
		if err := s.store.SaveReport(ctx, report); err != nil {
			metrics.RecordError("save_failed", "report")
			return nil, err
		}
	}

	metrics.RecordReport(report.Category)
	s.logger.Info().
		Str("report_id", report.ID.String()).
		Str("content_hash", report.ContentHash).
		Str("category", report.Category).
		Msg("content report recorded")

	if s.publisher != nil {
		if err := s.publisher.PublishReport(ctx, report); err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish report event")
		}
	}

	return report, nil
}

// Stats summarizes stored feedback. Without a store it returns zero counts.
func (s *FeedbackService) Stats(ctx context.Context) (*models.FeedbackStats, error) {
	if s.store == nil {
		return &models.FeedbackStats{}, nil
	}
	return s.store.Stats(ctx)
}

// Recent returns the latest feedback entries
func (s *FeedbackService) Recent(ctx context.Context, limit int) ([]*models.Feedback, error) {
	if s.store == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.ListFeedback(ctx, limit)
}
