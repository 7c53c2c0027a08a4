package models

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackRequest is a user's opinion on a previous verdict
type FeedbackRequest struct {
	ContentHash string `json:"content_hash"`
	WasAccurate bool   `json:"was_accurate"`
	UserRating  int    `json:"user_rating"` // 1-5
	Comments    string `json:"comments,omitempty"`
}

// Feedback is a stored FeedbackRequest
type Feedback struct {
	ID          uuid.UUID `json:"id"`
	ContentHash string    `json:"content_hash"`
	WasAccurate bool      `json:"was_accurate"`
	UserRating  int       `json:"user_rating"`
	Comments    string    `json:"comments,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReportContentRequest flags content the engine missed or misjudged
type ReportContentRequest struct {
	Content  string `json:"content"`
	Category string `json:"category"`
	Source   string `json:"source,omitempty"`
	Evidence string `json:"evidence,omitempty"`
}

// ContentReport is a stored report. The content itself is never kept.
type ContentReport struct {
	ID          uuid.UUID `json:"id"`
	ContentHash string    `json:"content_hash"`
	Category    string    `json:"category"`
	Source      string    `json:"source,omitempty"`
	Evidence    string    `json:"evidence,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FeedbackStats summarizes stored feedback
type FeedbackStats struct {
	TotalFeedback int64   `json:"total_feedback"`
	AccurateCount int64   `json:"accurate_count"`
	AverageRating float64 `json:"average_rating"`
	TotalReports  int64   `json:"total_reports"`
}
