package streaming

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"truthlens/internal/domain/models"
)

// EventType represents the type of a verdict or feedback event
type EventType string

const (
	EventTypeAnalysisCompleted EventType = "analysis_completed"
	EventTypeFeedbackSubmitted EventType = "feedback_submitted"
	EventTypeContentReported   EventType = "content_reported"
)

// Event is a real-time notification. Events never carry submitted content,
// only its hash.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Origin    string    `json:"origin,omitempty"` // publishing instance

	ContentHash string `json:"content_hash,omitempty"`

	// Analysis details
	AnalysisID       string           `json:"analysis_id,omitempty"`
	RiskLevel        models.RiskLevel `json:"risk_level,omitempty"`
	Confidence       float64          `json:"confidence,omitempty"`
	DetectedPatterns []string         `json:"detected_patterns,omitempty"`
	SuspiciousURLs   int              `json:"suspicious_urls,omitempty"`
	Language         string           `json:"language,omitempty"`
	ContentType      string           `json:"content_type,omitempty"`
	SourceApp        string           `json:"source_app,omitempty"`
	ProcessingTimeMs float64          `json:"processing_time_ms,omitempty"`

	// Feedback details
	FeedbackID  string `json:"feedback_id,omitempty"`
	WasAccurate *bool  `json:"was_accurate,omitempty"`
	UserRating  int    `json:"user_rating,omitempty"`

	// Report details
	ReportID       string `json:"report_id,omitempty"`
	ReportCategory string `json:"report_category,omitempty"`
}

// NewAnalysisEvent creates an event from a verdict
func NewAnalysisEvent(res *models.AnalysisResult) *Event {
	suspicious := 0
	for _, u := range res.PatternDetails.URLAnalysis {
		if u.IsSuspicious {
			suspicious++
		}
	}

	return &Event{
		ID:               uuid.New().String(),
		Type:             EventTypeAnalysisCompleted,
		Timestamp:        time.Now().UTC(),
		ContentHash:      res.ContentHash,
		AnalysisID:       res.AnalysisID.String(),
		RiskLevel:        res.RiskLevel,
		Confidence:       res.Confidence,
		DetectedPatterns: res.DetectedPatterns,
		SuspiciousURLs:   suspicious,
		Language:         res.Language,
		ContentType:      string(res.ContentType),
		SourceApp:        res.SourceApp,
		ProcessingTimeMs: res.ProcessingTimeMs,
	}
}

// NewFeedbackEvent creates an event from stored feedback
func NewFeedbackEvent(fb *models.Feedback) *Event {
	accurate := fb.WasAccurate
	return &Event{
		ID:          uuid.New().String(),
		Type:        EventTypeFeedbackSubmitted,
		Timestamp:   time.Now().UTC(),
		ContentHash: fb.ContentHash,
		FeedbackID:  fb.ID.String(),
		WasAccurate: &accurate,
		UserRating:  fb.UserRating,
	}
}

// NewReportEvent creates an event from a stored content report
func NewReportEvent(r *models.ContentReport) *Event {
	return &Event{
		ID:             uuid.New().String(),
		Type:           EventTypeContentReported,
		Timestamp:      time.Now().UTC(),
		ContentHash:    r.ContentHash,
		ReportID:       r.ID.String(),
		ReportCategory: r.Category,
	}
}

// Subscription represents a client's filter on the event stream
type Subscription struct {
	// Filter by event types (empty = all)
	Types []EventType `json:"types,omitempty"`

	// Minimum verdict severity for analysis events (empty = all)
	MinRisk models.RiskLevel `json:"min_risk,omitempty"`

	// Analysis events must contain one of these patterns (empty = all)
	Patterns []string `json:"patterns,omitempty"`

	// Filter by source app (empty = all)
	SourceApps []string `json:"source_apps,omitempty"`
}

// Matches checks if an event passes the subscription filters
func (s *Subscription) Matches(event *Event) bool {
	if s == nil {
		return true
	}

	if len(s.Types) > 0 && !slices.Contains(s.Types, event.Type) {
		return false
	}

	// remaining filters only concern verdicts
	if event.Type != EventTypeAnalysisCompleted {
		return true
	}

	if s.MinRisk != "" && event.RiskLevel.Severity() < s.MinRisk.Severity() {
		return false
	}

	if len(s.Patterns) > 0 {
		found := false
		for _, p := range s.Patterns {
			if slices.Contains(event.DetectedPatterns, p) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(s.SourceApps) > 0 && !slices.Contains(s.SourceApps, event.SourceApp) {
		return false
	}

	return true
}
