package handlers

import (
	"net/http"

	"truthlens/internal/domain/models"
	"truthlens/internal/domain/services"
	"truthlens/pkg/logger"
)

// FeedbackHandler handles feedback and content report endpoints
type FeedbackHandler struct {
	feedback *services.FeedbackService
	logger   *logger.Logger
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedback *services.FeedbackService, log *logger.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedback: feedback,
		logger:   log.WithComponent("feedback-handler"),
	}
}

// Submit handles POST /api/v1/feedback
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.FeedbackRequest
	if !decodeJSON(w, r, maxBodyBytes, &req) {
		return
	}

	fb, err := h.feedback.SubmitFeedback(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":     true,
		"feedback_id": fb.ID,
		"message":     "Thank you for your feedback",
	})
}

// Report handles POST /api/v1/report
func (h *FeedbackHandler) Report(w http.ResponseWriter, r *http.Request) {
	var req models.ReportContentRequest
	if !decodeJSON(w, r, maxBodyBytes, &req) {
		return
	}

	report, err := h.feedback.ReportContent(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":      true,
		"report_id":    report.ID,
		"content_hash": report.ContentHash,
		"message":      "Report received",
	})
}
