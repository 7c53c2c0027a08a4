package handlers

import (
	"net/http"

	"truthlens/internal/domain/models"
	"truthlens/internal/domain/services"
	"truthlens/pkg/logger"
)

// AnalysisHandler handles content analysis endpoints
type AnalysisHandler struct {
	analysis *services.AnalysisService
	feedback *services.FeedbackService
	logger   *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysis *services.AnalysisService, feedback *services.FeedbackService, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysis: analysis,
		feedback: feedback,
		logger:   log.WithComponent("analysis-handler"),
	}
}

// StatsResponse combines engine counters with feedback totals
type StatsResponse struct {
	models.EngineStats
	Feedback *models.FeedbackStats `json:"feedback,omitempty"`
}

// Analyze handles POST /api/v1/analyze
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalysisRequest
	if !decodeJSON(w, r, maxBodyBytes, &req) {
		return
	}

	res, err := h.analysis.Analyze(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// AnalyzeBulk handles POST /api/v1/analyze/bulk
func (h *AnalysisHandler) AnalyzeBulk(w http.ResponseWriter, r *http.Request) {
	var req models.BulkAnalysisRequest
	if !decodeJSON(w, r, maxBulkBodyBytes, &req) {
		return
	}

	res, err := h.analysis.AnalyzeBulk(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// CheckURL handles POST /api/v1/url/check
func (h *AnalysisHandler) CheckURL(w http.ResponseWriter, r *http.Request) {
	var req models.URLCheckRequest
	if !decodeJSON(w, r, maxBodyBytes, &req) {
		return
	}

	res, err := h.analysis.CheckURL(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// Patterns handles GET /api/v1/patterns
func (h *AnalysisHandler) Patterns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.analysis.Patterns())
}

// Stats handles GET /api/v1/stats
func (h *AnalysisHandler) Stats(w http.ResponseWriter, r *http.Request) {
	resp := StatsResponse{EngineStats: h.analysis.Stats()}

	if h.feedback != nil {
		stats, err := h.feedback.Stats(r.Context())
		if err != nil {
			h.logger.Warn().Err(err).Msg("failed to load feedback stats")
		} else {
			resp.Feedback = stats
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
