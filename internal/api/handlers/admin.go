package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"truthlens/internal/detection/patterns"
	"truthlens/internal/domain/services"
	"truthlens/pkg/logger"
)

// Domain lists accepted by RegisterDomain
const (
	DomainListTrusted    = "trusted"
	DomainListSuspicious = "suspicious"
)

// AdminHandler handles catalog administration endpoints
type AdminHandler struct {
	analysis *services.AnalysisService
	feedback *services.FeedbackService
	logger   *logger.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(analysis *services.AnalysisService, feedback *services.FeedbackService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		analysis: analysis,
		feedback: feedback,
		logger:   log.WithComponent("admin"),
	}
}

// RegisterDomainRequest adds a domain to the trusted or suspicious catalog
type RegisterDomainRequest struct {
	Domain   string `json:"domain"`
	Category string `json:"category,omitempty"`
	List     string `json:"list"` // trusted or suspicious
}

// RegisterPattern handles POST /api/v1/admin/patterns
func (h *AdminHandler) RegisterPattern(w http.ResponseWriter, r *http.Request) {
	var rule patterns.Rule
	if !decodeJSON(w, r, maxBodyBytes, &rule) {
		return
	}

	if !h.analysis.Engine().RegisterRule(rule) {
		writeError(w, r, http.StatusBadRequest, "rule is incomplete or has an invalid pattern", CodeInvalidInput)
		return
	}

	h.logger.Info().Str("rule", rule.Name).Msg("scam pattern registered")
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"name":    rule.Name,
	})
}

// RegisterDomain handles POST /api/v1/admin/domains
func (h *AdminHandler) RegisterDomain(w http.ResponseWriter, r *http.Request) {
	var req RegisterDomainRequest
	if !decodeJSON(w, r, maxBodyBytes, &req) {
		return
	}

	engine := h.analysis.Engine()
	var ok bool
	switch strings.ToLower(req.List) {
	case DomainListTrusted:
		ok = engine.RegisterTrustedDomain(req.Domain, req.Category)
	case DomainListSuspicious:
		ok = engine.RegisterSuspiciousDomain(req.Domain, req.Category)
	default:
		writeError(w, r, http.StatusBadRequest, `list must be "trusted" or "suspicious"`, CodeInvalidInput)
		return
	}

	if !ok {
		writeError(w, r, http.StatusBadRequest, "domain is empty or category is unknown", CodeInvalidInput)
		return
	}

	h.logger.Info().Str("domain", req.Domain).Str("list", req.List).Msg("domain registered")
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"domain":  strings.ToLower(strings.TrimSpace(req.Domain)),
		"list":    strings.ToLower(req.List),
	})
}

// RecentFeedback handles GET /api/v1/admin/feedback?limit=N
func (h *AdminHandler) RecentFeedback(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	items, err := h.feedback.Recent(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"feedback": items,
		"count":    len(items),
	})
}
