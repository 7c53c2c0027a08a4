package handlers

import (
	"context"

	"truthlens/internal/domain/services"
	"truthlens/internal/streaming"
	"truthlens/pkg/logger"
)

// maxBodyBytes bounds request bodies. Bulk requests carry up to ten items.
const (
	maxBodyBytes     = 64 << 10
	maxBulkBodyBytes = 640 << 10
)

// Pinger is a dependency checked by /ready
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers holds all API handlers
type Handlers struct {
	Health    *HealthHandler
	Analysis  *AnalysisHandler
	Feedback  *FeedbackHandler
	Streaming *StreamingHandler
	Admin     *AdminHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Analysis *services.AnalysisService
	Feedback *services.FeedbackService
	WSHub    *streaming.WebSocketHub
	EventBus *streaming.EventBus
	Checks   map[string]Pinger // name -> dependency, for /ready
	Version  string
	Logger   *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(deps.Checks, deps.Version, deps.Logger),
		Analysis:  NewAnalysisHandler(deps.Analysis, deps.Feedback, deps.Logger),
		Feedback:  NewFeedbackHandler(deps.Feedback, deps.Logger),
		Streaming: NewStreamingHandler(deps.WSHub, deps.EventBus, deps.Logger),
		Admin:     NewAdminHandler(deps.Analysis, deps.Feedback, deps.Logger),
	}
}
