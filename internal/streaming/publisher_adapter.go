package streaming

import (
	"context"

	"truthlens/internal/domain/models"
)

// EventBusPublisher implements services.EventPublisher on top of the
// EventBus and the WebSocket hub. Either may be nil.
type EventBusPublisher struct {
	eventBus *EventBus
	wsHub    *WebSocketHub
}

// NewEventBusPublisher creates a new publisher adapter
func NewEventBusPublisher(eventBus *EventBus, wsHub *WebSocketHub) *EventBusPublisher {
	return &EventBusPublisher{
		eventBus: eventBus,
		wsHub:    wsHub,
	}
}

// PublishAnalysis announces a completed verdict
func (p *EventBusPublisher) PublishAnalysis(ctx context.Context, res *models.AnalysisResult) error {
	return p.publish(ctx, NewAnalysisEvent(res))
}

// PublishFeedback announces stored feedback
func (p *EventBusPublisher) PublishFeedback(ctx context.Context, fb *models.Feedback) error {
	return p.publish(ctx, NewFeedbackEvent(fb))
}

// PublishReport announces a stored content report
func (p *EventBusPublisher) PublishReport(ctx context.Context, r *models.ContentReport) error {
	return p.publish(ctx, NewReportEvent(r))
}

func (p *EventBusPublisher) publish(ctx context.Context, event *Event) error {
	if p.eventBus != nil {
		if err := p.eventBus.Publish(ctx, event); err != nil {
			return err
		}
	}

	if p.wsHub != nil {
		p.wsHub.BroadcastEvent(event)
	}

	return nil
}
