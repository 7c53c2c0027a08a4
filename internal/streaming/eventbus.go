package streaming

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"truthlens/pkg/logger"
)

const subscriberBuffer = 100

// EventBus distributes events to local subscribers and, when connected, to NATS
type EventBus struct {
	nats     *NATSPublisher
	logger   *logger.Logger
	instance string

	mu          sync.RWMutex
	subscribers map[string]*subscriber
	closed      bool
}

type subscriber struct {
	ch  chan *Event
	sub *Subscription
}

// NewEventBus creates a new event bus. nats may be nil.
func NewEventBus(nats *NATSPublisher, log *logger.Logger) *EventBus {
	return &EventBus{
		nats:        nats,
		logger:      log.WithComponent("event-bus"),
		instance:    uuid.New().String(),
		subscribers: make(map[string]*subscriber),
	}
}

// Publish sends an event to NATS and all matching local subscribers.
// A slow subscriber loses events instead of blocking the publisher.
func (eb *EventBus) Publish(ctx context.Context, event *Event) error {
	event.Origin = eb.instance

	if eb.nats.IsConnected() {
		if err := eb.nats.Publish(ctx, event); err != nil {
			eb.logger.Warn().Err(err).Msg("failed to publish to NATS, using local broadcast only")
		}
	}

	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for id, s := range eb.subscribers {
		eb.deliver(id, s, event)
	}

	return nil
}

func (eb *EventBus) deliver(id string, s *subscriber, event *Event) {
	if !s.sub.Matches(event) {
		return
	}
	select {
	case s.ch <- event:
	default:
		eb.logger.Debug().Str("subscriber", id).Msg("subscriber channel full, dropping event")
	}
}

// Subscribe registers a subscriber and returns its channel plus an
// unsubscribe function. With NATS connected, events published by other
// instances are forwarded as well.
func (eb *EventBus) Subscribe(ctx context.Context, sub *Subscription) (<-chan *Event, func()) {
	id := uuid.New().String()
	s := &subscriber{ch: make(chan *Event, subscriberBuffer), sub: sub}

	eb.mu.Lock()
	if eb.closed {
		eb.mu.Unlock()
		close(s.ch)
		return s.ch, func() {}
	}
	eb.subscribers[id] = s
	eb.mu.Unlock()

	eb.logger.Debug().Str("subscriber_id", id).Msg("new subscriber")

	ctx, cancel := context.WithCancel(ctx)
	unsubscribe := func() {
		cancel()
		eb.mu.Lock()
		defer eb.mu.Unlock()
		if _, ok := eb.subscribers[id]; ok {
			close(s.ch)
			delete(eb.subscribers, id)
			eb.logger.Debug().Str("subscriber_id", id).Msg("subscriber removed")
		}
	}

	if eb.nats.IsConnected() {
		remote, err := eb.nats.Subscribe(ctx, sub)
		if err != nil {
			eb.logger.Warn().Err(err).Msg("failed to subscribe to NATS, local events only")
		} else {
			go eb.forward(ctx, id, s, remote)
		}
	}

	return s.ch, unsubscribe
}

// forward relays remote events, skipping the ones this instance published
func (eb *EventBus) forward(ctx context.Context, id string, s *subscriber, remote <-chan *Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-remote:
			if !ok {
				return
			}
			if event.Origin == eb.instance {
				continue
			}
			eb.mu.RLock()
			if _, active := eb.subscribers[id]; active {
				eb.deliver(id, s, event)
			}
			eb.mu.RUnlock()
		}
	}
}

// SubscriberCount returns the number of active subscribers
func (eb *EventBus) SubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers)
}

// Close closes every subscriber channel and the NATS connection. It is
// safe to call more than once.
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return
	}

	for id, s := range eb.subscribers {
		close(s.ch)
		delete(eb.subscribers, id)
	}
	eb.closed = true

	if eb.nats != nil {
		eb.nats.Close()
	}
}
