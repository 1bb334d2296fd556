package memory

import (
	"context"
	"sync"

	"tournament-backend/application/ports"
	"tournament-backend/domain/events"
)

// EventPublisher records published events in memory. It backs the memory
// driver and lets tests assert on published events.
type EventPublisher struct {
	mu        sync.Mutex
	published []events.DomainEvent
}

// NewEventPublisher creates an empty in-memory publisher
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{}
}

var _ ports.EventPublisher = (*EventPublisher)(nil)

// Publish records a single event
func (p *EventPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.published = append(p.published, event)
	return nil
}

// PublishBatch records multiple events
func (p *EventPublisher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.published = append(p.published, batch...)
	return nil
}

// Published returns a copy of all recorded events
func (p *EventPublisher) Published() []events.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]events.DomainEvent, len(p.published))
	copy(out, p.published)
	return out
}
