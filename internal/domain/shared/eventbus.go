package shared

import "context"

// EventHandler consumes domain events raised by aggregates.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes lists the event types the handler wants.
	// An empty slice subscribes the handler to every event.
	EventTypes() []string
}

// EventPublisher delivers domain events to subscribed handlers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber manages handler registrations.
type EventSubscriber interface {
	// Subscribe registers a handler for the given event types,
	// or for all events when none are given.
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus combines publishing and subscription with lifecycle control.
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
