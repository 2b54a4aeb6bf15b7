package domain

import "time"

// IntegrationEventType identifies a published domain event
type IntegrationEventType string

const (
	// IntegrationEventPlanned fires after a plan is computed and stored
	IntegrationEventPlanned IntegrationEventType = "event.planned"
	// IntegrationEventSettled fires after an event is settled and closed
	IntegrationEventSettled IntegrationEventType = "event.settled"
	// IntegrationEventLowStock fires when a product drops under its minimum
	IntegrationEventLowStock IntegrationEventType = "stock.low"
)

// IntegrationEvent is the envelope for events published to the broker
type IntegrationEvent struct {
	ID         string               `json:"id"`
	Type       IntegrationEventType `json:"type"`
	Subject    string               `json:"subject"`
	OccurredAt time.Time            `json:"occurred_at"`
	Payload    any                  `json:"payload,omitempty"`
}

// NewIntegrationEvent creates an event envelope. Subject is the
// aggregate ID and doubles as the partition key, so events about one
// aggregate stay ordered.
func NewIntegrationEvent(eventType IntegrationEventType, id, subject string, payload any) *IntegrationEvent {
	return &IntegrationEvent{
		ID:         id,
		Type:       eventType,
		Subject:    subject,
		OccurredAt: time.Now(),
		Payload:    payload,
	}
}

// Key returns the partition key for the event
func (e *IntegrationEvent) Key() string {
	return e.Subject
}
