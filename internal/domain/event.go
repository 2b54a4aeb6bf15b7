package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus represents the lifecycle status of an event
type EventStatus string

const (
	EventStatusDraft      EventStatus = "DRAFT"
	EventStatusPlanned    EventStatus = "PLANNED"
	EventStatusInProgress EventStatus = "IN_PROGRESS"
	EventStatusClosed     EventStatus = "CLOSED"
	EventStatusCanceled   EventStatus = "CANCELED"
)

// IsValid reports whether s is a known event status.
func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusDraft, EventStatusPlanned, EventStatusInProgress,
		EventStatusClosed, EventStatusCanceled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s EventStatus) IsTerminal() bool {
	return s == EventStatusClosed || s == EventStatusCanceled
}

// eventTransitions lists the allowed target statuses per source status.
// PLANNED -> PLANNED covers replanning, which rebuilds the plan in place.
var eventTransitions = map[EventStatus][]EventStatus{
	EventStatusDraft:      {EventStatusPlanned, EventStatusCanceled},
	EventStatusPlanned:    {EventStatusPlanned, EventStatusInProgress, EventStatusClosed, EventStatusCanceled},
	EventStatusInProgress: {EventStatusClosed, EventStatusCanceled},
	EventStatusClosed:     {},
	EventStatusCanceled:   {},
}

// CanTransition reports whether an event may move from status s to target.
func (s EventStatus) CanTransition(target EventStatus) bool {
	for _, allowed := range eventTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Event represents a catering engagement for a client on a given date
type Event struct {
	ID         uuid.UUID   `json:"id"`
	ClientID   uuid.UUID   `json:"client_id"`
	MenuID     *uuid.UUID  `json:"menu_id,omitempty"`
	Name       string      `json:"name"`
	Venue      string      `json:"venue"`
	GuestCount int         `json:"guest_count"`
	Status     EventStatus `json:"status"`
	StartsAt   time.Time   `json:"starts_at"`
	EndsAt     time.Time   `json:"ends_at"`
	PlannedAt  *time.Time  `json:"planned_at,omitempty"`
	SettledAt  *time.Time  `json:"settled_at,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// CanPlan reports whether a plan may be computed for the event
// in its current status.
func (e *Event) CanPlan() bool {
	return e.Status == EventStatusDraft || e.Status == EventStatusPlanned
}

// CanSettle reports whether the event may be settled.
func (e *Event) CanSettle() bool {
	return e.Status == EventStatusPlanned || e.Status == EventStatusInProgress
}
