package events

import (
	"context"
	"time"
)

const (
	CompanyCreated           = "company.created"
	VacancyCreated           = "vacancy.created"
	UserRegistered           = "user.registered"
	UserConfirmationRenewed  = "user.confirmation_renewed"
	ResponseCreated          = "response.created"
	ResponseStatusChanged    = "response.status_changed"
	ReviewCreated            = "review.created"
	StaleRegistrationsPurged = "user.stale_registrations_purged"
)

// Event is one domain fact published after a successful write.
type Event struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

func New(eventType string, payload map[string]any) Event {
	return Event{Type: eventType, OccurredAt: time.Now().UTC(), Payload: payload}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
