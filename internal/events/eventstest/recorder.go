// Package eventstest records published events for assertions.
package eventstest

import (
	"context"
	"errors"
	"sync"

	"github.com/justsurfingit/job-board/internal/events"
)

type Recorder struct {
	mu     sync.Mutex
	events []events.Event
	Fail   bool
}

func (r *Recorder) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return errors.New("broker unavailable")
	}
	r.events = append(r.events, e)
	return nil
}

// Types lists the recorded event types in publish order.
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

// Last returns the most recent event of the given type.
func (r *Recorder) Last(eventType string) (events.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type == eventType {
			return r.events[i], true
		}
	}
	return events.Event{}, false
}
