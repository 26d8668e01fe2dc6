package events

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Emit publishes and only logs a failure; a lost event never fails the caller.
func Emit(ctx context.Context, p Publisher, eventType string, payload map[string]any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, New(eventType, payload)); err != nil {
		logrus.WithError(err).WithField("event", eventType).Warn("failed to publish event")
	}
}
