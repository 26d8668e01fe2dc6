package events_test

import (
	"context"
	"testing"

	"github.com/justsurfingit/job-board/internal/events"
	"github.com/justsurfingit/job-board/internal/events/eventstest"
	"github.com/stretchr/testify/assert"
)

func TestEmitRecordsEvent(t *testing.T) {
	rec := &eventstest.Recorder{}
	events.Emit(context.Background(), rec, events.CompanyCreated, map[string]any{"company_id": uint(7)})

	e, ok := rec.Last(events.CompanyCreated)
	assert.True(t, ok)
	assert.Equal(t, uint(7), e.Payload["company_id"])
	assert.False(t, e.OccurredAt.IsZero())
}

func TestEmitSwallowsPublishErrors(t *testing.T) {
	rec := &eventstest.Recorder{Fail: true}
	assert.NotPanics(t, func() {
		events.Emit(context.Background(), rec, events.VacancyCreated, nil)
		events.Emit(context.Background(), nil, events.VacancyCreated, nil)
	})
	assert.Empty(t, rec.Types())
}

func TestNoopPublisher(t *testing.T) {
	var p events.Publisher = events.Noop{}
	assert.NoError(t, p.Publish(context.Background(), events.New(events.ReviewCreated, nil)))
}
