package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/healthml/healthdata-api/internal/model"
	"github.com/healthml/healthdata-api/pkg/logger"
)

type fakeOutbox struct {
	pending   []*model.OutboxEvent
	published []int64
	failed    []int64
}

func (f *fakeOutbox) Create(_ context.Context, _ *model.OutboxEvent) error { return nil }

func (f *fakeOutbox) FetchPending(_ context.Context, _ int) ([]*model.OutboxEvent, error) {
	return f.pending, nil
}

func (f *fakeOutbox) MarkPublished(_ context.Context, id int64) error {
	f.published = append(f.published, id)
	return nil
}

func (f *fakeOutbox) MarkFailed(_ context.Context, id int64) error {
	f.failed = append(f.failed, id)
	return nil
}

type fakeBroker struct {
	publishErr  error
	publishedTo []string
}

func (f *fakeBroker) Publish(_ context.Context, channel string, _ interface{}) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.publishedTo = append(f.publishedTo, channel)
	return nil
}

func (f *fakeBroker) Subscribe(_ context.Context, _ string) (<-chan []byte, error) {
	return nil, nil
}

func (f *fakeBroker) Close() error { return nil }

func TestDrainPublishesAndMarks(t *testing.T) {
	outbox := &fakeOutbox{pending: []*model.OutboxEvent{
		{ID: 1, EventType: "prediction.created"},
		{ID: 2, EventType: "prediction.created"},
	}}
	broker := &fakeBroker{}
	p := NewOutboxProcessor(outbox, broker, "predictions", logger.NewLogger(nil))

	processedBefore := testutil.ToFloat64(outboxEventsProcessed)
	p.drain(context.Background())

	assert.Equal(t, []int64{1, 2}, outbox.published)
	assert.Empty(t, outbox.failed)
	assert.Equal(t, []string{"predictions", "predictions"}, broker.publishedTo)
	assert.Equal(t, processedBefore+2, testutil.ToFloat64(outboxEventsProcessed))
}

func TestDrainMarksFailedOnPublishError(t *testing.T) {
	outbox := &fakeOutbox{pending: []*model.OutboxEvent{{ID: 7}}}
	broker := &fakeBroker{publishErr: errors.New("redis down")}
	p := NewOutboxProcessor(outbox, broker, "predictions", logger.NewLogger(nil))

	failedBefore := testutil.ToFloat64(outboxEventsFailed)
	p.drain(context.Background())

	assert.Empty(t, outbox.published)
	assert.Equal(t, []int64{7}, outbox.failed)
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(outboxEventsFailed))
}
