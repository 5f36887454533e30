package worker

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/healthml/healthdata-api/internal/repository"
	"github.com/healthml/healthdata-api/pkg/logger"
	"github.com/healthml/healthdata-api/pkg/messaging"
)

const (
	defaultPollInterval = 5 * time.Second
	defaultBatchSize    = 50
)

// OutboxProcessor drains pending outbox events into the message broker.
// Events are published at least once; consumers must tolerate duplicates.
type OutboxProcessor struct {
	outbox   repository.OutboxRepository
	broker   messaging.Broker
	channel  string
	interval time.Duration
	batch    int
	logger   *logger.Logger
}

func NewOutboxProcessor(outbox repository.OutboxRepository, broker messaging.Broker, channel string, log *logger.Logger) *OutboxProcessor {
	return &OutboxProcessor{
		outbox:   outbox,
		broker:   broker,
		channel:  channel,
		interval: defaultPollInterval,
		batch:    defaultBatchSize,
		logger:   log,
	}
}

// Start polls until the context is cancelled.
func (p *OutboxProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("outbox processor started", "channel", p.channel)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("outbox processor stopped")
			return
		case <-ticker.C:
			p.drain(ctx)
		}
	}
}

func (p *OutboxProcessor) drain(ctx context.Context) {
	timer := prometheus.NewTimer(outboxDrainDuration)
	defer timer.ObserveDuration()

	events, err := p.outbox.FetchPending(ctx, p.batch)
	if err != nil {
		p.logger.Error(err, "outbox fetch failed")
		return
	}
	for _, event := range events {
		if err := p.broker.Publish(ctx, p.channel, event.Payload); err != nil {
			outboxEventsFailed.Inc()
			p.logger.Error(err, "outbox publish failed", "event_id", event.ID)
			if err := p.outbox.MarkFailed(ctx, event.ID); err != nil {
				p.logger.Error(err, "outbox mark failed errored", "event_id", event.ID)
			}
			continue
		}
		outboxEventsProcessed.Inc()
		if err := p.outbox.MarkPublished(ctx, event.ID); err != nil {
			p.logger.Error(err, "outbox mark published errored", "event_id", event.ID)
		}
	}
}
