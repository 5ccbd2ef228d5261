package eventpublisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iho/arledger/internal/domain"
	"github.com/iho/arledger/internal/usecase"
)

const (
	defaultBatchSize = 100
	defaultInterval  = 5 * time.Second
)

// Publisher delivers a single outbox event to a downstream consumer.
type Publisher interface {
	Publish(ctx context.Context, event *domain.OutboxEvent) error
}

// EventPublisher drains the transactional outbox. Invoice, payment and note
// lifecycle events are written to the outbox in the same transaction as the
// document itself; this worker ships them out afterwards, so a crash between
// commit and publish only delays delivery, never loses it.
type EventPublisher struct {
	outboxRepo usecase.OutboxRepository
	publisher  Publisher
	logger     zerolog.Logger
	batchSize  int
	interval   time.Duration
}

// Config for EventPublisher. BatchSize and Interval fall back to defaults
// when zero.
type Config struct {
	OutboxRepo usecase.OutboxRepository
	Publisher  Publisher
	Logger     *zerolog.Logger
	BatchSize  int
	Interval   time.Duration
}

// NewEventPublisher creates a new EventPublisher.
func NewEventPublisher(cfg Config) *EventPublisher {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &EventPublisher{
		outboxRepo: cfg.OutboxRepo,
		publisher:  cfg.Publisher,
		logger:     logger.With().Str("component", "outbox_publisher").Logger(),
		batchSize:  cfg.BatchSize,
		interval:   cfg.Interval,
	}
}

// Start polls the outbox until the context is cancelled. One failed event
// does not block the rest of the batch.
func (ep *EventPublisher) Start(ctx context.Context) error {
	ep.logger.Info().
		Int("batch_size", ep.batchSize).
		Dur("interval", ep.interval).
		Msg("outbox publisher started")

	ticker := time.NewTicker(ep.interval)
	defer ticker.Stop()

	// Drain whatever accumulated while the service was down.
	if err := ep.drain(ctx); err != nil {
		ep.logger.Error().Err(err).Msg("initial outbox drain failed")
	}

	for {
		select {
		case <-ctx.Done():
			ep.logger.Info().Msg("outbox publisher shutting down")
			return ctx.Err()
		case <-ticker.C:
			if err := ep.drain(ctx); err != nil {
				ep.logger.Error().Err(err).Msg("outbox drain failed")
			}
		}
	}
}

// drain fetches one batch of unpublished events and ships them in commit
// order.
func (ep *EventPublisher) drain(ctx context.Context) error {
	events, err := ep.outboxRepo.GetUnpublished(ctx, ep.batchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	ep.logger.Debug().Int("count", len(events)).Msg("draining outbox batch")

	for _, event := range events {
		if err := ep.publishOne(ctx, event); err != nil {
			ep.logger.Error().Err(err).
				Str("event_id", event.ID).
				Str("event_type", event.EventType).
				Str("aggregate_id", event.AggregateID).
				Msg("failed to publish outbox event")
			continue
		}

		// An event that published but failed to mark will be delivered
		// again on the next pass; consumers key on event_id.
		if err := ep.outboxRepo.MarkPublished(ctx, event.ID, time.Now().UTC()); err != nil {
			ep.logger.Error().Err(err).
				Str("event_id", event.ID).
				Msg("failed to mark outbox event as published")
		}
	}

	return nil
}

func (ep *EventPublisher) publishOne(ctx context.Context, event *domain.OutboxEvent) error {
	if err := ep.publisher.Publish(ctx, event); err != nil {
		return err
	}

	ep.logger.Info().
		Str("event_id", event.ID).
		Str("event_type", event.EventType).
		Str("aggregate_type", event.AggregateType).
		Str("aggregate_id", event.AggregateID).
		Msg("outbox event published")

	return nil
}

// LogPublisher writes events to the log instead of a broker. It stands in
// for a real sink in development and in deployments without a message bus.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a new LogPublisher. A nil logger falls back to the
// global logger.
func NewLogPublisher(logger *zerolog.Logger) *LogPublisher {
	l := log.Logger
	if logger != nil {
		l = *logger
	}
	return &LogPublisher{logger: l}
}

// Publish logs the event with its payload.
func (p *LogPublisher) Publish(_ context.Context, event *domain.OutboxEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}

	p.logger.Info().
		Str("event_id", event.ID).
		Str("event_type", event.EventType).
		Str("aggregate_type", event.AggregateType).
		Str("aggregate_id", event.AggregateID).
		RawJSON("payload", payload).
		Msg("receivables event")

	return nil
}
