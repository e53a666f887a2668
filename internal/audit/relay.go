package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
)

// OutboxStore is the slice of the audit store the relay needs.
type OutboxStore interface {
	FetchUnpublished(ctx context.Context, batchSize int) ([]Entry, error)
	MarkPublished(ctx context.Context, ids []any) error
}

// Relay drains unpublished audit entries to a Kafka topic. It is strictly
// downstream of the audit table: a stalled broker delays publication but
// never blocks or fails an audit write.
type Relay struct {
	store     OutboxStore
	client    *kgo.Client
	topic     string
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

func NewRelay(store OutboxStore, client *kgo.Client, topic string, logger *slog.Logger) *Relay {
	return &Relay{
		store:     store,
		client:    client,
		topic:     topic,
		logger:    logger,
		interval:  2 * time.Second,
		batchSize: 100,
	}
}

// EnsureTopic verifies the audit topic exists before the relay starts, so a
// misconfigured broker surfaces at startup rather than as silent lag.
func (r *Relay) EnsureTopic(ctx context.Context) error {
	adm := kadm.NewClient(r.client)
	details, err := adm.ListTopics(ctx, r.topic)
	if err != nil {
		return fmt.Errorf("list kafka topics: %w", err)
	}
	if !details.Has(r.topic) {
		if _, err := adm.CreateTopic(ctx, 1, 1, nil, r.topic); err != nil {
			return fmt.Errorf("create audit topic %q: %w", r.topic, err)
		}
	}
	return nil
}

// Run drains the outbox until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.drainOnce(ctx); err != nil {
				r.logger.ErrorContext(ctx, "audit relay pass failed", "error", err)
			}
		}
	}
}

func (r *Relay) drainOnce(ctx context.Context) error {
	entries, err := r.store.FetchUnpublished(ctx, r.batchSize)
	if err != nil {
		return fmt.Errorf("fetch unpublished: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	records := make([]*kgo.Record, 0, len(entries))
	for _, entry := range entries {
		payload, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshal entry %s: %w", entry.ID, err)
		}
		records = append(records, &kgo.Record{
			Topic: r.topic,
			Key:   []byte(entry.TableName),
			Value: payload,
		})
	}

	if err := r.client.ProduceSync(ctx, records...).FirstErr(); err != nil {
		return fmt.Errorf("produce audit batch: %w", err)
	}

	ids := make([]any, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}
	if err := r.store.MarkPublished(ctx, ids); err != nil {
		// Entries will be re-sent next pass; consumers must tolerate duplicates.
		return fmt.Errorf("mark published: %w", err)
	}

	r.logger.DebugContext(ctx, "audit entries relayed", "count", len(entries))
	return nil
}
