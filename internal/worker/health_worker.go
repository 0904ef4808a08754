// Package worker recomputes health scores on a schedule and publishes
// changes over AMQP.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"opsboard/internal/dataset"
	"opsboard/internal/events"
	applog "opsboard/internal/log"
	"opsboard/internal/services"
)

// Publisher is the slice of the events client the worker needs.
type Publisher interface {
	PublishHealthScores(ctx context.Context, msg *events.HealthScoreMessage) error
}

// HealthWorker periodically recomputes the health scores and publishes
// a message whenever any score moved since the last run.
type HealthWorker struct {
	reader    dataset.SnapshotReader
	publisher Publisher
	cfg       services.ScoreConfig
	interval  time.Duration

	last    services.Health
	hasLast bool
}

func NewHealthWorker(reader dataset.SnapshotReader, publisher Publisher, cfg services.ScoreConfig, interval time.Duration) *HealthWorker {
	return &HealthWorker{
		reader:    reader,
		publisher: publisher,
		cfg:       cfg,
		interval:  interval,
	}
}

// Run recomputes immediately, then on every tick until the context ends.
func (w *HealthWorker) Run(ctx context.Context) error {
	if err := w.RunOnce(ctx); err != nil {
		slog.ErrorContext(ctx, "Initial health computation failed", "error", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Health worker stopping", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if err := w.RunOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "Health computation failed", "error", err)
			}
		}
	}
}

// RunOnce loads the snapshot, scores it, and publishes when the scores
// differ from the previous run. The first run always publishes.
func (w *HealthWorker) RunOnce(ctx context.Context) error {
	snap, err := w.reader.ReadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	health := services.HealthScores(snap, w.cfg)
	if w.hasLast && health == w.last {
		slog.DebugContext(ctx, "Health scores unchanged", "overall", health.Overall)
		return nil
	}

	if w.publisher != nil {
		msg := events.NewHealthScoreMessage(snap.Finance.Period, health)
		if err := w.publisher.PublishHealthScores(ctx, msg); err != nil {
			return fmt.Errorf("publish health scores: %w", err)
		}
	}

	fields := applog.NewFields().
		WithComponent(applog.ComponentWorker).
		WithOperation(applog.OpScore).
		WithSnapshot(len(snap.Deals), len(snap.Clients), len(snap.Activities)).
		WithOverall(health.Overall)
	slog.InfoContext(ctx, "Health scores recomputed",
		append(fields.ToSlice(), "period", snap.Finance.Period)...)

	w.last = health
	w.hasLast = true
	return nil
}
