package producer

import (
	"context"
	"time"

	"go-hrms/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	batchSize     = 50
	purgeInterval = time.Hour
)

type WorkerOptions struct {
	PollInterval time.Duration
	// Retention is how long sent rows are kept. Zero keeps them forever.
	Retention time.Duration
}

// Worker relays outbox rows to Kafka. Rows that fail to publish are left
// to the repository's backoff and picked up on a later poll.
type Worker struct {
	repo   kafka.OutboxRepository
	writer MessageWriter
	opts   WorkerOptions
	log    *zap.Logger
	now    func() time.Time
}

func NewWorker(repo kafka.OutboxRepository, writer MessageWriter, logger *zap.Logger, opts WorkerOptions) *Worker {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 3 * time.Second
	}
	return &Worker{
		repo:   repo,
		writer: writer,
		opts:   opts,
		log:    logger.Named("kafka.producer.worker"),
		now:    time.Now,
	}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	poll := time.NewTicker(w.opts.PollInterval)
	defer poll.Stop()

	var purge <-chan time.Time
	if w.opts.Retention > 0 {
		t := time.NewTicker(purgeInterval)
		defer t.Stop()
		purge = t.C
	}

	w.log.Info("outbox worker started",
		zap.Duration("poll_interval", w.opts.PollInterval),
		zap.Duration("retention", w.opts.Retention),
	)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("outbox worker stopped")
			return
		case <-poll.C:
			if _, err := w.publishPending(ctx); err != nil {
				w.log.Error("process outbox events failed", zap.Error(err))
			}
		case <-purge:
			if _, err := w.purgeSent(ctx); err != nil {
				w.log.Error("purge outbox events failed", zap.Error(err))
			}
		}
	}
}

func (w *Worker) publishPending(ctx context.Context) (int, error) {
	pending, err := w.repo.ListPending(ctx, batchSize)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	w.log.Debug("processing pending outbox events", zap.Int("count", len(pending)))

	sent := 0
	for _, event := range pending {
		fields := []zap.Field{
			zap.String("outbox_id", event.ID),
			zap.String("request_id", event.RequestID),
			zap.String("event_type", event.EventType),
		}

		if err := publishEvent(ctx, w.writer, event); err != nil {
			w.log.Error("publish outbox event failed",
				append(fields, zap.Int("retry_count", event.RetryCount), zap.Error(err))...)
			if markErr := w.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				w.log.Error("record outbox failure failed", append(fields, zap.Error(markErr))...)
			}
			if event.RetryCount+1 >= kafka.MaxPublishAttempts {
				w.log.Warn("outbox event dead lettered", fields...)
			}
			continue
		}

		if err := w.repo.MarkSent(ctx, event.ID); err != nil {
			w.log.Error("mark outbox sent failed", append(fields, zap.Error(err))...)
			continue
		}

		sent++
		w.log.Info("outbox event sent", fields...)
	}

	return sent, nil
}

func (w *Worker) purgeSent(ctx context.Context) (int64, error) {
	cutoff := w.now().Add(-w.opts.Retention)
	n, err := w.repo.PurgeSent(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		w.log.Info("purged sent outbox events", zap.Int64("count", n), zap.Time("before", cutoff))
	}
	return n, nil
}
