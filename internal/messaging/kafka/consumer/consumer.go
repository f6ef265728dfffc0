package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-hrms/internal/bootstrap"
	"go-hrms/internal/events"
	"go-hrms/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeLifecycle records every HR lifecycle event through the audit
// logger. Messages that cannot be decoded are committed and skipped.
func ConsumeLifecycle(
	ctx context.Context,
	reader MessageReader,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.lifecycle")
	log.Info("lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("lifecycle consumer stopped")
				return
			}
			log.Error("fetch lifecycle message failed", zap.Error(err))
			continue
		}

		if err := handleMessage(ctx, msg, audit, log); err != nil {
			log.Warn("skipping lifecycle message",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit lifecycle message failed", zap.Error(err))
		}
	}
}

func handleMessage(ctx context.Context, msg kafkago.Message, audit bootstrap.AuditLogger, log *zap.Logger) error {
	var envelope events.Envelope
	if err := json.Unmarshal(msg.Value, &envelope); err != nil {
		return fmt.Errorf("decode lifecycle event: %w", err)
	}

	var body map[string]any
	if err := json.Unmarshal(msg.Value, &body); err != nil {
		return fmt.Errorf("decode lifecycle body: %w", err)
	}

	switch envelope.EventType {
	case events.EmployeeCreated, events.LeaveRequested, events.LeaveStatusChanged:
	default:
		return fmt.Errorf("unknown event type %q", envelope.EventType)
	}

	ctx = contextutil.WithRequestID(ctx, envelope.RequestID)
	audit.Log(ctx, bootstrap.AuditLog{
		Action:  "EVENT_CONSUMED",
		Message: envelope.EventType,
		Meta: map[string]any{
			"key":         string(msg.Key),
			"occurred_at": envelope.OccurredAt,
			"payload":     body,
		},
	})

	log.Info("lifecycle event recorded",
		zap.String("event_type", envelope.EventType),
		zap.String("request_id", envelope.RequestID),
		zap.String("key", string(msg.Key)),
	)
	return nil
}
