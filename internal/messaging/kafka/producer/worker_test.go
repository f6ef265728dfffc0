package producer

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	kafkaMock "go-hrms/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type recordingWriter struct {
	messages []kafkago.Message
	failFor  map[string]error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if err, ok := w.failFor[string(m.Key)]; ok {
			return err
		}
		w.messages = append(w.messages, m)
	}
	return nil
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestBuildMessage(t *testing.T) {
	msg := buildMessage(kafka.OutboxEvent{
		RequestID:     "rid-1",
		AggregateType: "employee",
		AggregateID:   "emp-1",
		EventType:     events.EmployeeCreated,
		Topic:         events.LifecycleTopic,
		Payload:       []byte(`{"employee_id":"emp-1"}`),
	})

	assert.Equal(t, events.LifecycleTopic, msg.Topic)
	assert.Equal(t, "emp-1", string(msg.Key))
	assert.Equal(t, events.EmployeeCreated, headerValue(msg, "event_type"))
	assert.Equal(t, "employee", headerValue(msg, "aggregate_type"))
	assert.Equal(t, "rid-1", headerValue(msg, "request_id"))

	noRid := buildMessage(kafka.OutboxEvent{AggregateID: "x"})
	assert.Len(t, noRid.Headers, 2)
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("publishes and marks each row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &recordingWriter{failFor: map[string]error{"leave-2": errors.New("broker down")}}

		repo.EXPECT().ListPending(ctx, batchSize).Return([]kafka.OutboxEvent{
			{ID: "o-1", AggregateID: "emp-1", EventType: events.EmployeeCreated, Topic: events.LifecycleTopic},
			{ID: "o-2", AggregateID: "leave-2", EventType: events.LeaveRequested, Topic: events.LifecycleTopic},
		}, nil)
		repo.EXPECT().MarkSent(ctx, "o-1").Return(nil)
		repo.EXPECT().MarkFailed(ctx, "o-2", "broker down").Return(nil)

		sent, err := NewWorker(repo, writer, logger, WorkerOptions{}).publishPending(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Len(t, writer.messages, 1)
	})

	t.Run("nothing pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, batchSize).Return(nil, nil)

		sent, err := NewWorker(repo, &recordingWriter{}, logger, WorkerOptions{}).publishPending(ctx)

		assert.NoError(t, err)
		assert.Zero(t, sent)
	})

	t.Run("list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		boom := errors.New("db down")

		repo.EXPECT().ListPending(ctx, batchSize).Return(nil, boom)

		_, err := NewWorker(repo, &recordingWriter{}, logger, WorkerOptions{}).publishPending(ctx)

		assert.ErrorIs(t, err, boom)
	})

	t.Run("mark sent error does not count", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, batchSize).Return([]kafka.OutboxEvent{{ID: "o-3", AggregateID: "a"}}, nil)
		repo.EXPECT().MarkSent(ctx, "o-3").Return(errors.New("lost"))

		sent, err := NewWorker(repo, &recordingWriter{}, logger, WorkerOptions{}).publishPending(ctx)

		assert.NoError(t, err)
		assert.Zero(t, sent)
	})
}

func TestWorker_PurgeSent(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)

	w := NewWorker(repo, &recordingWriter{}, zap.NewNop(), WorkerOptions{Retention: 24 * time.Hour})
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return now }

	repo.EXPECT().PurgeSent(ctx, now.Add(-24*time.Hour)).Return(int64(4), nil)

	n, err := w.purgeSent(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestWorker_RunStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	repo.EXPECT().ListPending(gomock.Any(), batchSize).Return(nil, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewWorker(repo, &recordingWriter{}, zap.NewNop(), WorkerOptions{PollInterval: time.Millisecond}).Run(ctx)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
