package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"studentadmin/retry"
	"studentadmin/types"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PublishTimeout bounds the time one notification may hold up its caller,
// retries included.
const PublishTimeout = time.Second

// PublishPolicy retries a failed publish a couple of times with short pauses.
func PublishPolicy() retry.Policy {
	return retry.Policy{
		Attempts: 3,
		Initial:  50 * time.Millisecond,
		Max:      200 * time.Millisecond,
	}
}

// Kafka publishes each notification as a JSON types.Notification.
// Publishing is retried briefly; a notification that still fails is logged and dropped.
type Kafka struct {
	writer  messageWriter
	ctx     context.Context
	policy  retry.Policy
	timeout time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

func NewKafka(ctx context.Context, brokers []string, topic string, logger *zap.Logger) *Kafka {
	return newKafka(ctx, &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: PublishTimeout,
		MaxAttempts:  1,
	}, logger)
}

func newKafka(ctx context.Context, w messageWriter, logger *zap.Logger) *Kafka {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Kafka{
		writer:  w,
		ctx:     ctx,
		policy:  PublishPolicy(),
		timeout: PublishTimeout,
		logger:  logger.Named("kafka"),
		now:     time.Now,
	}
}

func (k *Kafka) Success(text string) { k.publish(types.SeveritySuccess, text) }
func (k *Kafka) Error(text string)   { k.publish(types.SeverityError, text) }
func (k *Kafka) Warning(text string) { k.publish(types.SeverityWarning, text) }

func (k *Kafka) publish(sev types.Severity, text string) {
	n := types.Notification{
		ID:       uuid.New().String(),
		Severity: sev,
		Text:     text,
		Time:     k.now().UTC(),
	}

	data, err := json.Marshal(n)
	if err != nil {
		k.logger.Error("encode notification", zap.Error(err))
		return
	}

	msg := kafka.Message{
		Key:   []byte(n.ID),
		Value: data,
		Time:  n.Time,
	}
	ctx, cancel := context.WithTimeout(k.ctx, k.timeout)
	defer cancel()
	err = retry.Do(ctx, k.policy, k.logger, func() error {
		return k.writer.WriteMessages(ctx, msg)
	})
	if err != nil {
		k.logger.Error("notification dropped",
			zap.String("id", n.ID),
			zap.String("severity", string(sev)),
			zap.Error(err),
		)
	}
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}
