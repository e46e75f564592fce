// Package notify publishes member notifications. Delivery to devices happens downstream.
package notify

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/book-circle/lending/internal/model"
)

var json = jsoniter.ConfigFastest

type Kafka struct {
	producer sarama.SyncProducer
	topic    string
	log      *zap.Logger
	now      func() time.Time
}

func NewKafka(producer sarama.SyncProducer, topic string, log *zap.Logger) *Kafka {
	return &Kafka{
		producer: producer,
		topic:    topic,
		log:      log.Named("notify"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Notify publishes one message keyed by member id.
func (k *Kafka) Notify(_ context.Context, memberID string, kind model.NotificationKind, payload map[string]any) error {
	data, err := json.Marshal(model.Notification{
		MemberID:  memberID,
		Kind:      kind,
		Payload:   payload,
		CreatedAt: k.now(),
	})
	if err != nil {
		return errors.Wrap(err, "marshal notification")
	}
	msg := &sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(memberID),
		Value: sarama.ByteEncoder(data),
	}
	partition, offset, err := k.producer.SendMessage(msg)
	if err != nil {
		return errors.Wrapf(err, "send %s to %s", kind, memberID)
	}
	k.log.Debug("sent", zap.String("kind", string(kind)), zap.String("member", memberID),
		zap.Int32("partition", partition), zap.Int64("offset", offset))
	return nil
}

func (k *Kafka) Close() error {
	return k.producer.Close()
}

// Log writes notifications to the service log when no broker is configured.
type Log struct {
	log *zap.Logger
}

func NewLog(log *zap.Logger) *Log {
	return &Log{log: log.Named("notify")}
}

func (l *Log) Notify(_ context.Context, memberID string, kind model.NotificationKind, payload map[string]any) error {
	l.log.Info("notification", zap.String("member", memberID), zap.String("kind", string(kind)), zap.Any("payload", payload))
	return nil
}
