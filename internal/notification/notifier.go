package notification

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Vietanh2703/BASMS-BE-sub000/internal/contractimport"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/events"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/messaging/kafka/producer"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var _ contractimport.Notifier = (*KafkaNotifier)(nil)

var ErrIncompleteLoginInfo = errors.New("login info needs an email and a password")

// KafkaNotifier hands login credentials to the mail service over Kafka. The
// message is written directly, never through the outbox, so the plaintext
// password is not stored in the database.
type KafkaNotifier struct {
	writer   producer.MessageWriter
	topic    string
	loginURL string
	timeout  time.Duration
	logger   *zap.Logger
}

func NewKafkaNotifier(writer producer.MessageWriter, topic, loginURL string, logger ...*zap.Logger) *KafkaNotifier {
	l := zap.L().Named("notification.kafka")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.kafka")
	}
	if topic == "" {
		topic = events.CustomerLoginIssuedTopic
	}
	return &KafkaNotifier{
		writer:   writer,
		topic:    topic,
		loginURL: loginURL,
		timeout:  5 * time.Second,
		logger:   l,
	}
}

func (n *KafkaNotifier) SendLoginInfo(ctx context.Context, info contractimport.LoginInfo) error {
	if info.Email == "" || info.Password == "" {
		return ErrIncompleteLoginInfo
	}
	rid := contextutil.GetRequestID(ctx)

	payload, err := json.Marshal(events.CustomerLoginIssuedEvent{
		EventType:    events.CustomerLoginIssuedEventType,
		RequestID:    rid,
		UserID:       info.UserID.String(),
		Email:        info.Email,
		CustomerName: info.CustomerName,
		Password:     info.Password,
		LoginURL:     n.loginURL,
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	msg := kafkago.Message{
		Topic: n.topic,
		Key:   []byte(info.UserID.String()),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(events.CustomerLoginIssuedEventType)},
			{Key: "request_id", Value: []byte(rid)},
			{Key: "contract_number", Value: []byte(info.ContractNumber)},
		},
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		n.logger.Warn("send login info failed",
			zap.String("request_id", rid),
			zap.String("user_id", info.UserID.String()),
			zap.Error(err),
		)
		return err
	}

	n.logger.Info("login info sent",
		zap.String("request_id", rid),
		zap.String("user_id", info.UserID.String()),
	)
	return nil
}
