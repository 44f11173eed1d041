// Package notification publishes booking lifecycle messages.
package notification

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"crud-apps/internal/models"
)

const (
	QueueBookingCreated       = "booking.created"
	QueueBookingStatusChanged = "booking.status_changed"
)

// Message is the JSON body published for every booking notification.
type Message struct {
	BookingID        int64                `json:"booking_id"`
	EventID          int64                `json:"event_id"`
	CustomerEmail    string               `json:"customer_email"`
	Quantity         int                  `json:"quantity"`
	TotalAmount      float64              `json:"total_amount"`
	Status           models.BookingStatus `json:"status"`
	PreviousStatus   models.BookingStatus `json:"previous_status,omitempty"`
	ConfirmationCode string               `json:"confirmation_code"`
	OccurredAt       time.Time            `json:"occurred_at"`
}

func newMessage(b *models.Booking) Message {
	return Message{
		BookingID:        b.ID,
		EventID:          b.EventID,
		CustomerEmail:    b.CustomerEmail,
		Quantity:         b.Quantity,
		TotalAmount:      b.TotalAmount,
		Status:           b.Status,
		ConfirmationCode: b.ConfirmationCode,
		OccurredAt:       time.Now().UTC(),
	}
}

type publishFunc func(ctx context.Context, queue string, body []byte) error

// AMQPNotifier publishes persistent JSON messages to durable RabbitMQ queues
// through the default exchange. Failures are logged and never reach the caller.
type AMQPNotifier struct {
	url     string
	log     logrus.FieldLogger
	publish publishFunc
}

func NewAMQPNotifier(url string, log logrus.FieldLogger) *AMQPNotifier {
	n := &AMQPNotifier{url: url, log: log}
	n.publish = n.dialAndPublish
	return n
}

func (n *AMQPNotifier) NotifyBookingCreated(ctx context.Context, b *models.Booking) {
	n.send(ctx, QueueBookingCreated, newMessage(b))
}

func (n *AMQPNotifier) NotifyStatusChanged(ctx context.Context, b *models.Booking, previous models.BookingStatus) {
	msg := newMessage(b)
	msg.PreviousStatus = previous
	n.send(ctx, QueueBookingStatusChanged, msg)
}

func (n *AMQPNotifier) send(ctx context.Context, queue string, msg Message) {
	log := n.log.WithFields(logrus.Fields{"queue": queue, "booking_id": msg.BookingID})

	body, err := json.Marshal(msg)
	if err != nil {
		log.WithError(err).Error("marshal notification")
		return
	}
	if err := n.publish(ctx, queue, body); err != nil {
		log.WithError(err).Error("publish notification")
		return
	}
	log.Debug("notification published")
}

// dialAndPublish opens a connection per message. Booking traffic is low and
// this keeps the notifier free of reconnect handling.
func (n *AMQPNotifier) dialAndPublish(ctx context.Context, queue string, body []byte) error {
	conn, err := amqp.Dial(n.url)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return err
	}

	return ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

// LogNotifier writes notifications to the log. Used when no broker is configured.
type LogNotifier struct {
	log logrus.FieldLogger
}

func NewLogNotifier(log logrus.FieldLogger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) NotifyBookingCreated(_ context.Context, b *models.Booking) {
	n.log.WithFields(logrus.Fields{
		"booking_id":        b.ID,
		"confirmation_code": b.ConfirmationCode,
	}).Info("booking created notification")
}

func (n *LogNotifier) NotifyStatusChanged(_ context.Context, b *models.Booking, previous models.BookingStatus) {
	n.log.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"from":       previous,
		"to":         b.Status,
	}).Info("booking status notification")
}
