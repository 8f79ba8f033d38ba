// Package service provides the notification publisher used by handlers.
// Publishing is best-effort by contract: errors are logged and returned
// so the caller can ignore them without interrupting the request.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/agrostack/farmkeep/internal/queue"
)

// Publisher dispatches notification events for asynchronous delivery.
type Publisher interface {
	PublishTaskReminder(ctx context.Context, ev queue.TaskReminderEvent) error
	PublishPaymentVerified(ctx context.Context, ev queue.PaymentVerifiedEvent) error
}

// AMQPPublisher publishes to RabbitMQ, dialing per publish so a broker
// restart never wedges a long-lived channel inside a request handler.
type AMQPPublisher struct {
	url string
	log zerolog.Logger
}

func NewAMQPPublisher(url string, log zerolog.Logger) *AMQPPublisher {
	return &AMQPPublisher{url: url, log: log}
}

func (p *AMQPPublisher) PublishTaskReminder(ctx context.Context, ev queue.TaskReminderEvent) error {
	return p.publish(ctx, queue.KindTaskReminder, ev)
}

func (p *AMQPPublisher) PublishPaymentVerified(ctx context.Context, ev queue.PaymentVerifiedEvent) error {
	return p.publish(ctx, queue.KindPaymentVerified, ev)
}

func (p *AMQPPublisher) publish(ctx context.Context, kind string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		p.log.Error().Err(err).Str("kind", kind).Msg("marshal event failed")
		return err
	}
	env, err := json.Marshal(queue.Envelope{Kind: kind, Payload: body})
	if err != nil {
		return err
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Error().Err(err).Msg("rabbitmq dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Error().Err(err).Msg("rabbitmq channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable queue so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queue.NotificationQueue, true, false, false, false, nil); err != nil {
		p.log.Error().Err(err).Msg("rabbitmq queue declare failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         env,
	}
	if err := ch.PublishWithContext(ctx, "", queue.NotificationQueue, false, false, pub); err != nil {
		p.log.Error().Err(err).Str("kind", kind).Msg("rabbitmq publish failed")
		return err
	}
	return nil
}

// NopPublisher is used when no broker is configured; events are dropped
// with a debug log line.
type NopPublisher struct {
	Log zerolog.Logger
}

func (p NopPublisher) PublishTaskReminder(_ context.Context, ev queue.TaskReminderEvent) error {
	p.Log.Debug().Str("kind", queue.KindTaskReminder).Uint64("user_id", ev.UserID).Msg("notification dropped: no broker configured")
	return nil
}

func (p NopPublisher) PublishPaymentVerified(_ context.Context, ev queue.PaymentVerifiedEvent) error {
	p.Log.Debug().Str("kind", queue.KindPaymentVerified).Str("order_id", ev.OrderID).Msg("notification dropped: no broker configured")
	return nil
}
