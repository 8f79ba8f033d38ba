package queue

import (
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/agrostack/farmkeep/internal/notify"
)

// Consumer drains the notification queue and hands events to the email
// and SMS senders. Delivery is at-least-once; the senders are cheap to
// re-invoke and duplicates only cost a duplicate message.
type Consumer struct {
	URL    string
	Mailer *notify.Mailer
	SMS    *notify.SMSSender
	Log    zerolog.Logger
}

// Start runs the reconnect loop. It never returns under normal
// operation; run it in its own goroutine.
func (c *Consumer) Start() {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			c.Log.Warn().Err(err).Dur("retry_in", backoff).Msg("notification consumer: dial failed")
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := c.consumeLoop(conn); err != nil {
			c.Log.Warn().Err(err).Msg("notification consumer: loop ended, reconnecting")
			_ = conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

func (c *Consumer) consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.Log.Warn().Err(err).Msg("notification consumer: set QoS failed")
	}
	if _, err := ch.QueueDeclare(NotificationQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(NotificationQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := c.handle(d.Body); err != nil {
			c.Log.Error().Err(err).Msg("notification consumer: handle failed")
			_ = d.Nack(false, false) // drop, do not requeue a poison message
			continue
		}
		_ = d.Ack(false)
	}
	return fmt.Errorf("delivery channel closed")
}

func (c *Consumer) handle(body []byte) error {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	switch env.Kind {
	case KindTaskReminder:
		var ev TaskReminderEvent
		if err := json.Unmarshal(env.Payload, &ev); err != nil {
			return fmt.Errorf("decode %s: %w", env.Kind, err)
		}
		return c.sendReminder(ev)
	case KindPaymentVerified:
		var ev PaymentVerifiedEvent
		if err := json.Unmarshal(env.Payload, &ev); err != nil {
			return fmt.Errorf("decode %s: %w", env.Kind, err)
		}
		c.sendSellerSMS(ev)
		return nil
	default:
		return fmt.Errorf("unknown event kind %q", env.Kind)
	}
}

func (c *Consumer) sendReminder(ev TaskReminderEvent) error {
	if !c.Mailer.Enabled() {
		c.Log.Debug().Uint64("user_id", ev.UserID).Msg("reminder skipped: smtp not configured")
		return nil
	}
	subject := fmt.Sprintf("Farm Task Reminder - %d Task(s) Due Today", len(ev.Titles))
	body := notify.TaskReminderBody(ev.Username, ev.Date, ev.Titles, ev.Notes)
	if err := c.Mailer.Send(ev.Email, subject, body); err != nil {
		return fmt.Errorf("send reminder mail: %w", err)
	}
	c.Log.Info().Uint64("user_id", ev.UserID).Int("tasks", len(ev.Titles)).Msg("task reminder sent")
	return nil
}

// sendSellerSMS is fire-and-forget per seller; one failed number must
// not stop the rest.
func (c *Consumer) sendSellerSMS(ev PaymentVerifiedEvent) {
	if !c.SMS.Enabled() {
		c.Log.Debug().Str("order_id", ev.OrderID).Msg("seller sms skipped: twilio not configured")
		return
	}
	for _, n := range ev.Notifications {
		if err := c.SMS.Send(n.Phone, n.Message); err != nil {
			c.Log.Warn().Err(err).Str("order_id", ev.OrderID).Msg("seller sms failed")
			continue
		}
		c.Log.Info().Str("order_id", ev.OrderID).Msg("seller sms sent")
	}
}
