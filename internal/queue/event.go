// Package queue defines the notification events exchanged over the
// message broker and the background consumer that delivers them.
package queue

import "encoding/json"

// Queue name for all notification events.
const NotificationQueue = "farmkeep.notifications"

// Event kinds.
const (
	KindTaskReminder    = "task.reminder"
	KindPaymentVerified = "payment.verified"
)

// Envelope wraps every message on the notification queue.
type Envelope struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// TaskReminderEvent asks the consumer to email a user their tasks due
// today. The handler resolves everything up front so the consumer needs
// no database access.
type TaskReminderEvent struct {
	UserID   uint64   `json:"user_id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Date     string   `json:"date"`
	Titles   []string `json:"titles"`
	Notes    []string `json:"notes"`
}

// SellerSMS is one resolved SMS to a seller whose goods were paid for.
type SellerSMS struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// PaymentVerifiedEvent fans out SMS notifications after an admin
// verifies a payment. Sellers without a phone on file are resolved to an
// empty list by the publisher side and simply not notified.
type PaymentVerifiedEvent struct {
	OrderID       string      `json:"order_id"`
	TotalAmount   float64     `json:"total_amount"`
	Notifications []SellerSMS `json:"notifications"`
}
