// Package notify holds the outbound email and SMS senders. Both are
// best-effort: callers log failures and carry on, they never block or
// roll back the primary operation.
package notify

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends plain-text mail over SMTP with STARTTLS-capable auth.
type Mailer struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// NewMailer builds a Mailer; an empty host disables it.
func NewMailer(host string, port int, user, pass, from string) *Mailer {
	return &Mailer{Host: host, Port: port, User: user, Pass: pass, From: from}
}

// Enabled reports whether SMTP is configured.
func (m *Mailer) Enabled() bool { return m != nil && m.Host != "" }

// Send delivers one message. The MIME envelope is assembled by hand;
// plain text only.
func (m *Mailer) Send(to, subject, body string) error {
	if !m.Enabled() {
		return fmt.Errorf("smtp not configured")
	}
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	auth := smtp.PlainAuth("", m.User, m.Pass, m.Host)
	return smtp.SendMail(addr, auth, m.From, []string{to}, []byte(msg.String()))
}

// TaskReminderBody renders the task-reminder email for tasks due today.
// titles and notes are parallel slices; a missing or empty note renders
// the title alone.
func TaskReminderBody(username, date string, titles, notes []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", username)
	fmt.Fprintf(&b, "You have %d task(s) due today (%s):\n\n", len(titles), date)
	for i, title := range titles {
		b.WriteString("- " + title)
		if i < len(notes) && notes[i] != "" {
			b.WriteString(" - " + notes[i])
		}
		b.WriteString("\n")
	}
	b.WriteString("\nPlease log in to FarmKeep to manage your tasks.\n\nBest regards,\nFarmKeep\n")
	return b.String()
}
