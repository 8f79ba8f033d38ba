package notify

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSSender sends text messages through the Twilio REST API.
type SMSSender struct {
	client *twilio.RestClient
	from   string
}

// NewSMSSender builds a sender; empty credentials disable it.
func NewSMSSender(accountSID, authToken, from string) *SMSSender {
	if accountSID == "" || authToken == "" || from == "" {
		return &SMSSender{}
	}
	return &SMSSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
	}
}

// Enabled reports whether Twilio credentials are configured.
func (s *SMSSender) Enabled() bool { return s != nil && s.client != nil }

// Send delivers one SMS. Single attempt; the error is the caller's to
// log and ignore.
func (s *SMSSender) Send(to, body string) error {
	if !s.Enabled() {
		return fmt.Errorf("sms not configured")
	}
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)
	_, err := s.client.Api.CreateMessage(params)
	return err
}
