package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"gopkg.in/gomail.v2"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// SMTPMailer notifies the admin inbox about new enquiries.
type SMTPMailer struct {
	dialer dialer
	from   string
	to     string
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
		to:     cfg.To,
	}
}

// NotifyEnquiry returns when the message is sent or ctx is done, whichever
// comes first. gomail has no context support, so an abandoned send finishes
// in the background.
func (m *SMTPMailer) NotifyEnquiry(ctx context.Context, e *domain.Enquiry) error {
	msg := m.enquiryMessage(e)
	sent := make(chan error, 1)
	go func() { sent <- m.dialer.DialAndSend(msg) }()

	select {
	case err := <-sent:
		if err != nil {
			return fmt.Errorf("send enquiry notification: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send enquiry notification: %w", ctx.Err())
	}
}

func (m *SMTPMailer) enquiryMessage(e *domain.Enquiry) *gomail.Message {
	listing := e.PropertyID
	if e.Property != nil {
		listing = fmt.Sprintf("%s (%s)", e.Property.Title, e.Property.City)
	}

	var body strings.Builder
	fmt.Fprintf(&body, "New enquiry for %s\n\n", listing)
	fmt.Fprintf(&body, "Name:    %s\n", e.Name)
	fmt.Fprintf(&body, "Email:   %s\n", e.Email)
	fmt.Fprintf(&body, "Phone:   %s\n", e.Phone)
	fmt.Fprintf(&body, "\n%s\n", e.Message)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Reply-To", e.Email)
	msg.SetHeader("Subject", "New enquiry: "+listing)
	msg.SetBody("text/plain", body.String())
	return msg
}
