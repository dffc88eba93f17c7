package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type mockDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *mockDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

// stalledDialer never answers until released.
type stalledDialer struct{ release chan struct{} }

func (d stalledDialer) DialAndSend(...*gomail.Message) error {
	<-d.release
	return nil
}

func testEnquiry() *domain.Enquiry {
	return &domain.Enquiry{
		Name:       "Asha",
		Email:      "asha@example.com",
		Phone:      "9876543210",
		Message:    "Is parking included?",
		PropertyID: "665f1c2b9d1e8a0012345678",
		Property:   &domain.PropertySummary{Title: "Sea view flat", City: "Mumbai"},
	}
}

func TestNotifyEnquiry(t *testing.T) {
	d := &mockDialer{}
	m := &SMTPMailer{dialer: d, from: "noreply@example.com", to: "admin@example.com"}

	require.NoError(t, m.NotifyEnquiry(context.Background(), testEnquiry()))
	require.Len(t, d.sent, 1)

	msg := d.sent[0]
	assert.Equal(t, []string{"admin@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"asha@example.com"}, msg.GetHeader("Reply-To"))
	assert.Equal(t, []string{"New enquiry: Sea view flat (Mumbai)"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "9876543210")
}

func TestNotifyEnquiry_DanglingPropertyUsesID(t *testing.T) {
	d := &mockDialer{}
	m := &SMTPMailer{dialer: d, from: "noreply@example.com", to: "admin@example.com"}
	e := testEnquiry()
	e.Property = nil

	require.NoError(t, m.NotifyEnquiry(context.Background(), e))
	assert.Equal(t, []string{"New enquiry: 665f1c2b9d1e8a0012345678"}, d.sent[0].GetHeader("Subject"))
}

func TestNotifyEnquiry_SendError(t *testing.T) {
	d := &mockDialer{err: errors.New("smtp down")}
	m := &SMTPMailer{dialer: d, from: "a@example.com", to: "b@example.com"}

	err := m.NotifyEnquiry(context.Background(), testEnquiry())
	assert.ErrorContains(t, err, "smtp down")
}

func TestNotifyEnquiry_GivesUpWhenContextExpires(t *testing.T) {
	d := stalledDialer{release: make(chan struct{})}
	defer close(d.release)
	m := &SMTPMailer{dialer: d, from: "a@example.com", to: "b@example.com"}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := m.NotifyEnquiry(ctx, testEnquiry())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestNewSMTPMailer_FromDefaultsToUsername(t *testing.T) {
	m := NewSMTPMailer(Config{Host: "smtp.example.com", Port: 587, Username: "bot@example.com", To: "admin@example.com"})
	assert.Equal(t, "bot@example.com", m.from)
}
