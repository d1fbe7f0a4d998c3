package email

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type recordingDialer struct {
	sent  []*gomail.Message
	err   error
	delay time.Duration
}

func (d *recordingDialer) DialAndSend(m ...*gomail.Message) error {
	if d.delay > 0 {
		time.Sleep(d.delay)
	}
	d.sent = append(d.sent, m...)
	return d.err
}

func TestNewSMTPSender_IncompleteConfig(t *testing.T) {
	testCases := []struct {
		name string
		cfg  config.SMTPConfig
	}{
		{"missing host", config.SMTPConfig{Port: 587, SenderEmail: "orders@sharaya.app"}},
		{"missing port", config.SMTPConfig{Host: "smtp.example.com", SenderEmail: "orders@sharaya.app"}},
		{"missing sender", config.SMTPConfig{Host: "smtp.example.com", Port: 587}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sender, err := NewSMTPSender(tc.cfg, logger.NewNop())
			assert.Nil(t, sender)
			assert.EqualError(t, err, "SMTP host, port, and sender email must be configured")
		})
	}
}

func TestSMTPSender_Send(t *testing.T) {
	d := &recordingDialer{}
	s := &smtpSender{from: "orders@sharaya.app", log: logger.NewNop(), d: d}

	err := s.Send(context.Background(), []string{"buyer@example.com"}, "Order confirmed", "<p>Thanks</p>", "Thanks")
	require.NoError(t, err)
	require.Len(t, d.sent, 1)

	msg := d.sent[0]
	assert.Equal(t, []string{"orders@sharaya.app"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"buyer@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Order confirmed"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "text/plain")
	assert.Contains(t, buf.String(), "text/html")
}

func TestSMTPSender_SendValidation(t *testing.T) {
	s := &smtpSender{from: "orders@sharaya.app", log: logger.NewNop(), d: &recordingDialer{}}

	assert.Error(t, s.Send(context.Background(), nil, "s", "", "body"))
	assert.Error(t, s.Send(context.Background(), []string{"a@b.c"}, "s", "", ""))
}

func TestSMTPSender_DialFailureAndTimeout(t *testing.T) {
	s := &smtpSender{from: "orders@sharaya.app", log: logger.NewNop(), d: &recordingDialer{err: errors.New("535 auth failed")}}
	err := s.Send(context.Background(), []string{"a@b.c"}, "s", "", "body")
	assert.ErrorContains(t, err, "535 auth failed")

	slow := &smtpSender{from: "orders@sharaya.app", log: logger.NewNop(), d: &recordingDialer{delay: 200 * time.Millisecond}}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err = slow.Send(ctx, []string{"a@b.c"}, "s", "", "body")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
