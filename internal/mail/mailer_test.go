// File: internal/mail/mailer_test.go
package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTPMailer_Validation(t *testing.T) {
	_, err := NewSMTPMailer(SMTPSettings{Port: 587, From: "noreply@example.com"})
	assert.Error(t, err, "missing host should be rejected")

	_, err = NewSMTPMailer(SMTPSettings{Host: "smtp.example.com", Port: 587})
	assert.Error(t, err, "missing from address should be rejected")

	m, err := NewSMTPMailer(SMTPSettings{Host: "smtp.example.com", From: "noreply@example.com"})
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestBuildMessage(t *testing.T) {
	got := buildMessage("noreply@example.com", Message{
		To:      "user@example.com",
		Subject: "Your Verification Code",
		Body:    "Your verification code is: 123456",
	})

	assert.Contains(t, got, "From: \"notes-app\" <noreply@example.com>\r\n")
	assert.Contains(t, got, "To: user@example.com\r\n")
	assert.Contains(t, got, "Subject: Your Verification Code\r\n")
	assert.Contains(t, got, "\r\n\r\nYour verification code is: 123456\r\n")
}
