package mailclient

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errFake550 = errors.New("550 5.1.1 mailbox unavailable")

func testCredential() *Credential {
	return &Credential{
		ServerHost: "smtp.gmail.com",
		ServerPort: 587,
		Username:   "xxx@gmail.com",
		Password:   "---",
		SenderName: "ONGC Dehradun - SAIL",
		SenderAddr: "xxx@gmail.com",
	}
}

func TestNewSmtp(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		client, err := NewSmtp(&SmtpMailerConfig{Credential: testCredential()})
		assert.NotNil(t, client)
		assert.NoError(t, err)
	})

	t.Run("missing credential", func(t *testing.T) {
		client, err := NewSmtp(&SmtpMailerConfig{})
		assert.Nil(t, client)
		assert.Error(t, err)
	})
}

func TestSendDryRun(t *testing.T) {
	ctx := context.TODO()
	client, err := NewSmtp(&SmtpMailerConfig{Credential: testCredential()})
	assert.NoError(t, err)

	t.Run("stamps message id", func(t *testing.T) {
		receipt, err := client.Send(ctx, Email{
			To:      "alice@example.com",
			Subject: "Your Internship Application",
			HTML:    "<p>Dear Alice,</p><p>Thank you for applying.</p>",
		}, DryRun())

		assert.NoError(t, err)
		assert.Equal(t, "alice@example.com", receipt.To)
		assert.Contains(t, receipt.MessageID, "@gmail.com")
	})

	t.Run("invalid recipient", func(t *testing.T) {
		_, err := client.Send(ctx, Email{
			To:      "not-an-address",
			Subject: "Your Internship Application",
		}, DryRun())

		assert.Error(t, err)
	})
}

func TestComposeMessage(t *testing.T) {
	cred := testCredential()

	t.Run("html with derived text part", func(t *testing.T) {
		msg := composeMessage(cred, Email{
			To:      "alice@example.com",
			Subject: "Your Internship Application",
			HTML:    "<p>Dear <b>Alice</b>,</p>",
		}, "abc@gmail.com")

		var buf bytes.Buffer
		_, err := msg.WriteTo(&buf)
		assert.NoError(t, err)

		raw := buf.String()
		assert.Contains(t, raw, "Subject: Your Internship Application")
		assert.Contains(t, raw, "Message-Id: <abc@gmail.com>")
		assert.Contains(t, raw, "text/plain")
		assert.Contains(t, raw, "text/html")
	})

	t.Run("inline attachment", func(t *testing.T) {
		msg := composeMessage(cred, Email{
			To:      "alice@example.com",
			Subject: "Your Internship Application",
			Text:    "see attachment",
			Attachments: []Attachment{
				{
					Filename:    "ONGC_Internship_Application_Form_Filled.pdf",
					ContentType: "application/pdf",
					Content:     []byte("%PDF-1.4 fake"),
				},
			},
		}, "abc@gmail.com")

		var buf bytes.Buffer
		_, err := msg.WriteTo(&buf)
		assert.NoError(t, err)

		assert.Contains(t, buf.String(), "ONGC_Internship_Application_Form_Filled.pdf")
	})
}

func TestPlainText(t *testing.T) {
	out := PlainText("<p>Dear <b>Alice</b> &amp; family,</p>")
	assert.Equal(t, "Dear Alice & family,", out)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Contains(t, UserMessage(categorize("auth", assert.AnError)), "credentials")
	assert.Contains(t, UserMessage(categorize("dial", assert.AnError)), "connect")
	assert.Contains(t, UserMessage(categorize("rcpt", errFake550)), "recipient")
	assert.Equal(t, "Failed to send email", UserMessage(assert.AnError))
}
