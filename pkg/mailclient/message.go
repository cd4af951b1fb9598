package mailclient

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/satori/uuid"
	gomail "gopkg.in/gomail.v2"
)

var stripPolicy = bluemonday.StrictPolicy()

// PlainText strips all markup from an HTML body so the message can carry
// a text/plain part for clients that cannot render HTML.
func PlainText(htmlBody string) string {
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(htmlBody)))
}

// NewMessageID generates an RFC 5322 Message-Id scoped to the sender domain.
func NewMessageID(senderAddr string) string {
	domain := "localhost"
	if at := strings.LastIndex(senderAddr, "@"); at >= 0 && at < len(senderAddr)-1 {
		domain = senderAddr[at+1:]
	}

	return fmt.Sprintf("%s@%s", uuid.NewV4().String(), domain)
}

// composeMessage builds the full MIME message for one recipient.
// The text/plain part is derived from the HTML body when not given.
func composeMessage(cred *Credential, email Email, messageID string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", cred.SenderAddr, cred.SenderName)
	m.SetHeader("To", email.To)
	m.SetHeader("Subject", email.Subject)
	m.SetHeader("Message-Id", fmt.Sprintf("<%s>", messageID))

	text := email.Text
	if text == "" && email.HTML != "" {
		text = PlainText(email.HTML)
	}

	switch {
	case text != "" && email.HTML != "":
		m.SetBody("text/plain", text)
		m.AddAlternative("text/html", email.HTML)
	case email.HTML != "":
		m.SetBody("text/html", email.HTML)
	default:
		m.SetBody("text/plain", text)
	}

	for _, att := range email.Attachments {
		att := att
		switch {
		case len(att.Content) > 0:
			settings := []gomail.FileSetting{
				gomail.SetCopyFunc(func(w io.Writer) error {
					_, err := w.Write(att.Content)
					return err
				}),
			}

			if att.ContentType != "" {
				settings = append(settings, gomail.SetHeader(map[string][]string{
					"Content-Type": {att.ContentType},
				}))
			}

			m.Attach(att.Filename, settings...)

		case att.Path != "":
			m.Attach(att.Path, gomail.Rename(att.Filename))
		}
	}

	return m
}
