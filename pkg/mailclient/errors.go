package mailclient

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel categories for delivery failures. Callers match with errors.Is
// to decide which user-facing message to report per recipient.
var (
	ErrAuth       = errors.New("smtp authentication failed")
	ErrConnection = errors.New("smtp connection failed")
	ErrRecipient  = errors.New("recipient rejected by server")
)

// UserMessage maps a delivery error to a message safe to show in a report.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAuth):
		return "Email authentication failed. Please check your email credentials."
	case errors.Is(err, ErrConnection):
		return "Failed to connect to email server. Please check your network connection."
	case errors.Is(err, ErrRecipient):
		return "Email rejected by recipient server. Please check the recipient email address."
	}

	return "Failed to send email"
}

// categorize wraps a raw SMTP error with the matching sentinel.
// Servers report permanent recipient failures with a 550 reply code.
func categorize(stage string, err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	switch {
	case stage == "auth" || strings.Contains(msg, "535"):
		return fmt.Errorf("%w: %s: %s", ErrAuth, stage, msg)
	case strings.Contains(msg, "550"):
		return fmt.Errorf("%w: %s: %s", ErrRecipient, stage, msg)
	case stage == "dial" || stage == "starttls" || stage == "noop" || stage == "reset":
		return fmt.Errorf("%w: %s: %s", ErrConnection, stage, msg)
	}

	return fmt.Errorf("send %s: %s", stage, msg)
}
