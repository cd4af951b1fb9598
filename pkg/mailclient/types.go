package mailclient

// Credential contains SMTP account information.
type Credential struct {
	ServerHost string `validate:"required"`
	ServerPort int    `validate:"required"`
	Username   string `validate:"required"`
	Password   string `validate:"required"`

	// SenderName and SenderAddr are used as the From header on every
	// outgoing message unless the Email overrides them.
	SenderName string
	SenderAddr string `validate:"required,email"`
}

// Attachment is one file attached to an outgoing email. Either Content
// holds the raw bytes or Path points to a file on disk.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
	Path        string
}

// Email is a single outgoing message.
type Email struct {
	To          string `validate:"required,email"`
	Subject     string `validate:"required"`
	HTML        string
	Text        string
	Attachments []Attachment
}

// Receipt is returned after a successful delivery.
type Receipt struct {
	To        string `json:"to"`
	MessageID string `json:"messageId"`
}

type sendOptions struct {
	dryRun bool
}

// SendOption modifies how Send behaves.
type SendOption func(*sendOptions)

// DryRun composes the full MIME message but skips the network transaction.
func DryRun() SendOption {
	return func(o *sendOptions) {
		o.dryRun = true
	}
}
