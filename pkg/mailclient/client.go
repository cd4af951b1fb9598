package mailclient

import (
	"context"
	"io"
)

// Client is an interface to send email.
type Client interface {
	io.Closer

	// Verify checks the transport credential and connection without sending anything.
	// It must be cheap enough to call once before every batch.
	Verify(ctx context.Context) error

	// Send delivers one email to one recipient and returns the stamped Message-Id.
	Send(ctx context.Context, email Email, opts ...SendOption) (receipt Receipt, err error)
}
