package mailclient

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"sync"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"go.uber.org/multierr"

	"github.com/sailhq/sailpost/pkg/validator"
)

type SmtpMailerConfig struct {
	Credential *Credential `validate:"required"`
}

// SmtpMailer sends email over a single SMTP session that is opened lazily
// and reused across deliveries.
type SmtpMailer struct {
	Config *SmtpMailerConfig
	smtp   *smtp.Client
	lock   sync.Mutex
}

var _ Client = (*SmtpMailer)(nil)

// NewSmtp returns a new smtp client without any real connection made.
// It connects on the first Verify or Send (except in dry-run mode).
func NewSmtp(cfg *SmtpMailerConfig) (*SmtpMailer, error) {
	err := validator.Validate(cfg)
	if err != nil {
		err = fmt.Errorf("smtp mailer config error: %w", err)
		return nil, err
	}

	mailer := &SmtpMailer{
		Config: cfg,
	}

	return mailer, nil
}

// Verify ensures the credential can open an authenticated session.
// The session stays open so the following Send calls reuse it.
func (m *SmtpMailer) Verify(ctx context.Context) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	err := m.ensureClient(ctx)
	if err != nil {
		return err
	}

	err = m.smtp.Noop()
	if err != nil {
		// connection may have gone stale, drop it so the next call redials
		m.dropClient()
		return categorize("noop", err)
	}

	return nil
}

func (m *SmtpMailer) Send(ctx context.Context, email Email, opts ...SendOption) (receipt Receipt, err error) {
	opt := &sendOptions{}
	for _, o := range opts {
		o(opt)
	}

	err = validator.Validate(email)
	if err != nil {
		err = fmt.Errorf("email validation error: %w", err)
		return
	}

	messageID := NewMessageID(m.Config.Credential.SenderAddr)
	msg := composeMessage(m.Config.Credential, email, messageID)

	receipt = Receipt{
		To:        email.To,
		MessageID: messageID,
	}

	if opt.dryRun {
		return
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	err = m.ensureClient(ctx)
	if err != nil {
		return
	}

	// RSET aborts any started mail transaction (tools.ietf.org/html/rfc5321#section-4.1.1.5).
	err = m.smtp.Reset()
	if err != nil {
		m.dropClient()
		err = categorize("reset", err)
		return
	}

	err = m.smtp.Mail(m.Config.Credential.SenderAddr, nil)
	if err != nil {
		err = categorize("mail", err)
		return
	}

	err = m.smtp.Rcpt(email.To)
	if err != nil {
		err = categorize("rcpt", err)
		return
	}

	wc, err := m.smtp.Data()
	if err != nil {
		err = categorize("data", err)
		return
	}

	_, err = msg.WriteTo(wc)
	if err != nil {
		_ = wc.Close()
		err = fmt.Errorf("error writing message body: %w", err)
		return
	}

	err = wc.Close()
	if err != nil {
		err = categorize("data", err)
		return
	}

	return
}

// Close .
// https://stackoverflow.com/questions/2468851/when-should-i-send-quit-to-smtp-server-and-how-long-should-i-keep-a-session
func (m *SmtpMailer) Close() error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.smtp == nil {
		return nil
	}

	var err error
	_err := m.smtp.Quit()
	if _err == nil {
		m.smtp = nil
		return nil
	}

	err = multierr.Append(err, fmt.Errorf("quit command error: %w", _err))
	_err = m.smtp.Close()
	if _err != nil {
		err = multierr.Append(err, fmt.Errorf("close command error: %w", _err))
	}

	m.smtp = nil
	return err
}

// ensureClient opens the session on first use. Callers must hold the lock.
func (m *SmtpMailer) ensureClient(ctx context.Context) error {
	if m.smtp != nil {
		return nil
	}

	c, err := initClient(ctx, m.Config.Credential)
	if err != nil {
		return err
	}

	m.smtp = c
	return nil
}

func (m *SmtpMailer) dropClient() {
	if m.smtp == nil {
		return
	}

	_ = m.smtp.Close()
	m.smtp = nil
}

// ----- Function here is intended to be a simple function (not a method handler in a struct),
// because it is easier to debug and test, and it cannot touch stateful variables.

func initClient(ctx context.Context, cred *Credential) (*smtp.Client, error) {
	err := validator.Validate(cred)
	if err != nil {
		err = fmt.Errorf("email credential error: %w", err)
		return nil, err
	}

	smtpAddr := fmt.Sprintf("%s:%d", cred.ServerHost, cred.ServerPort)

	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", smtpAddr)
	if err != nil {
		return nil, categorize("dial", err)
	}

	c, err := smtp.NewClient(conn, cred.ServerHost)
	if err != nil {
		return nil, categorize("dial", err)
	}

	err = c.StartTLS(&tls.Config{ServerName: cred.ServerHost})
	if err != nil {
		return nil, categorize("starttls", err)
	}

	err = c.Auth(sasl.NewPlainClient("", cred.Username, cred.Password))
	if err != nil {
		return nil, categorize("auth", err)
	}

	err = c.Noop()
	if err != nil {
		return nil, categorize("noop", err)
	}

	return c, nil
}
