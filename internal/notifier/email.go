package notifier

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"

	mail "github.com/wneessen/go-mail"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/amishk599/jobdigest/internal/model"
)

// Default mail-submission endpoint (implicit TLS).
const (
	DefaultSMTPHost = "smtp.gmail.com"
	DefaultSMTPPort = 465
)

// Ensure EmailNotifier implements model.Notifier.
var _ model.Notifier = (*EmailNotifier)(nil)

// EmailNotifier submits each digest as one message over an authenticated
// SMTPS session.
type EmailNotifier struct {
	host      string
	port      int
	username  string
	password  string
	tlsConfig *tls.Config
	logger    *slog.Logger
}

// Option customises an EmailNotifier.
type Option func(*EmailNotifier)

// WithEndpoint overrides the SMTP host and port.
func WithEndpoint(host string, port int) Option {
	return func(n *EmailNotifier) {
		n.host = host
		n.port = port
	}
}

// WithTLSConfig overrides the TLS configuration used for the session.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(n *EmailNotifier) {
		n.tlsConfig = cfg
	}
}

// NewEmailNotifier returns a notifier that authenticates as username with
// password against smtp.gmail.com:465 unless overridden.
func NewEmailNotifier(username, password string, logger *slog.Logger, opts ...Option) *EmailNotifier {
	n := &EmailNotifier{
		host:     DefaultSMTPHost,
		port:     DefaultSMTPPort,
		username: username,
		password: password,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.tlsConfig == nil {
		n.tlsConfig = &tls.Config{ServerName: n.host, MinVersion: tls.VersionTLS12}
	}
	return n
}

// Notify builds msg and sends it to its single recipient. The SMTP session is
// closed before returning, whether or not the send succeeded.
func (n *EmailNotifier) Notify(ctx context.Context, msg model.MailMessage) (err error) {
	ctx, span := otel.Tracer("jobdigest/notifier/email").Start(ctx, "notifier.email.send")
	span.SetAttributes(
		attribute.String("smtp.host", n.host),
		attribute.Int("smtp.port", n.port),
		attribute.String("mail.subject", msg.Subject),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	m, err := buildMsg(msg)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(n.host,
		mail.WithPort(n.port),
		mail.WithSSL(),
		mail.WithTLSConfig(n.tlsConfig),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.username),
		mail.WithPassword(n.password),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err := client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("dial smtp %s:%d: %w", n.host, n.port, err)
	}
	defer func() {
		if cerr := client.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close smtp session: %w", cerr)
		}
	}()

	if err := client.Send(m); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	n.logger.Info("email sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

// buildMsg converts msg into a go-mail message. With a plain body the result
// is multipart/alternative (plain first, HTML preferred); otherwise HTML only.
func buildMsg(msg model.MailMessage) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("invalid from address %q: %w", msg.From, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid to address %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)

	if msg.PlainBody != "" {
		m.SetBodyString(mail.TypeTextPlain, msg.PlainBody)
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTMLBody)
	} else {
		m.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)
	}
	return m, nil
}
