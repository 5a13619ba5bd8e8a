// Package notify sends result, welcome and report emails and remembers the
// address an anonymous visitor left for their quiz session.
package notify

import (
	"context"
	"fmt"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/bizmodel-ai/backend/internal/config"
)

type Message struct {
	To      string
	Subject string
	HTML    []byte
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NewMailer returns an SMTP mailer, or a log mailer when no host is set.
func NewMailer(cfg config.SMTP, log *zap.Logger) (Mailer, error) {
	if cfg.Host == "" {
		log.Warn("SMTP host is empty, emails will only be logged")
		return &LogMailer{log: log}, nil
	}
	m, err := NewSMTPMailer(cfg)
	if err != nil {
		return nil, err
	}
	return m, nil
}

type SMTPMailer struct {
	addr     string
	auth     smtp.Auth
	from     string
	envelope string
}

func NewSMTPMailer(cfg config.SMTP) (*SMTPMailer, error) {
	from, err := mail.ParseAddress(cfg.From)
	if err != nil {
		return nil, fmt.Errorf("parse smtp from address: %w", err)
	}

	m := &SMTPMailer{
		addr:     cfg.Host + ":" + strconv.Itoa(cfg.Port),
		from:     from.String(),
		envelope: from.Address,
	}
	if cfg.Username != "" {
		m.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return m, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	to, err := mail.ParseAddress(msg.To)
	if err != nil {
		return fmt.Errorf("parse recipient: %w", err)
	}

	if err := smtp.SendMail(m.addr, m.auth, m.envelope, []string{to.Address}, m.compose(to, msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func (m *SMTPMailer) compose(to *mail.Address, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + m.from + "\r\n")
	b.WriteString("To: " + to.String() + "\r\n")
	b.WriteString("Subject: " + mimeHeader(msg.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.Write(msg.HTML)
	b.WriteString("\r\n")
	return []byte(b.String())
}

// mimeHeader strips line breaks so a subject cannot inject headers.
func mimeHeader(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

// LogMailer records emails instead of sending them. Used in local
// development and whenever SMTP is not configured.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.log.Info("email not sent, SMTP disabled",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("bytes", len(msg.HTML)),
	)
	return nil
}
