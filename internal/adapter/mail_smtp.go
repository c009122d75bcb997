// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/MKhiriev/go-fullstack-auth/internal/config"
	"github.com/MKhiriev/go-fullstack-auth/internal/logger"
	"github.com/MKhiriev/go-fullstack-auth/models"
)

const implicitTLSPort = 465

type smtpMailSender struct {
	cfg    config.SMTP
	logger *logger.Logger
}

// NewMailSender returns an SMTP sender when cfg.Host is set and a sender
// that writes mail to the log otherwise.
func NewMailSender(cfg config.SMTP, logger *logger.Logger) (MailSender, error) {
	if cfg.Host == "" {
		logger.Warn().Msg("SMTP host is not configured, outgoing mail is written to the log")
		return NewLogMailSender(logger), nil
	}

	return NewSMTPMailSender(cfg, logger)
}

// NewSMTPMailSender constructs a [MailSender] delivering through the SMTP
// server described by cfg.
func NewSMTPMailSender(cfg config.SMTP, logger *logger.Logger) (MailSender, error) {
	if cfg.Host == "" {
		return nil, ErrSMTPHostRequired
	}
	if cfg.From == "" {
		return nil, ErrSMTPFromRequired
	}

	return &smtpMailSender{cfg: cfg, logger: logger}, nil
}

// Send implements [MailSender]. A new connection is dialed per message.
func (s *smtpMailSender) Send(ctx context.Context, email models.Email) error {
	msg, err := s.message(email)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}

func (s *smtpMailSender) message(email models.Email) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return nil, fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return nil, fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(email.To); err != nil {
		return nil, fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextPlain, email.Body)

	return msg, nil
}

func (s *smtpMailSender) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}

	// implicit TLS on 465, STARTTLS otherwise
	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		if s.cfg.Port == implicitTLSPort {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	if s.cfg.User != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.User),
			mail.WithPassword(s.cfg.Password),
		)
	}

	return opts
}
