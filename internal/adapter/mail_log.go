// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"

	"github.com/MKhiriev/go-fullstack-auth/internal/logger"
	"github.com/MKhiriev/go-fullstack-auth/models"
)

// logMailSender writes outgoing mail to the log. It is used in development
// when no SMTP server is configured. Bodies carry live reset links, so they
// are only written at debug level.
type logMailSender struct {
	logger *logger.Logger
}

func NewLogMailSender(logger *logger.Logger) MailSender {
	return &logMailSender{logger: logger}
}

func (s *logMailSender) Send(ctx context.Context, email models.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.logger.Info().
		Str("to", email.To).
		Str("subject", email.Subject).
		Msg("email")

	s.logger.Debug().
		Str("to", email.To).
		Str("body", email.Body).
		Msg("email body")

	return nil
}
