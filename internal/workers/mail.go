// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fullstack-auth/internal/adapter"
	"github.com/MKhiriev/go-fullstack-auth/internal/logger"
	"github.com/MKhiriev/go-fullstack-auth/models"
)

const (
	defaultMailQueueSize = 100

	// drainTimeout bounds delivery of mail still queued at shutdown.
	drainTimeout = 5 * time.Second
)

// MailWorker delivers queued mail through an [adapter.MailSender].
// Enqueue never blocks: a full queue rejects the message.
type MailWorker struct {
	queue  chan models.Email
	sender adapter.MailSender
	logger *logger.Logger
}

// NewMailWorker creates a MailWorker with room for size messages.
// A non-positive size falls back to the default capacity.
func NewMailWorker(sender adapter.MailSender, size int, logger *logger.Logger) *MailWorker {
	if size <= 0 {
		size = defaultMailQueueSize
	}

	return &MailWorker{
		queue:  make(chan models.Email, size),
		sender: sender,
		logger: logger,
	}
}

// Enqueue schedules email for delivery. Returns [ErrMailQueueFull] when the
// queue has no free slot.
func (w *MailWorker) Enqueue(email models.Email) error {
	select {
	case w.queue <- email:
		return nil
	default:
		w.logger.Error().Str("func", "MailWorker.Enqueue").Int("capacity", cap(w.queue)).Msg("mail queue is full, message dropped")
		return ErrMailQueueFull
	}
}

// Run sends queued messages until ctx is cancelled, then makes a best-effort
// attempt to deliver what is left in the queue.
func (w *MailWorker) Run(ctx context.Context) {
	for {
		select {
		case email := <-w.queue:
			w.send(ctx, email)
		case <-ctx.Done():
			w.drain(ctx)
			return
		}
	}
}

func (w *MailWorker) drain(ctx context.Context) {
	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), drainTimeout)
	defer cancel()

	for {
		select {
		case email := <-w.queue:
			w.send(drainCtx, email)
		default:
			return
		}
	}
}

func (w *MailWorker) send(ctx context.Context, email models.Email) {
	if err := w.sender.Send(ctx, email); err != nil {
		w.logger.Err(err).Str("func", "MailWorker.send").Str("subject", email.Subject).Msg("failed to send mail")
		return
	}

	w.logger.Debug().Str("func", "MailWorker.send").Str("subject", email.Subject).Msg("mail sent")
}
