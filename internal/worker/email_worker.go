package worker

// email_worker.go handles QueueEmail: notification mail and RFQ documents.

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/alimarchal/maharat-sub001/internal/infra"
	"github.com/alimarchal/maharat-sub001/internal/service"

	"github.com/rs/zerolog/log"
)

// MailSender sends one message.
type MailSender interface {
	Send(msg infra.Mail) error
}

// EmailHandler delivers service.EmailMessage payloads. Malformed payloads are
// dropped rather than retried.
func EmailHandler(mailer MailSender) Handler {
	return func(_ context.Context, raw json.RawMessage) error {
		var msg service.EmailMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Error().Err(err).Msg("email_worker: invalid payload")
			return nil
		}
		if msg.To == "" {
			log.Warn().Msg("email_worker: empty recipient, skipping")
			return nil
		}
		err := mailer.Send(infra.Mail{
			To:             msg.To,
			Subject:        msg.Subject,
			Body:           msg.Body,
			AttachmentPath: msg.AttachmentPath,
		})
		if err != nil {
			if errors.Is(err, infra.ErrBreakerOpen) {
				log.Warn().Str("to", msg.To).Msg("email_worker: SMTP breaker open")
			}
			return err
		}
		log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("email_worker: sent")
		return nil
	}
}
