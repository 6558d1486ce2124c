package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/alimarchal/maharat-sub001/internal/apierror"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultsCreator creates default notification settings for one user.
type DefaultsCreator interface {
	SetupDefaults(ctx context.Context, userID uuid.UUID) (int, error)
}

// NotificationDefaultsHandler runs SetupDefaults for queued users. A user
// deleted before the job ran is not retried.
func NotificationDefaultsHandler(svc DefaultsCreator) Handler {
	return func(ctx context.Context, raw json.RawMessage) error {
		var p NotificationDefaultsPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			log.Error().Err(err).Msg("notification_worker: invalid payload")
			return nil
		}
		created, err := svc.SetupDefaults(ctx, p.UserID)
		var apiErr *apierror.Error
		if errors.As(err, &apiErr) && apiErr.Kind == apierror.KindNotFound {
			log.Warn().Str("user_id", p.UserID.String()).Msg("notification_worker: user vanished")
			return nil
		}
		if err != nil {
			return err
		}
		log.Info().Str("user_id", p.UserID.String()).Int("created", created).Msg("notification_worker: defaults created")
		return nil
	}
}
