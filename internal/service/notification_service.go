package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alimarchal/maharat-sub001/internal/apierror"
	"github.com/alimarchal/maharat-sub001/internal/dto"
	"github.com/alimarchal/maharat-sub001/internal/metrics"
	"github.com/alimarchal/maharat-sub001/internal/model"
	"github.com/alimarchal/maharat-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ChannelEmail is the only channel with a delivery transport.
const ChannelEmail = "email"

// SettingState is a stored preference or its absence. Absence means "use the
// default" and is only collapsed to a boolean by Resolve at delivery time.
type SettingState uint8

const (
	SettingAbsent SettingState = iota
	SettingEnabled
	SettingDisabled
)

func (s SettingState) String() string {
	switch s {
	case SettingEnabled:
		return "enabled"
	case SettingDisabled:
		return "disabled"
	default:
		return "absent"
	}
}

// Resolve returns the stored value, or def when no row exists.
func (s SettingState) Resolve(def bool) bool {
	switch s {
	case SettingEnabled:
		return true
	case SettingDisabled:
		return false
	default:
		return def
	}
}

func stateOf(enabled bool) SettingState {
	if enabled {
		return SettingEnabled
	}
	return SettingDisabled
}

// SettingsMatrix is type key → channel key → enabled, built only from stored
// rows. Pairs without a row are absent, never false.
type SettingsMatrix map[string]map[string]bool

// EmailMessage is the payload of an email job.
type EmailMessage struct {
	To             string `json:"to"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	AttachmentPath string `json:"attachment_path,omitempty"`
}

// Jobs enqueues background work.
type Jobs interface {
	EnqueueEmail(ctx context.Context, msg EmailMessage) error
	EnqueueNotificationDefaults(ctx context.Context, userID uuid.UUID) error
}

// Notifier delivers a notification of typeKey to a user on every channel the
// user has not disabled.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, typeKey, subject, body string) error
}

// NotificationSettingsService resolves and updates the per-user
// (type, channel) preference matrix.
type NotificationSettingsService interface {
	Notifier
	// SetupDefaults stores enabled=true for every active (type, channel) pair
	// the user has no row for. Running it again creates nothing.
	SetupDefaults(ctx context.Context, userID uuid.UUID) (int, error)
	GetSettings(ctx context.Context, userID uuid.UUID) (SettingsMatrix, error)
	Lookup(ctx context.Context, userID, typeID, channelID uuid.UUID) (SettingState, error)
	// UpdateSettings upserts every tuple keyed on (user, type, channel) as one
	// atomic batch. A triple repeated in the batch ends with its last value.
	UpdateSettings(ctx context.Context, userID uuid.UUID, settings []dto.SettingInput) error
	// CatalogChanged drops every cached matrix after a notification type or
	// channel is created, renamed or deleted.
	CatalogChanged(ctx context.Context)
}

type notificationSettingsService struct {
	repo  repository.NotificationSettingRepository
	users repository.UserRepository
	cache SettingsCache
	jobs  Jobs
}

func NewNotificationSettingsService(
	repo repository.NotificationSettingRepository,
	users repository.UserRepository,
	cache SettingsCache,
	jobs Jobs,
) NotificationSettingsService {
	if cache == nil {
		cache = noopSettingsCache{}
	}
	return &notificationSettingsService{repo: repo, users: users, cache: cache, jobs: jobs}
}

func (s *notificationSettingsService) SetupDefaults(ctx context.Context, userID uuid.UUID) (int, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return 0, err
	}
	types, err := s.repo.ActiveTypes(ctx)
	if err != nil {
		return 0, err
	}
	channels, err := s.repo.ActiveChannels(ctx)
	if err != nil {
		return 0, err
	}

	rows := make([]model.NotificationSetting, 0, len(types)*len(channels))
	for _, t := range types {
		for _, c := range channels {
			rows = append(rows, model.NotificationSetting{
				UserID:                userID,
				NotificationTypeID:    t.ID,
				NotificationChannelID: c.ID,
				Enabled:               true,
			})
		}
	}

	created, err := s.repo.CreateIfAbsent(ctx, rows)
	if err != nil {
		return 0, err
	}
	if created > 0 {
		metrics.NotificationDefaultsCreatedTotal.Add(float64(created))
		s.cache.Invalidate(ctx, userID)
	}
	log.Debug().Str("user_id", userID.String()).Int64("created", created).Msg("notification defaults applied")
	return int(created), nil
}

func (s *notificationSettingsService) GetSettings(ctx context.Context, userID uuid.UUID) (SettingsMatrix, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	m, stamp, ok := s.cache.Get(ctx, userID)
	if ok {
		return m, nil
	}
	rows, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	m = SettingsMatrix{}
	for _, row := range rows {
		if row.NotificationType == nil || row.NotificationChannel == nil {
			continue
		}
		byChannel, ok := m[row.NotificationType.Key]
		if !ok {
			byChannel = map[string]bool{}
			m[row.NotificationType.Key] = byChannel
		}
		byChannel[row.NotificationChannel.Key] = row.Enabled
	}
	s.cache.Set(ctx, userID, stamp, m)
	return m, nil
}

func (s *notificationSettingsService) Lookup(ctx context.Context, userID, typeID, channelID uuid.UUID) (SettingState, error) {
	row, err := s.repo.Find(ctx, userID, typeID, channelID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return SettingAbsent, nil
	}
	if err != nil {
		return SettingAbsent, err
	}
	return stateOf(row.Enabled), nil
}

func (s *notificationSettingsService) UpdateSettings(ctx context.Context, userID uuid.UUID, settings []dto.SettingInput) error {
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}

	typeIDs := make([]uuid.UUID, 0, len(settings))
	channelIDs := make([]uuid.UUID, 0, len(settings))
	for _, in := range settings {
		typeIDs = append(typeIDs, in.TypeID)
		channelIDs = append(channelIDs, in.ChannelID)
	}
	if err := s.ensureAll(ctx, s.repo.CountTypes, typeIDs, "Notification type not found"); err != nil {
		return err
	}
	if err := s.ensureAll(ctx, s.repo.CountChannels, channelIDs, "Notification channel not found"); err != nil {
		return err
	}

	rows := make([]model.NotificationSetting, 0, len(settings))
	for _, in := range settings {
		rows = append(rows, model.NotificationSetting{
			UserID:                userID,
			NotificationTypeID:    in.TypeID,
			NotificationChannelID: in.ChannelID,
			Enabled:               *in.Enabled,
		})
	}
	if err := s.repo.UpsertAll(ctx, rows); err != nil {
		return err
	}
	metrics.NotificationSettingsUpsertsTotal.Add(float64(len(rows)))
	s.cache.Invalidate(ctx, userID)
	return nil
}

func (s *notificationSettingsService) Notify(ctx context.Context, userID uuid.UUID, typeKey, subject, body string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	ntype, err := s.repo.TypeByKey(ctx, typeKey)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn().Str("type", typeKey).Msg("notify: unknown notification type")
		return nil
	}
	if err != nil {
		return err
	}
	if !ntype.IsActive {
		return nil
	}
	channels, err := s.repo.ActiveChannels(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, ch := range channels {
		state, err := s.Lookup(ctx, userID, ntype.ID, ch.ID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !state.Resolve(true) {
			continue
		}
		if ch.Key != ChannelEmail {
			log.Info().
				Str("user_id", userID.String()).
				Str("type", typeKey).
				Str("channel", ch.Key).
				Msg("notify: channel has no transport")
			continue
		}
		msg := EmailMessage{To: user.Email, Subject: subject, Body: body}
		if err := s.jobs.EnqueueEmail(ctx, msg); err != nil {
			errs = append(errs, fmt.Errorf("enqueue email: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (s *notificationSettingsService) CatalogChanged(ctx context.Context) {
	s.cache.InvalidateAll(ctx)
}

func (s *notificationSettingsService) ensureUser(ctx context.Context, userID uuid.UUID) error {
	_, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NotFound("User not found")
	}
	return err
}

func (s *notificationSettingsService) ensureAll(
	ctx context.Context,
	count func(context.Context, []uuid.UUID) (int64, error),
	ids []uuid.UUID,
	msg string,
) error {
	ids = distinct(ids)
	n, err := count(ctx, ids)
	if err != nil {
		return err
	}
	if n != int64(len(ids)) {
		return apierror.NotFound(msg)
	}
	return nil
}

func distinct(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
