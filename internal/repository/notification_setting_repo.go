package repository

import (
	"context"
	"time"

	"github.com/alimarchal/maharat-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotificationSettingRepository persists the per-user (type, channel) matrix.
type NotificationSettingRepository interface {
	ActiveTypes(ctx context.Context) ([]model.NotificationType, error)
	ActiveChannels(ctx context.Context) ([]model.NotificationChannel, error)
	TypeByKey(ctx context.Context, key string) (*model.NotificationType, error)
	CountTypes(ctx context.Context, ids []uuid.UUID) (int64, error)
	CountChannels(ctx context.Context, ids []uuid.UUID) (int64, error)

	// ListForUser returns the user's stored rows with type and channel preloaded.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.NotificationSetting, error)
	// Find returns gorm.ErrRecordNotFound when the triple has no row.
	Find(ctx context.Context, userID, typeID, channelID uuid.UUID) (*model.NotificationSetting, error)

	// CreateIfAbsent inserts rows whose triple is not stored yet and reports
	// how many were inserted. Existing rows are left untouched.
	CreateIfAbsent(ctx context.Context, rows []model.NotificationSetting) (int64, error)
	// UpsertAll writes every row's enabled flag keyed on the triple, in order,
	// inside one transaction.
	UpsertAll(ctx context.Context, rows []model.NotificationSetting) error
}

type notificationSettingRepo struct{ db *gorm.DB }

func NewNotificationSettingRepository(db *gorm.DB) NotificationSettingRepository {
	return &notificationSettingRepo{db: db}
}

var settingTriple = []clause.Column{
	{Name: "user_id"},
	{Name: "notification_type_id"},
	{Name: "notification_channel_id"},
}

func (r *notificationSettingRepo) ActiveTypes(ctx context.Context) ([]model.NotificationType, error) {
	var types []model.NotificationType
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("key").Find(&types).Error
	return types, err
}

func (r *notificationSettingRepo) ActiveChannels(ctx context.Context) ([]model.NotificationChannel, error) {
	var channels []model.NotificationChannel
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("key").Find(&channels).Error
	return channels, err
}

func (r *notificationSettingRepo) TypeByKey(ctx context.Context, key string) (*model.NotificationType, error) {
	var t model.NotificationType
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *notificationSettingRepo) CountTypes(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return countByIDs(ctx, r.db, &model.NotificationType{}, uniqueIDs(ids))
}

func (r *notificationSettingRepo) CountChannels(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return countByIDs(ctx, r.db, &model.NotificationChannel{}, uniqueIDs(ids))
}

func (r *notificationSettingRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.NotificationSetting, error) {
	var settings []model.NotificationSetting
	err := r.db.WithContext(ctx).
		Preload("NotificationType").
		Preload("NotificationChannel").
		Where("user_id = ?", userID).
		Find(&settings).Error
	return settings, err
}

func (r *notificationSettingRepo) Find(ctx context.Context, userID, typeID, channelID uuid.UUID) (*model.NotificationSetting, error) {
	var s model.NotificationSetting
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND notification_type_id = ? AND notification_channel_id = ?", userID, typeID, channelID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *notificationSettingRepo) CreateIfAbsent(ctx context.Context, rows []model.NotificationSetting) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: settingTriple, DoNothing: true}).
		Create(&rows)
	return res.RowsAffected, res.Error
}

func (r *notificationSettingRepo) UpsertAll(ctx context.Context, rows []model.NotificationSetting) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			rows[i].UpdatedAt = time.Now()
			err := tx.Clauses(clause.OnConflict{
				Columns:   settingTriple,
				DoUpdates: clause.AssignmentColumns([]string{"enabled", "updated_at"}),
			}).Create(&rows[i]).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
