package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alimarchal/maharat-sub001/internal/apierror"
	"github.com/alimarchal/maharat-sub001/internal/dto"
	"github.com/alimarchal/maharat-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settingsFixture struct {
	svc      NotificationSettingsService
	repo     *stubSettingsRepo
	users    *stubUserRepo
	jobs     *stubJobs
	kv       *memoryKV
	user     *model.User
	lowStock model.NotificationType
	rfqSent  model.NotificationType
	email    model.NotificationChannel
	database model.NotificationChannel
}

func newSettingsFixture() *settingsFixture {
	f := &settingsFixture{
		repo:  newStubSettingsRepo(),
		users: newStubUserRepo(),
		jobs:  &stubJobs{},
		kv:    newMemoryKV(),
	}
	f.user = f.users.add("alice")
	f.lowStock = f.repo.addType("low_stock", true)
	f.rfqSent = f.repo.addType("rfq_sent", true)
	f.email = f.repo.addChannel("email", true)
	f.database = f.repo.addChannel("database", true)
	f.svc = NewNotificationSettingsService(f.repo, f.users, NewRedisSettingsCache(f.kv, time.Minute), f.jobs)
	return f
}

func setting(typeID, channelID uuid.UUID, enabled bool) dto.SettingInput {
	return dto.SettingInput{TypeID: typeID, ChannelID: channelID, Enabled: &enabled}
}

func requireKind(t *testing.T, err error, kind apierror.Kind, msg string) {
	t.Helper()
	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr), "expected *apierror.Error, got %v", err)
	assert.Equal(t, kind, apiErr.Kind)
	if msg != "" {
		assert.Equal(t, msg, apiErr.Message)
	}
}

func TestSettingState_Resolve(t *testing.T) {
	assert.True(t, SettingAbsent.Resolve(true))
	assert.False(t, SettingAbsent.Resolve(false))
	assert.True(t, SettingEnabled.Resolve(false))
	assert.False(t, SettingDisabled.Resolve(true))
	assert.Equal(t, "absent", SettingAbsent.String())
	assert.Equal(t, "disabled", SettingDisabled.String())
}

func TestSetupDefaults_CreatesEveryActivePairOnce(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()

	created, err := f.svc.SetupDefaults(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, created)

	created, err = f.svc.SetupDefaults(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Len(t, f.repo.rows, 4)
}

func TestSetupDefaults_KeepsExistingPreference(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.UpdateSettings(ctx, f.user.ID, []dto.SettingInput{
		setting(f.lowStock.ID, f.email.ID, false),
	}))

	created, err := f.svc.SetupDefaults(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	m, err := f.svc.GetSettings(ctx, f.user.ID)
	require.NoError(t, err)
	assert.False(t, m["low_stock"]["email"])
	assert.True(t, m["low_stock"]["database"])
	assert.True(t, m["rfq_sent"]["email"])
}

func TestSetupDefaults_SkipsInactive(t *testing.T) {
	f := newSettingsFixture()
	f.repo.addType("retired", false)
	f.repo.addChannel("sms", false)

	created, err := f.svc.SetupDefaults(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, created)
}

func TestSetupDefaults_UnknownUser(t *testing.T) {
	f := newSettingsFixture()
	_, err := f.svc.SetupDefaults(context.Background(), uuid.New())
	requireKind(t, err, apierror.KindNotFound, "User not found")
}

func TestGetSettings_OmitsAbsentPairs(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()

	m, err := f.svc.GetSettings(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, m)

	require.NoError(t, f.svc.UpdateSettings(ctx, f.user.ID, []dto.SettingInput{
		setting(f.rfqSent.ID, f.database.ID, false),
	}))

	m, err = f.svc.GetSettings(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, SettingsMatrix{"rfq_sent": {"database": false}}, m)
}

func TestGetSettings_UnknownUser(t *testing.T) {
	f := newSettingsFixture()
	_, err := f.svc.GetSettings(context.Background(), uuid.New())
	requireKind(t, err, apierror.KindNotFound, "User not found")
}

func TestUpdateSettings_WritesEveryTuple(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()

	err := f.svc.UpdateSettings(ctx, f.user.ID, []dto.SettingInput{
		setting(f.lowStock.ID, f.email.ID, true),
		setting(f.lowStock.ID, f.database.ID, false),
		setting(f.rfqSent.ID, f.email.ID, false),
	})
	require.NoError(t, err)
	assert.Len(t, f.repo.rows, 3)

	err = f.svc.UpdateSettings(ctx, f.user.ID, []dto.SettingInput{
		setting(f.lowStock.ID, f.email.ID, false),
	})
	require.NoError(t, err)
	assert.Len(t, f.repo.rows, 3)

	state, err := f.svc.Lookup(ctx, f.user.ID, f.lowStock.ID, f.email.ID)
	require.NoError(t, err)
	assert.Equal(t, SettingDisabled, state)
}

func TestUpdateSettings_RepeatedTripleKeepsLastValue(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()

	err := f.svc.UpdateSettings(ctx, f.user.ID, []dto.SettingInput{
		setting(f.lowStock.ID, f.email.ID, true),
		setting(f.lowStock.ID, f.email.ID, false),
	})
	require.NoError(t, err)
	assert.Len(t, f.repo.rows, 1)

	state, err := f.svc.Lookup(ctx, f.user.ID, f.lowStock.ID, f.email.ID)
	require.NoError(t, err)
	assert.Equal(t, SettingDisabled, state)
}

func TestUpdateSettings_UnknownReferencesWriteNothing(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()

	err := f.svc.UpdateSettings(ctx, f.user.ID, []dto.SettingInput{
		setting(f.lowStock.ID, f.email.ID, true),
		setting(uuid.New(), f.email.ID, true),
	})
	requireKind(t, err, apierror.KindNotFound, "Notification type not found")

	err = f.svc.UpdateSettings(ctx, f.user.ID, []dto.SettingInput{
		setting(f.lowStock.ID, uuid.New(), true),
	})
	requireKind(t, err, apierror.KindNotFound, "Notification channel not found")

	err = f.svc.UpdateSettings(ctx, uuid.New(), []dto.SettingInput{
		setting(f.lowStock.ID, f.email.ID, true),
	})
	requireKind(t, err, apierror.KindNotFound, "User not found")

	assert.Zero(t, f.repo.writes)
	assert.Empty(t, f.repo.rows)
}

func TestUpdateSettings_InvalidatesCache(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()

	_, err := f.svc.GetSettings(ctx, f.user.ID)
	require.NoError(t, err)
	require.Contains(t, f.kv.m, settingsKey(f.user.ID))

	require.NoError(t, f.svc.UpdateSettings(ctx, f.user.ID, []dto.SettingInput{
		setting(f.lowStock.ID, f.email.ID, false),
	}))

	m, err := f.svc.GetSettings(ctx, f.user.ID)
	require.NoError(t, err)
	assert.False(t, m["low_stock"]["email"])
	assert.Equal(t, 2, f.repo.lists)
}

func TestGetSettings_ServedFromCache(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()

	_, err := f.svc.GetSettings(ctx, f.user.ID)
	require.NoError(t, err)
	_, err = f.svc.GetSettings(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, f.repo.lists)
}

func TestGetSettings_UpdateDuringLoadIsNotCached(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()
	require.NoError(t, f.svc.UpdateSettings(ctx, f.user.ID, []dto.SettingInput{
		setting(f.lowStock.ID, f.email.ID, true),
	}))

	// The write lands after the read loaded its rows but before it fills the cache.
	f.repo.onList = func() {
		require.NoError(t, f.svc.UpdateSettings(ctx, f.user.ID, []dto.SettingInput{
			setting(f.lowStock.ID, f.email.ID, false),
		}))
	}
	m, err := f.svc.GetSettings(ctx, f.user.ID)
	require.NoError(t, err)
	assert.True(t, m["low_stock"]["email"])

	m, err = f.svc.GetSettings(ctx, f.user.ID)
	require.NoError(t, err)
	assert.False(t, m["low_stock"]["email"])
}

func TestGetSettings_UpdateBeforeLoadIsCached(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.UpdateSettings(ctx, f.user.ID, []dto.SettingInput{
		setting(f.lowStock.ID, f.email.ID, false),
	}))
	m, err := f.svc.GetSettings(ctx, f.user.ID)
	require.NoError(t, err)
	assert.False(t, m["low_stock"]["email"])

	m, err = f.svc.GetSettings(ctx, f.user.ID)
	require.NoError(t, err)
	assert.False(t, m["low_stock"]["email"])
	assert.Equal(t, 1, f.repo.lists)
}

func TestGetSettings_CatalogRenameRefreshesKeys(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()
	require.NoError(t, f.svc.UpdateSettings(ctx, f.user.ID, []dto.SettingInput{
		setting(f.lowStock.ID, f.email.ID, false),
	}))
	_, err := f.svc.GetSettings(ctx, f.user.ID)
	require.NoError(t, err)

	f.repo.renameType(f.lowStock.ID, "stock_low")
	hooks := CatalogHooks[model.NotificationType](f.svc)
	hooks.AfterUpdate(ctx, &model.NotificationType{ID: f.lowStock.ID, Key: "stock_low"})

	m, err := f.svc.GetSettings(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, SettingsMatrix{"stock_low": {"email": false}}, m)
}

func TestGetSettings_RemovedUserIsNotServedFromCache(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()
	_, err := f.svc.GetSettings(ctx, f.user.ID)
	require.NoError(t, err)

	delete(f.users.users, f.user.ID)
	_, err = f.svc.GetSettings(ctx, f.user.ID)
	requireKind(t, err, apierror.KindNotFound, "User not found")
}

func TestSettingsCache_ReadsWithoutStampAreNotStored(t *testing.T) {
	kv := newMemoryKV()
	cache := NewRedisSettingsCache(kv, time.Minute)
	id := uuid.New()

	cache.Set(context.Background(), id, CacheStamp{}, SettingsMatrix{"a": {"b": true}})
	assert.NotContains(t, kv.m, settingsKey(id))

	_, stamp, ok := cache.Get(context.Background(), id)
	require.False(t, ok)
	cache.Set(context.Background(), id, stamp, SettingsMatrix{"a": {"b": true}})
	m, _, ok := cache.Get(context.Background(), id)
	require.True(t, ok)
	assert.True(t, m["a"]["b"])

	cache.InvalidateAll(context.Background())
	_, _, ok = cache.Get(context.Background(), id)
	assert.False(t, ok)
}

func TestNotify_AbsentSettingSendsEmail(t *testing.T) {
	f := newSettingsFixture()

	err := f.svc.Notify(context.Background(), f.user.ID, "low_stock", "Low stock", "body")
	require.NoError(t, err)
	require.Len(t, f.jobs.emails, 1)
	assert.Equal(t, f.user.Email, f.jobs.emails[0].To)
	assert.Equal(t, "Low stock", f.jobs.emails[0].Subject)
}

func TestNotify_DisabledSettingSendsNothing(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()
	require.NoError(t, f.svc.UpdateSettings(ctx, f.user.ID, []dto.SettingInput{
		setting(f.lowStock.ID, f.email.ID, false),
	}))

	require.NoError(t, f.svc.Notify(ctx, f.user.ID, "low_stock", "Low stock", "body"))
	assert.Empty(t, f.jobs.emails)

	require.NoError(t, f.svc.Notify(ctx, f.user.ID, "rfq_sent", "RFQ", "body"))
	assert.Len(t, f.jobs.emails, 1)
}

func TestNotify_UnknownOrInactiveTypeIsIgnored(t *testing.T) {
	f := newSettingsFixture()
	f.repo.addType("retired", false)
	ctx := context.Background()

	assert.NoError(t, f.svc.Notify(ctx, f.user.ID, "nope", "s", "b"))
	assert.NoError(t, f.svc.Notify(ctx, f.user.ID, "retired", "s", "b"))
	assert.Empty(t, f.jobs.emails)
}

func TestNotify_EnqueueFailureIsReturned(t *testing.T) {
	f := newSettingsFixture()
	f.jobs.err = errors.New("redis down")

	err := f.svc.Notify(context.Background(), f.user.ID, "low_stock", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis down")
}
