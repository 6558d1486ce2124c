package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// CacheStamp identifies the state a cached matrix was computed from: the
// catalogue generation and the user's settings version. An entry is served
// only while both still match.
type CacheStamp struct {
	Catalog int64
	User    int64
	valid   bool
}

// SettingsCache holds computed settings matrices. Cache failures never fail a
// request; they only cost a database read.
type SettingsCache interface {
	// Get returns the cached matrix and the current stamp. On a miss the
	// stamp is still returned so the caller can Set what it loads next.
	Get(ctx context.Context, userID uuid.UUID) (SettingsMatrix, CacheStamp, bool)
	// Set stores m under stamp. A stamp taken before a concurrent Invalidate
	// produces an entry that Get never serves.
	Set(ctx context.Context, userID uuid.UUID, stamp CacheStamp, m SettingsMatrix)
	// Invalidate bumps the user's version.
	Invalidate(ctx context.Context, userID uuid.UUID)
	// InvalidateAll bumps the catalogue generation, dropping every user's entry.
	InvalidateAll(ctx context.Context)
}

// SettingsCacheClient is the part of *redis.Client the cache uses.
type SettingsCacheClient interface {
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

const settingsCatalogKey = "notification:settings:catalog"

func settingsKey(userID uuid.UUID) string { return "notification:settings:" + userID.String() }

func settingsVersionKey(userID uuid.UUID) string {
	return "notification:settings:version:" + userID.String()
}

type cachedMatrix struct {
	Catalog int64          `json:"catalog"`
	User    int64          `json:"user"`
	Matrix  SettingsMatrix `json:"matrix"`
}

type redisSettingsCache struct {
	rdb SettingsCacheClient
	ttl time.Duration
}

func NewRedisSettingsCache(rdb SettingsCacheClient, ttl time.Duration) SettingsCache {
	return &redisSettingsCache{rdb: rdb, ttl: ttl}
}

func (c *redisSettingsCache) Get(ctx context.Context, userID uuid.UUID) (SettingsMatrix, CacheStamp, bool) {
	vals, err := c.rdb.MGet(ctx, settingsCatalogKey, settingsVersionKey(userID), settingsKey(userID)).Result()
	if err != nil || len(vals) != 3 {
		log.Warn().Err(err).Msg("settings cache: get failed")
		return nil, CacheStamp{}, false
	}
	stamp := CacheStamp{Catalog: counter(vals[0]), User: counter(vals[1]), valid: true}

	raw, ok := vals[2].(string)
	if !ok {
		return nil, stamp, false
	}
	var entry cachedMatrix
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, stamp, false
	}
	if entry.Catalog != stamp.Catalog || entry.User != stamp.User {
		return nil, stamp, false
	}
	return entry.Matrix, stamp, true
}

func (c *redisSettingsCache) Set(ctx context.Context, userID uuid.UUID, stamp CacheStamp, m SettingsMatrix) {
	if !stamp.valid {
		return
	}
	raw, err := json.Marshal(cachedMatrix{Catalog: stamp.Catalog, User: stamp.User, Matrix: m})
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, settingsKey(userID), raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("settings cache: set failed")
	}
}

func (c *redisSettingsCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := c.rdb.Incr(ctx, settingsVersionKey(userID)).Err(); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("settings cache: invalidate failed")
	}
}

func (c *redisSettingsCache) InvalidateAll(ctx context.Context) {
	if err := c.rdb.Incr(ctx, settingsCatalogKey).Err(); err != nil {
		log.Warn().Err(err).Msg("settings cache: catalogue invalidate failed")
	}
}

// counter reads an INCR-maintained value from an MGET slot; a missing key is 0.
func counter(v interface{}) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

type noopSettingsCache struct{}

func (noopSettingsCache) Get(context.Context, uuid.UUID) (SettingsMatrix, CacheStamp, bool) {
	return nil, CacheStamp{}, false
}
func (noopSettingsCache) Set(context.Context, uuid.UUID, CacheStamp, SettingsMatrix) {}
func (noopSettingsCache) Invalidate(context.Context, uuid.UUID)                      {}
func (noopSettingsCache) InvalidateAll(context.Context)                              {}
