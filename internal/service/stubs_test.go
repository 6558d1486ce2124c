package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/alimarchal/maharat-sub001/internal/model"
	"github.com/alimarchal/maharat-sub001/internal/query"
	"github.com/alimarchal/maharat-sub001/internal/rbac"
	"github.com/alimarchal/maharat-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ── users ────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users     map[uuid.UUID]*model.User
	roles     map[uuid.UUID][]uuid.UUID // user -> roles
	listCalls int
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[uuid.UUID]*model.User{}, roles: map[uuid.UUID][]uuid.UUID{}}
}

func (r *stubUserRepo) add(name string, roles ...uuid.UUID) *model.User {
	u := &model.User{ID: uuid.New(), Name: name, Email: name + "@example.com", IsActive: true}
	r.users[u.ID] = u
	r.roles[u.ID] = roles
	return u
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) ListByRoleIDs(_ context.Context, roleIDs []uuid.UUID) ([]model.User, error) {
	r.listCalls++
	want := rbac.NewSet(roleIDs...)
	out := []model.User{}
	for id, u := range r.users {
		for _, role := range r.roles[id] {
			if want.Has(role) {
				out = append(out, *u)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubUserRepo) IDs(context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *stubUserRepo) ReplaceRoles(_ context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error {
	r.roles[userID] = append([]uuid.UUID(nil), roleIDs...)
	return nil
}

// ── jobs ─────────────────────────────────────────────────────────────────────

type stubJobs struct {
	emails   []EmailMessage
	defaults []uuid.UUID
	err      error
}

var _ Jobs = (*stubJobs)(nil)

func (j *stubJobs) EnqueueEmail(_ context.Context, msg EmailMessage) error {
	if j.err != nil {
		return j.err
	}
	j.emails = append(j.emails, msg)
	return nil
}

func (j *stubJobs) EnqueueNotificationDefaults(_ context.Context, id uuid.UUID) error {
	if j.err != nil {
		return j.err
	}
	j.defaults = append(j.defaults, id)
	return nil
}

// ── notification settings ────────────────────────────────────────────────────

type triple struct{ user, typ, channel uuid.UUID }

type stubSettingsRepo struct {
	types    []model.NotificationType
	channels []model.NotificationChannel
	rows     map[triple]*model.NotificationSetting
	writes   int
	lists    int
	// onList runs once, after ListForUser has read its rows.
	onList func()
}

var _ repository.NotificationSettingRepository = (*stubSettingsRepo)(nil)

func newStubSettingsRepo() *stubSettingsRepo {
	return &stubSettingsRepo{rows: map[triple]*model.NotificationSetting{}}
}

func (r *stubSettingsRepo) addType(key string, active bool) model.NotificationType {
	t := model.NotificationType{ID: uuid.New(), Key: key, Name: key, IsActive: active}
	r.types = append(r.types, t)
	return t
}

func (r *stubSettingsRepo) addChannel(key string, active bool) model.NotificationChannel {
	c := model.NotificationChannel{ID: uuid.New(), Key: key, Name: key, IsActive: active}
	r.channels = append(r.channels, c)
	return c
}

func (r *stubSettingsRepo) ActiveTypes(context.Context) ([]model.NotificationType, error) {
	var out []model.NotificationType
	for _, t := range r.types {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *stubSettingsRepo) ActiveChannels(context.Context) ([]model.NotificationChannel, error) {
	var out []model.NotificationChannel
	for _, c := range r.channels {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubSettingsRepo) TypeByKey(_ context.Context, key string) (*model.NotificationType, error) {
	for i := range r.types {
		if r.types[i].Key == key {
			return &r.types[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSettingsRepo) CountTypes(_ context.Context, ids []uuid.UUID) (int64, error) {
	var n int64
	for _, id := range ids {
		for _, t := range r.types {
			if t.ID == id {
				n++
			}
		}
	}
	return n, nil
}

func (r *stubSettingsRepo) CountChannels(_ context.Context, ids []uuid.UUID) (int64, error) {
	var n int64
	for _, id := range ids {
		for _, c := range r.channels {
			if c.ID == id {
				n++
			}
		}
	}
	return n, nil
}

func (r *stubSettingsRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]model.NotificationSetting, error) {
	var out []model.NotificationSetting
	for k, row := range r.rows {
		if k.user != userID {
			continue
		}
		s := *row
		for i := range r.types {
			if r.types[i].ID == k.typ {
				s.NotificationType = &r.types[i]
			}
		}
		for i := range r.channels {
			if r.channels[i].ID == k.channel {
				s.NotificationChannel = &r.channels[i]
			}
		}
		out = append(out, s)
	}
	r.lists++
	if f := r.onList; f != nil {
		r.onList = nil
		f()
	}
	return out, nil
}

func (r *stubSettingsRepo) renameType(id uuid.UUID, key string) {
	for i := range r.types {
		if r.types[i].ID == id {
			r.types[i].Key = key
		}
	}
}

func (r *stubSettingsRepo) Find(_ context.Context, userID, typeID, channelID uuid.UUID) (*model.NotificationSetting, error) {
	row, ok := r.rows[triple{userID, typeID, channelID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (r *stubSettingsRepo) CreateIfAbsent(_ context.Context, rows []model.NotificationSetting) (int64, error) {
	var n int64
	for i := range rows {
		k := triple{rows[i].UserID, rows[i].NotificationTypeID, rows[i].NotificationChannelID}
		if _, ok := r.rows[k]; ok {
			continue
		}
		row := rows[i]
		row.ID = uuid.New()
		r.rows[k] = &row
		n++
	}
	return n, nil
}

func (r *stubSettingsRepo) UpsertAll(_ context.Context, rows []model.NotificationSetting) error {
	r.writes++
	for i := range rows {
		k := triple{rows[i].UserID, rows[i].NotificationTypeID, rows[i].NotificationChannelID}
		if existing, ok := r.rows[k]; ok {
			existing.Enabled = rows[i].Enabled
			continue
		}
		row := rows[i]
		row.ID = uuid.New()
		r.rows[k] = &row
	}
	return nil
}

// memoryKV is the slice of redis the settings cache talks to, kept in a map.
type memoryKV struct {
	m map[string]string
}

var _ SettingsCacheClient = (*memoryKV)(nil)

func newMemoryKV() *memoryKV { return &memoryKV{m: map[string]string{}} }

func (k *memoryKV) MGet(_ context.Context, keys ...string) *redis.SliceCmd {
	vals := make([]interface{}, len(keys))
	for i, key := range keys {
		if v, ok := k.m[key]; ok {
			vals[i] = v
		}
	}
	return redis.NewSliceResult(vals, nil)
}

func (k *memoryKV) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		k.m[key] = string(v)
	case string:
		k.m[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (k *memoryKV) Incr(_ context.Context, key string) *redis.IntCmd {
	n, _ := strconv.ParseInt(k.m[key], 10, 64)
	n++
	k.m[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

// ── roles ────────────────────────────────────────────────────────────────────

type stubRoleRepo struct {
	users       *stubUserRepo
	roles       rbac.Set
	permissions rbac.Set
	edges       []rbac.Edge
	edgeCalls   [][]uuid.UUID
}

var _ repository.RoleRepository = (*stubRoleRepo)(nil)

func newStubRoleRepo(users *stubUserRepo) *stubRoleRepo {
	return &stubRoleRepo{users: users, roles: rbac.NewSet(), permissions: rbac.NewSet()}
}

func (r *stubRoleRepo) role() uuid.UUID {
	id := uuid.New()
	r.roles.Add(id)
	return id
}

func (r *stubRoleRepo) link(role, sub uuid.UUID) {
	r.edges = append(r.edges, rbac.Edge{RoleID: role, SubordinateID: sub})
}

func (r *stubRoleRepo) Edges(_ context.Context, roleIDs ...uuid.UUID) ([]rbac.Edge, error) {
	r.edgeCalls = append(r.edgeCalls, roleIDs)
	if len(roleIDs) == 0 {
		return r.edges, nil
	}
	from := rbac.NewSet(roleIDs...)
	var out []rbac.Edge
	for _, e := range r.edges {
		if from.Has(e.RoleID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubRoleRepo) RoleIDsForUser(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return r.users.roles[userID], nil
}

func (r *stubRoleRepo) CountRoles(_ context.Context, ids []uuid.UUID) (int64, error) {
	var n int64
	for _, id := range ids {
		if r.roles.Has(id) {
			n++
		}
	}
	return n, nil
}

func (r *stubRoleRepo) CountPermissions(_ context.Context, ids []uuid.UUID) (int64, error) {
	var n int64
	for _, id := range ids {
		if r.permissions.Has(id) {
			n++
		}
	}
	return n, nil
}

func (r *stubRoleRepo) ReplaceSubordinates(_ context.Context, roleID uuid.UUID, subs []uuid.UUID) error {
	kept := r.edges[:0]
	for _, e := range r.edges {
		if e.RoleID != roleID {
			kept = append(kept, e)
		}
	}
	r.edges = kept
	for _, s := range subs {
		r.link(roleID, s)
	}
	return nil
}

func (r *stubRoleRepo) ReplacePermissions(context.Context, uuid.UUID, []uuid.UUID) error { return nil }

// ── inventory ────────────────────────────────────────────────────────────────

type stubInventoryRepo struct {
	inventories  map[uuid.UUID]*model.Inventory
	transfers    map[uuid.UUID]*model.InventoryTransfer
	transactions []model.InventoryTransaction
}

var _ repository.InventoryRepository = (*stubInventoryRepo)(nil)

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{
		inventories: map[uuid.UUID]*model.Inventory{},
		transfers:   map[uuid.UUID]*model.InventoryTransfer{},
	}
}

// WithTx restores the previous state when fn fails.
func (r *stubInventoryRepo) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	invs := make(map[uuid.UUID]model.Inventory, len(r.inventories))
	for id, inv := range r.inventories {
		invs[id] = *inv
	}
	trs := make(map[uuid.UUID]model.InventoryTransfer, len(r.transfers))
	for id, t := range r.transfers {
		trs[id] = *t
	}
	txCount := len(r.transactions)

	if err := fn(nil); err != nil {
		r.inventories = map[uuid.UUID]*model.Inventory{}
		for id, inv := range invs {
			inv := inv
			r.inventories[id] = &inv
		}
		r.transfers = map[uuid.UUID]*model.InventoryTransfer{}
		for id, t := range trs {
			t := t
			r.transfers[id] = &t
		}
		r.transactions = r.transactions[:txCount]
		return err
	}
	return nil
}

func (r *stubInventoryRepo) CreateTx(_ *gorm.DB, inv *model.Inventory) error {
	for _, existing := range r.inventories {
		if existing.ProductID == inv.ProductID && existing.WarehouseID == inv.WarehouseID {
			return gorm.ErrDuplicatedKey
		}
	}
	inv.ID = uuid.New()
	cp := *inv
	r.inventories[inv.ID] = &cp
	return nil
}

func (r *stubInventoryRepo) LockByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Inventory, error) {
	inv, ok := r.inventories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *inv
	return &cp, nil
}

func (r *stubInventoryRepo) LockByProductWarehouseTx(_ *gorm.DB, productID, warehouseID uuid.UUID) (*model.Inventory, error) {
	for _, inv := range r.inventories {
		if inv.ProductID == productID && inv.WarehouseID == warehouseID {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubInventoryRepo) SetQuantityTx(_ *gorm.DB, id uuid.UUID, quantity int) error {
	r.inventories[id].Quantity = quantity
	return nil
}

func (r *stubInventoryRepo) CreateTransactionTx(_ *gorm.DB, t *model.InventoryTransaction) error {
	t.ID = uuid.New()
	r.transactions = append(r.transactions, *t)
	return nil
}

func (r *stubInventoryRepo) LockTransferTx(_ *gorm.DB, id uuid.UUID) (*model.InventoryTransfer, error) {
	t, ok := r.transfers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *stubInventoryRepo) SaveTransferTx(_ *gorm.DB, t *model.InventoryTransfer) error {
	cp := *t
	r.transfers[t.ID] = &cp
	return nil
}

func (r *stubInventoryRepo) stock(productID, warehouseID uuid.UUID) (int, bool) {
	for _, inv := range r.inventories {
		if inv.ProductID == productID && inv.WarehouseID == warehouseID {
			return inv.Quantity, true
		}
	}
	return 0, false
}

// recordingNotifier captures Notify calls.
type recordingNotifier struct {
	calls []string
}

func (n *recordingNotifier) Notify(_ context.Context, _ uuid.UUID, typeKey, _, _ string) error {
	n.calls = append(n.calls, typeKey)
	return nil
}

// ── generic rows ─────────────────────────────────────────────────────────────

// memRepo is a CRUDRepository keyed by the id that idOf exposes.
type memRepo[T any] struct {
	rows      map[uuid.UUID]*T
	idOf      func(*T) *uuid.UUID
	createErr error
	calls     []string
}

func newMemRepo[T any](idOf func(*T) *uuid.UUID) *memRepo[T] {
	return &memRepo[T]{rows: map[uuid.UUID]*T{}, idOf: idOf}
}

func (r *memRepo[T]) put(m T) *T {
	id := r.idOf(&m)
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	r.rows[*id] = &m
	return &m
}

func (r *memRepo[T]) List(_ context.Context, _ query.AllowList, p query.Params) (query.Page[T], error) {
	r.calls = append(r.calls, "list")
	items := make([]T, 0, len(r.rows))
	for _, m := range r.rows {
		items = append(items, *m)
	}
	return query.Page[T]{Items: items, Total: int64(len(items)), Number: p.Page, Size: p.PageSize}, nil
}

func (r *memRepo[T]) FindByID(_ context.Context, id uuid.UUID, _ ...string) (*T, error) {
	m, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *memRepo[T]) Create(_ context.Context, m *T) error {
	r.calls = append(r.calls, "create")
	if r.createErr != nil {
		return r.createErr
	}
	*r.idOf(m) = uuid.New()
	cp := *m
	r.rows[*r.idOf(m)] = &cp
	return nil
}

func (r *memRepo[T]) Update(_ context.Context, m *T) error {
	r.calls = append(r.calls, "update")
	cp := *m
	r.rows[*r.idOf(m)] = &cp
	return nil
}

func (r *memRepo[T]) Delete(_ context.Context, id uuid.UUID) error {
	r.calls = append(r.calls, "delete")
	if _, ok := r.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.rows, id)
	return nil
}
