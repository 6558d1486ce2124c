package repository

import (
	"context"
	"reflect"

	"github.com/alimarchal/maharat-sub001/internal/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CRUDRepository is the data access contract shared by every resource that
// goes through the uniform resource controller. Services depend on this
// interface, not on the gorm implementation, so tests can swap in stubs.
type CRUDRepository[T any] interface {
	List(ctx context.Context, allow query.AllowList, p query.Params) (query.Page[T], error)
	FindByID(ctx context.Context, id uuid.UUID, includes ...string) (*T, error)
	Create(ctx context.Context, m *T) error
	Update(ctx context.Context, m *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CRUDOption restricts what the generic Update and Delete may touch.
type CRUDOption func(*crudOptions)

type crudOptions struct {
	readOnly []string
	guard    string
	guardErr error
}

// WithReadOnlyColumns keeps columns out of every generic update. Columns owned
// by a dedicated service (stock quantity, finalization stamps) go here.
func WithReadOnlyColumns(cols ...string) CRUDOption {
	return func(o *crudOptions) { o.readOnly = append(o.readOnly, cols...) }
}

// WithRowGuard adds cond to the WHERE clause of updates and deletes. A row
// that exists but fails cond yields err.
func WithRowGuard(cond string, err error) CRUDOption {
	return func(o *crudOptions) { o.guard, o.guardErr = cond, err }
}

type crudRepo[T any] struct {
	db   *gorm.DB
	opts crudOptions
}

func NewCRUDRepository[T any](db *gorm.DB, opts ...CRUDOption) CRUDRepository[T] {
	r := &crudRepo[T]{db: db}
	for _, opt := range opts {
		opt(&r.opts)
	}
	return r
}

func (r *crudRepo[T]) List(ctx context.Context, allow query.AllowList, p query.Params) (query.Page[T], error) {
	return query.Find[T](ctx, r.db, allow, p)
}

func (r *crudRepo[T]) FindByID(ctx context.Context, id uuid.UUID, includes ...string) (*T, error) {
	m := new(T)
	err := query.ApplyIncludes(r.db.WithContext(ctx), includes).First(m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Create also inserts nested associations set on m (e.g. RFQ items).
func (r *crudRepo[T]) Create(ctx context.Context, m *T) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// Update writes every column except the read-only ones, keyed on the primary
// key and the row guard.
func (r *crudRepo[T]) Update(ctx context.Context, m *T) error {
	res := r.updateScope(r.db.WithContext(ctx), m).Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 && !r.db.DryRun {
		return r.missOrGuard(ctx, idOf(m))
	}
	return nil
}

func (r *crudRepo[T]) updateScope(tx *gorm.DB, m *T) *gorm.DB {
	omit := append([]string{clause.Associations, "id", "created_at"}, r.opts.readOnly...)
	q := tx.Model(m).Select("*").Omit(omit...)
	if r.opts.guard != "" {
		q = q.Where(r.opts.guard)
	}
	return q
}

func (r *crudRepo[T]) Delete(ctx context.Context, id uuid.UUID) error {
	q := r.db.WithContext(ctx)
	if r.opts.guard != "" {
		q = q.Where(r.opts.guard)
	}
	res := q.Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.missOrGuard(ctx, id)
	}
	return nil
}

// missOrGuard explains a write that matched no row.
func (r *crudRepo[T]) missOrGuard(ctx context.Context, id uuid.UUID) error {
	if r.opts.guard == "" {
		return gorm.ErrRecordNotFound
	}
	var n int64
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return gorm.ErrRecordNotFound
	}
	return r.opts.guardErr
}

// idOf reads the ID field every model declares.
func idOf(m interface{}) uuid.UUID {
	v := reflect.Indirect(reflect.ValueOf(m)).FieldByName("ID")
	if !v.IsValid() {
		return uuid.Nil
	}
	if id, ok := v.Interface().(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// countByIDs returns how many of ids exist in the table of model.
func countByIDs(ctx context.Context, db *gorm.DB, model interface{}, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int64
	err := db.WithContext(ctx).Model(model).Where("id IN ?", ids).Count(&n).Error
	return n, err
}

// uniqueIDs drops duplicates, keeping first-seen order.
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
