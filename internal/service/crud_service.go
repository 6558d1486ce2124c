package service

import (
	"context"

	"github.com/alimarchal/maharat-sub001/internal/query"
	"github.com/alimarchal/maharat-sub001/internal/repository"

	"github.com/google/uuid"
)

// CRUDService is the business contract behind the uniform resource controller.
type CRUDService[T any] interface {
	AllowList() query.AllowList
	List(ctx context.Context, p query.Params) (query.Page[T], error)
	Get(ctx context.Context, id uuid.UUID, includes []string) (*T, error)
	Create(ctx context.Context, m *T) error
	// Update loads the row, applies the change and persists it.
	Update(ctx context.Context, id uuid.UUID, apply func(*T)) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Hooks attach resource-specific rules to the generic service. Every field is
// optional.
type Hooks[T any] struct {
	// BeforeSave validates a model about to be created or updated.
	BeforeSave func(ctx context.Context, m *T) error
	// BeforeChange guards the stored row before an update or delete is applied.
	BeforeChange func(ctx context.Context, current *T) error
	AfterCreate  func(ctx context.Context, m *T)
	AfterUpdate  func(ctx context.Context, m *T)
	AfterDelete  func(ctx context.Context, m *T)
}

type crudService[T any] struct {
	repo  repository.CRUDRepository[T]
	allow query.AllowList
	hooks Hooks[T]
}

func NewCRUDService[T any](repo repository.CRUDRepository[T], allow query.AllowList, hooks Hooks[T]) CRUDService[T] {
	return &crudService[T]{repo: repo, allow: allow, hooks: hooks}
}

func (s *crudService[T]) AllowList() query.AllowList { return s.allow }

func (s *crudService[T]) List(ctx context.Context, p query.Params) (query.Page[T], error) {
	if err := s.allow.Validate(p); err != nil {
		return query.Page[T]{}, err
	}
	return s.repo.List(ctx, s.allow, p)
}

func (s *crudService[T]) Get(ctx context.Context, id uuid.UUID, includes []string) (*T, error) {
	if err := s.allow.ValidateIncludes(includes); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id, includes...)
}

func (s *crudService[T]) Create(ctx context.Context, m *T) error {
	if s.hooks.BeforeSave != nil {
		if err := s.hooks.BeforeSave(ctx, m); err != nil {
			return err
		}
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return err
	}
	if s.hooks.AfterCreate != nil {
		s.hooks.AfterCreate(ctx, m)
	}
	return nil
}

func (s *crudService[T]) Update(ctx context.Context, id uuid.UUID, apply func(*T)) (*T, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.hooks.BeforeChange != nil {
		if err := s.hooks.BeforeChange(ctx, m); err != nil {
			return nil, err
		}
	}
	apply(m)
	if s.hooks.BeforeSave != nil {
		if err := s.hooks.BeforeSave(ctx, m); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	if s.hooks.AfterUpdate != nil {
		s.hooks.AfterUpdate(ctx, m)
	}
	return m, nil
}

func (s *crudService[T]) Delete(ctx context.Context, id uuid.UUID) error {
	if s.hooks.BeforeChange == nil && s.hooks.AfterDelete == nil {
		return s.repo.Delete(ctx, id)
	}
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if s.hooks.BeforeChange != nil {
		if err := s.hooks.BeforeChange(ctx, m); err != nil {
			return err
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.hooks.AfterDelete != nil {
		s.hooks.AfterDelete(ctx, m)
	}
	return nil
}
