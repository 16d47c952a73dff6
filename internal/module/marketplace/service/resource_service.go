package service

import (
	"context"

	"github.com/genesis-marketplace/marketplace-admin/internal/database/schema"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/marketplace/repository"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/shared"
	"github.com/knadh/koanf/v2"
)

type ResourceService[T schema.Entity] interface {
	Search(ctx context.Context, search, criteria string) ([]T, error)
	Create(ctx context.Context, entity *T) (uint64, error)
	Update(ctx context.Context, id uint64, entity *T) error
	Delete(ctx context.Context, id uint64) error
}

type resourceService[T schema.Entity] struct {
	entity         string
	repo           repository.Repository[T]
	validate       func(*T) error
	auditor        shared.Auditor
	strictNotFound bool
}

func newResourceService[T schema.Entity](
	cfg *koanf.Koanf,
	entity string,
	repo repository.Repository[T],
	validate func(*T) error,
	auditor shared.Auditor,
) ResourceService[T] {
	return &resourceService[T]{
		entity:         entity,
		repo:           repo,
		validate:       validate,
		auditor:        auditor,
		strictNotFound: cfg.Bool("api.strict-not-found"),
	}
}

func (s *resourceService[T]) Search(ctx context.Context, search, criteria string) ([]T, error) {
	return s.repo.Search(ctx, search, criteria)
}

func (s *resourceService[T]) Create(ctx context.Context, entity *T) (uint64, error) {
	if err := s.validate(entity); err != nil {
		return 0, err
	}
	if err := s.repo.Create(ctx, entity); err != nil {
		return 0, err
	}

	id := (*entity).GetID()
	s.record(ctx, shared.AuditCreate, id)
	return id, nil
}

// Update replaces row id. A missing row is only an error in strict mode.
func (s *resourceService[T]) Update(ctx context.Context, id uint64, entity *T) error {
	if err := s.validate(entity); err != nil {
		return err
	}
	found, err := s.repo.Update(ctx, id, entity)
	if err != nil {
		return err
	}
	if !found {
		if s.strictNotFound {
			return shared.ErrNotFound
		}
		return nil
	}

	s.record(ctx, shared.AuditUpdate, id)
	return nil
}

func (s *resourceService[T]) Delete(ctx context.Context, id uint64) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		if s.strictNotFound {
			return shared.ErrNotFound
		}
		return nil
	}

	s.record(ctx, shared.AuditDelete, id)
	return nil
}

func (s *resourceService[T]) record(ctx context.Context, action string, id uint64) {
	s.auditor.Record(ctx, shared.AuditEvent{Entity: s.entity, Action: action, ID: id})
}
