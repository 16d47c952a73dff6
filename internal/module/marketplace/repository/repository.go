package repository

import (
	"context"

	"github.com/genesis-marketplace/marketplace-admin/internal/database"
	"github.com/genesis-marketplace/marketplace-admin/internal/database/schema"
)

// omitted on full replacement updates
var immutableColumns = []string{"id", "created_at"}

type Repository[T schema.Entity] interface {
	Search(ctx context.Context, search, criteria string) ([]T, error)
	Create(ctx context.Context, entity *T) error
	// Update replaces every column of row id; found is false when no row matched
	Update(ctx context.Context, id uint64, entity *T) (found bool, err error)
	Delete(ctx context.Context, id uint64) (found bool, err error)
}

// KeepColumns names columns an update leaves untouched because the body did not carry them
type KeepColumns[T schema.Entity] func(entity *T) []string

type repository[T schema.Entity] struct {
	db   *database.Database
	spec SearchSpec
	keep KeepColumns[T]
}

func newRepository[T schema.Entity](db *database.Database, spec SearchSpec, keep KeepColumns[T]) Repository[T] {
	return &repository[T]{db: db, spec: spec, keep: keep}
}

func (r *repository[T]) Search(ctx context.Context, search, criteria string) ([]T, error) {
	records := make([]T, 0)

	filter := r.spec.Build(search, criteria)
	if filter.None {
		return records, nil
	}

	if err := r.spec.Apply(r.db.DB.WithContext(ctx), filter).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.DB.WithContext(ctx).Create(entity).Error
}

func (r *repository[T]) Update(ctx context.Context, id uint64, entity *T) (bool, error) {
	omit := immutableColumns
	if r.keep != nil {
		omit = append(append([]string{}, immutableColumns...), r.keep(entity)...)
	}

	result := r.db.DB.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		Select("*").
		Omit(omit...).
		Updates(entity)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository[T]) Delete(ctx context.Context, id uint64) (bool, error) {
	result := r.db.DB.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
