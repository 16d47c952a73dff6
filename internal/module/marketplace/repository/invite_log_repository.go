package repository

import (
	"context"

	"github.com/genesis-marketplace/marketplace-admin/internal/database"
	"github.com/genesis-marketplace/marketplace-admin/internal/database/schema"
)

type InviteLogRepository interface {
	// List returns every invite log, or only those with the exact code when it is set
	List(ctx context.Context, code string) ([]schema.InviteLog, error)
}

type inviteLogRepository struct {
	db *database.Database
}

func NewInviteLogRepository(db *database.Database) InviteLogRepository {
	return &inviteLogRepository{db: db}
}

func (r *inviteLogRepository) List(ctx context.Context, code string) ([]schema.InviteLog, error) {
	logs := make([]schema.InviteLog, 0)

	query := r.db.DB.WithContext(ctx).Order("id")
	if code != "" {
		query = query.Where("code = ?", code)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
