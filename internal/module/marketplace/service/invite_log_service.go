package service

import (
	"context"
	"strings"

	"github.com/genesis-marketplace/marketplace-admin/internal/database/schema"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/marketplace/repository"
)

type InviteLogService interface {
	List(ctx context.Context, code string) ([]schema.InviteLog, error)
}

type inviteLogService struct {
	repo repository.InviteLogRepository
}

func NewInviteLogService(repo repository.InviteLogRepository) InviteLogService {
	return &inviteLogService{repo: repo}
}

func (s *inviteLogService) List(ctx context.Context, code string) ([]schema.InviteLog, error) {
	return s.repo.List(ctx, strings.TrimSpace(code))
}
