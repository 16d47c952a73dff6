package service

import (
	"strconv"

	"github.com/genesis-marketplace/marketplace-admin/internal/database/schema"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/marketplace/repository"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/shared"
	"github.com/knadh/koanf/v2"
)

type (
	TaskService         = ResourceService[schema.Task]
	UserService         = ResourceService[schema.User]
	TelegramUserService = ResourceService[schema.TelegramUser]
	TradingDataService  = ResourceService[schema.TradingData]
	VolumeService       = ResourceService[schema.Volume]
)

func NewTaskService(cfg *koanf.Koanf, repo repository.TaskRepository, auditor shared.Auditor) TaskService {
	return newResourceService(cfg, "task", repo, ValidateTask, auditor)
}

func NewUserService(cfg *koanf.Koanf, repo repository.UserRepository, auditor shared.Auditor) UserService {
	return newResourceService(cfg, "user", repo, ValidateUser, auditor)
}

func NewTelegramUserService(cfg *koanf.Koanf, repo repository.TelegramUserRepository, auditor shared.Auditor) TelegramUserService {
	return newResourceService(cfg, "telegram_user", repo, ValidateTelegramUser, auditor)
}

func NewTradingDataService(cfg *koanf.Koanf, repo repository.TradingDataRepository, auditor shared.Auditor) TradingDataService {
	return newResourceService(cfg, "data", repo, ValidateTradingData, auditor)
}

func NewVolumeService(cfg *koanf.Koanf, repo repository.VolumeRepository, auditor shared.Auditor) VolumeService {
	return newResourceService(cfg, "volume", repo, ValidateVolume, auditor)
}

func ValidateTask(t *schema.Task) error {
	return shared.RequireFields("Task ID, title, and content are required", map[string]string{
		"task_id": t.TaskID,
		"title":   t.Title,
		"content": t.Content,
	}, "task_id", "title", "content")
}

func ValidateUser(u *schema.User) error {
	return shared.RequireFields("Email is required", map[string]string{
		"email": u.Email,
	}, "email")
}

// ValidateTelegramUser also derives the telegram_id_bot_id key
func ValidateTelegramUser(u *schema.TelegramUser) error {
	telegramID := ""
	if u.TelegramID != 0 {
		telegramID = strconv.FormatInt(int64(u.TelegramID), 10)
	}
	if err := shared.RequireFields("Telegram ID and bot ID are required", map[string]string{
		"telegram_id": telegramID,
		"bot_id":      u.BotID,
	}, "telegram_id", "bot_id"); err != nil {
		return err
	}

	u.TelegramIDBotID = u.CompositeKey()
	return nil
}

func ValidateTradingData(d *schema.TradingData) error {
	return shared.RequireFields("Trading pair is required", map[string]string{
		"trading_pair": d.TradingPair,
	}, "trading_pair")
}

func ValidateVolume(v *schema.Volume) error {
	date := ""
	if v.Date.Valid {
		date = v.Date.String()
	}
	return shared.RequireFields("Date is required", map[string]string{
		"date": date,
	}, "date")
}
