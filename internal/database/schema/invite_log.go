package schema

type InviteLog struct {
	Base
	InviteID   Int64  `json:"invite_id"`
	TelegramID Int64  `json:"telegram_id"`
	Code       string `gorm:"size:64;index" json:"code"`
	BotID      string `gorm:"size:255" json:"bot_id"`
	IsPremium  bool   `json:"is_premium"`
	Timestamp  Time   `json:"timestamp"`
}

func (InviteLog) TableName() string {
	return "telegram_invite_logs"
}
