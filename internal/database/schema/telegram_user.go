package schema

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type TelegramUser struct {
	Base
	TelegramIDBotID  string          `gorm:"column:telegram_id_bot_id;size:255;uniqueIndex" json:"telegram_id_bot_id"`
	TelegramID       Int64           `gorm:"not null" json:"telegram_id"`
	BotID            string          `gorm:"size:255;not null" json:"bot_id"`
	Point            Int64           `json:"point"`
	Username         string          `gorm:"size:255" json:"username"`
	Lastname         string          `gorm:"size:255" json:"lastname"`
	Firstname        string          `gorm:"size:255" json:"firstname"`
	IsPremium        bool            `json:"is_premium"`
	CreatedTimestamp Int64           `json:"created_timestamp"`
	UpdatedTimestamp Int64           `json:"updated_timestamp"`
	NonceCharge      Int64           `json:"nonce_charge"`
	NonceMint        Int64           `json:"nonce_mint"`
	Checkin          bool            `json:"checkin"`
	Usdt             decimal.Decimal `gorm:"type:numeric(38,18);default:0" json:"usdt"`
	DataPopup        datatypes.JSON  `gorm:"type:jsonb" json:"data_popup"`
	DataInvite       datatypes.JSON  `gorm:"type:jsonb" json:"data_invite"`
	CountInviteEvent Int64           `json:"count_invite_event"`
}

func (TelegramUser) TableName() string {
	return "telegram_users"
}

// CompositeKey builds the stored natural key from telegram_id and bot_id
func (u TelegramUser) CompositeKey() string {
	return fmt.Sprintf("%d_%s", int64(u.TelegramID), u.BotID)
}
