package schema

import "time"

type User struct {
	Base
	Email              string    `gorm:"size:255;not null" json:"email"`
	WalletAddress      string    `gorm:"size:255" json:"wallet_address"`
	Avatar             string    `gorm:"size:1024" json:"avatar"`
	Name               string    `gorm:"size:255" json:"name"`
	StripeCustomerID   *string   `gorm:"size:255" json:"stripe_customer_id"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	ReferralCode       string    `gorm:"size:64" json:"referral_code"`
	Cover              string    `gorm:"size:1024" json:"cover"`
	IsAuthAccount      bool      `json:"is_auth_account"`
	IsFirstVisit       bool      `json:"is_first_visit"`
	NumberImageCreated Int64     `json:"number_image_created"`
	TmaCode            *string   `gorm:"size:64" json:"tma_code"`
	TimestampWeb       Int64     `json:"timestamp_web"`
	TimestampMiniapp   Int64     `json:"timestamp_miniapp"`
	TelegramPremium    bool      `json:"telegram_premium"`
}

func (User) TableName() string {
	return "users"
}
