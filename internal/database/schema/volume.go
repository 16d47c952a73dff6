package schema

import "github.com/shopspring/decimal"

type Volume struct {
	Base
	Date              Date            `gorm:"type:date;not null;index" json:"date"`
	TotalBtcVolumeUsd decimal.Decimal `gorm:"type:numeric(38,18)" json:"total_btc_volume_usd"`
}

func (Volume) TableName() string {
	return "volume"
}
