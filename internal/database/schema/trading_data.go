package schema

import "github.com/shopspring/decimal"

type TradingData struct {
	Base
	TradingPair            string          `gorm:"size:64;not null" json:"trading_pair"`
	Amount1                decimal.Decimal `gorm:"column:amount1;type:numeric(38,18)" json:"amount1"`
	Amount2                decimal.Decimal `gorm:"column:amount2;type:numeric(38,18)" json:"amount2"`
	ThorTradingRate        decimal.Decimal `gorm:"type:numeric(38,18)" json:"thor_trading_rate"`
	BinancePrice           decimal.Decimal `gorm:"type:numeric(38,18)" json:"binance_price"`
	SlippageVsBinance      decimal.Decimal `gorm:"type:numeric(38,18)" json:"slippage_vs_binance"`
	ProtocolFee            decimal.Decimal `gorm:"type:numeric(38,18)" json:"protocol_fee"`
	AffiliateFee           decimal.Decimal `gorm:"type:numeric(38,18)" json:"affiliate_fee"`
	AffiliateFeeAmount     decimal.Decimal `gorm:"type:numeric(38,18)" json:"affiliate_fee_amount"`
	AffiliateFeePercentage decimal.Decimal `gorm:"type:numeric(38,18)" json:"affiliate_fee_percentage"`
	LiquidityFee           decimal.Decimal `gorm:"type:numeric(38,18)" json:"liquidity_fee"`
	Slippage               decimal.Decimal `gorm:"type:numeric(38,18)" json:"slippage"`
	UsdWorth               decimal.Decimal `gorm:"type:numeric(38,18)" json:"usd_worth"`
	Timestamp              Time            `gorm:"index" json:"timestamp"`
	TimeTillCompletion     string          `gorm:"size:64" json:"time_till_completion"`
	TransactionHash        string          `gorm:"size:255" json:"transaction_hash"`
}

func (TradingData) TableName() string {
	return "data"
}
