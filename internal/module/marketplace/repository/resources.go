package repository

import (
	"github.com/genesis-marketplace/marketplace-admin/internal/database"
	"github.com/genesis-marketplace/marketplace-admin/internal/database/schema"
)

type (
	TaskRepository         = Repository[schema.Task]
	UserRepository         = Repository[schema.User]
	TelegramUserRepository = Repository[schema.TelegramUser]
	TradingDataRepository  = Repository[schema.TradingData]
	VolumeRepository       = Repository[schema.Volume]
)

var TaskSearch = SearchSpec{
	Columns: []SearchColumn{
		{Criteria: "ID", Expr: "id", Exact: true},
		{Criteria: "Task ID", Expr: "task_id"},
		{Criteria: "Title", Expr: "title"},
	},
	Order: "id",
}

var UserSearch = SearchSpec{
	Columns: []SearchColumn{
		{Criteria: "ID", Expr: "id", Exact: true},
		{Criteria: "Email", Expr: "email"},
		{Criteria: "Name", Expr: "name"},
		{Criteria: "Wallet", Expr: "wallet_address"},
	},
	Order: "id",
}

var TelegramUserSearch = SearchSpec{
	Columns: []SearchColumn{
		{Criteria: "ID", Expr: "id", Exact: true},
		{Criteria: "Telegram ID", Expr: "telegram_id", Exact: true},
		{Criteria: "Bot ID", Expr: "bot_id"},
		{Criteria: "Username", Expr: "username"},
	},
	Order: "id",
}

var TradingDataSearch = SearchSpec{
	Columns: []SearchColumn{
		{Criteria: "ID", Expr: "id", Exact: true},
		{Criteria: "Trading Pair", Expr: "trading_pair"},
		{Criteria: "Transaction Hash", Expr: "transaction_hash"},
	},
	Order: "timestamp DESC, id DESC",
}

var VolumeSearch = SearchSpec{
	Columns: []SearchColumn{
		{Criteria: "ID", Expr: "id", Exact: true},
		{Criteria: "Date", Expr: "CAST(date AS TEXT)"},
	},
	Order: "date DESC, id DESC",
}

// keepTaskLinks preserves bot_id, link and partner_code when the edit form omits them
func keepTaskLinks(t *schema.Task) []string {
	keep := make([]string, 0, 3)
	if t.BotID == nil {
		keep = append(keep, "bot_id")
	}
	if t.Link == nil {
		keep = append(keep, "link")
	}
	if t.PartnerCode == nil {
		keep = append(keep, "partner_code")
	}
	return keep
}

func NewTaskRepository(db *database.Database) TaskRepository {
	return newRepository[schema.Task](db, TaskSearch, keepTaskLinks)
}

func NewUserRepository(db *database.Database) UserRepository {
	return newRepository[schema.User](db, UserSearch, nil)
}

func NewTelegramUserRepository(db *database.Database) TelegramUserRepository {
	return newRepository[schema.TelegramUser](db, TelegramUserSearch, nil)
}

func NewTradingDataRepository(db *database.Database) TradingDataRepository {
	return newRepository[schema.TradingData](db, TradingDataSearch, nil)
}

func NewVolumeRepository(db *database.Database) VolumeRepository {
	return newRepository[schema.Volume](db, VolumeSearch, nil)
}
