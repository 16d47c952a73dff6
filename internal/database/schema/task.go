package schema

type Task struct {
	Base
	TaskID      string  `gorm:"column:task_id;size:255;not null;index" json:"task_id"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Content     string  `gorm:"type:text;not null" json:"content"`
	Type        string  `gorm:"size:64" json:"type"`
	Point       Int64   `json:"point"`
	StartTime   Int64   `json:"start_time"`
	EndTime     Int64   `json:"end_time"`
	Picture     string  `gorm:"size:1024" json:"picture"`
	BotID       *string `gorm:"size:255" json:"bot_id"`
	Link        *string `gorm:"size:1024" json:"link"`
	PartnerCode *string `gorm:"size:255" json:"partner_code"`
}

func (Task) TableName() string {
	return "telegram_tasks"
}
