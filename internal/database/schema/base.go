package schema

// Base carries the auto-increment key every marketplace table shares
type Base struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
}

func (b Base) GetID() uint64 {
	return b.ID
}

func (b *Base) SetID(id uint64) {
	b.ID = id
}

// Entity is implemented by every table model through Base
type Entity interface {
	GetID() uint64
}
