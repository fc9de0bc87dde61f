package entity

import "time"

// Item is a stock-keeping unit. Balance is a denormalized projection of
// the mutation ledger and is only ever written together with a ledger row.
type Item struct {
	ItemID    uint      `gorm:"column:item_id;primaryKey;autoIncrement" json:"id"`
	Code      string    `gorm:"column:code;type:varchar(64);uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Balance   int64     `gorm:"column:balance;not null;default:0" json:"balance"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Item) TableName() string {
	return "stock_item"
}
