package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Mutation kinds. Inbound adds to the balance, outbound subtracts.
const (
	MutationInbound  = "inbound"
	MutationOutbound = "outbound"
)

// StockMutation is one immutable ledger row. Rows are appended inside
// the same transaction as the balance update and never touched again.
type StockMutation struct {
	MutationID uint           `gorm:"column:mutation_id;primaryKey;autoIncrement" json:"id"`
	ItemID     uint           `gorm:"column:item_id;index;not null" json:"item_id"`
	Kind       string         `gorm:"column:kind;type:varchar(16);not null" json:"kind"`
	Quantity   int64          `gorm:"column:quantity;not null" json:"quantity"`
	Note       *string        `gorm:"column:note;type:varchar(255)" json:"note,omitempty"`
	Meta       datatypes.JSON `gorm:"column:meta" json:"meta,omitempty"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (StockMutation) TableName() string {
	return "stock_mutation"
}
