package mutation

import (
	"gorm.io/gorm"

	entity "stockledger.GO/model/entity"
)

const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 100
)

type MutationRepository struct {
	db *gorm.DB
}

func NewMutationRepository(db *gorm.DB) *MutationRepository {
	return &MutationRepository{db: db}
}

// RecentMutation is a ledger row joined with its item's code and name,
// as served by the recent-activity feed.
type RecentMutation struct {
	entity.StockMutation
	ItemCode string `gorm:"column:item_code" json:"item_code"`
	ItemName string `gorm:"column:item_name" json:"item_name"`
}

// Append inserts a ledger row. Only called inside the engine's transaction.
func (r *MutationRepository) Append(tx *gorm.DB, m *entity.StockMutation) error {
	return tx.Create(m).Error
}

// ClampLimit normalizes a requested feed limit to [1, MaxRecentLimit],
// falling back to the default for zero/negative values.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		return MaxRecentLimit
	}
	return limit
}

// ListRecent returns the newest entries first. Equal timestamps are
// tie-broken by mutation id descending (insertion order).
func (r *MutationRepository) ListRecent(limit int) ([]RecentMutation, error) {
	var rows []RecentMutation
	err := r.db.Table("stock_mutation m").
		Select("m.*, i.code AS item_code, i.name AS item_name").
		Joins("JOIN stock_item i ON i.item_id = m.item_id").
		Order("m.created_at DESC, m.mutation_id DESC").
		Limit(ClampLimit(limit)).
		Find(&rows).Error
	return rows, err
}

// ListForItem returns an item's full history in insertion order.
func (r *MutationRepository) ListForItem(itemID uint) ([]entity.StockMutation, error) {
	var rows []entity.StockMutation
	err := r.db.Where("item_id = ?", itemID).
		Order("mutation_id ASC").
		Find(&rows).Error
	return rows, err
}

// SumForItem computes the signed ledger sum (inbound minus outbound).
func (r *MutationRepository) SumForItem(itemID uint) (int64, error) {
	var total int64
	err := r.db.Model(&entity.StockMutation{}).
		Select("COALESCE(SUM(CASE WHEN kind = ? THEN quantity ELSE -quantity END), 0)", entity.MutationInbound).
		Where("item_id = ?", itemID).
		Scan(&total).Error
	return total, err
}

// CountForItem reports how many ledger rows reference an item.
func (r *MutationRepository) CountForItem(tx *gorm.DB, itemID uint) (int64, error) {
	var count int64
	err := tx.Model(&entity.StockMutation{}).Where("item_id = ?", itemID).Count(&count).Error
	return count, err
}

// LastForCode returns the newest ledger entry for an item code, or nil
// when the item has no history yet.
func (r *MutationRepository) LastForCode(code string) (*RecentMutation, error) {
	var rows []RecentMutation
	err := r.db.Table("stock_mutation m").
		Select("m.*, i.code AS item_code, i.name AS item_name").
		Joins("JOIN stock_item i ON i.item_id = m.item_id").
		Where("i.code = ?", code).
		Order("m.created_at DESC, m.mutation_id DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}
