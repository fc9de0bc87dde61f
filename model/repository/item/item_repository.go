package item

import (
	"database/sql"

	"gorm.io/gorm"

	entity "stockledger.GO/model/entity"
)

type ItemRepository struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

func NewItemRepository(db *gorm.DB) (*ItemRepository, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return &ItemRepository{db: db, sqlDB: sqlDB}, nil
}

// DB returns the underlying handle, used by callers that open their own transaction.
func (r *ItemRepository) DB() *gorm.DB {
	return r.db
}

func (r *ItemRepository) Create(tx *gorm.DB, item *entity.Item) error {
	return tx.Create(item).Error
}

func (r *ItemRepository) FindByID(id uint) (*entity.Item, error) {
	var item entity.Item
	if err := r.db.First(&item, "item_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepository) FindByCode(code string) (*entity.Item, error) {
	var item entity.Item
	if err := r.db.First(&item, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns all items ordered by name ascending.
func (r *ItemRepository) List() ([]entity.Item, error) {
	var items []entity.Item
	err := r.db.Order("name ASC").Find(&items).Error
	return items, err
}

// CodeExists reports whether another item (excluding excludeID) already uses code.
func (r *ItemRepository) CodeExists(code string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Item{}).
		Where("code = ? AND item_id <> ?", code, excludeID).
		Count(&count).Error
	return count > 0, err
}

// UpdateCodeName applies a partial code/name update. Balance is never touched here.
func (r *ItemRepository) UpdateCodeName(tx *gorm.DB, id uint, code, name *string) error {
	updates := map[string]interface{}{}
	if code != nil {
		updates["code"] = *code
	}
	if name != nil {
		updates["name"] = *name
	}
	return tx.Model(&entity.Item{}).Where("item_id = ?", id).Updates(updates).Error
}

func (r *ItemRepository) Delete(tx *gorm.DB, id uint) error {
	return tx.Delete(&entity.Item{}, "item_id = ?", id).Error
}

// AddBalance increments the balance unconditionally (inbound path).
// Returns the number of rows touched.
func (r *ItemRepository) AddBalance(tx *gorm.DB, id uint, quantity int64) (int64, error) {
	res := tx.Model(&entity.Item{}).
		Where("item_id = ?", id).
		Update("balance", gorm.Expr("balance + ?", quantity))
	return res.RowsAffected, res.Error
}

// SubtractBalance decrements the balance only while it stays non-negative.
// A zero row count means the guard rejected the write.
func (r *ItemRepository) SubtractBalance(tx *gorm.DB, id uint, quantity int64) (int64, error) {
	res := tx.Model(&entity.Item{}).
		Where("item_id = ? AND balance >= ?", id, quantity).
		Update("balance", gorm.Expr("balance - ?", quantity))
	return res.RowsAffected, res.Error
}

// GetBalance reads the current balance with raw SQL for minimal overhead.
func (r *ItemRepository) GetBalance(id uint) (int64, bool) {
	const query = `SELECT balance FROM stock_item WHERE item_id = ? LIMIT 1`
	var balance sql.NullInt64
	if err := r.sqlDB.QueryRow(query, id).Scan(&balance); err != nil || !balance.Valid {
		return 0, false
	}
	return balance.Int64, true
}

// GetByCodeRaw returns id and balance for a code with raw SQL, used by
// the realtime endpoint to skip ORM overhead.
func (r *ItemRepository) GetByCodeRaw(code string) (uint, int64, bool) {
	const query = `SELECT item_id, balance FROM stock_item WHERE code = ? LIMIT 1`
	var id uint
	var balance int64
	if err := r.sqlDB.QueryRow(query, code).Scan(&id, &balance); err != nil {
		return 0, 0, false
	}
	return id, balance, true
}
