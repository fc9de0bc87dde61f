package stock

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	entity "stockledger.GO/model/entity"
)

// InitialStockNote is the note attached to the synthetic ledger entry
// created alongside an item with a positive initial balance.
const InitialStockNote = "initial stock"

// CreateItem registers a new stock-keeping unit. A positive initial
// balance is recorded as one inbound ledger entry in the same
// transaction as the item row; a zero initial balance creates no entry.
func (e *Engine) CreateItem(ctx context.Context, code, name string, initialBalance int64) (*entity.Item, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidArgument)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	if initialBalance < 0 {
		return nil, fmt.Errorf("%w: initial balance must be zero or positive", ErrInvalidArgument)
	}

	item := entity.Item{Code: code, Name: name, Balance: initialBalance}
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := e.items.CodeExists(code, 0)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", ErrDuplicateCode, code)
		}
		if err := e.items.Create(tx, &item); err != nil {
			if isDuplicate(err) {
				return fmt.Errorf("%w: %s", ErrDuplicateCode, code)
			}
			return err
		}
		if initialBalance > 0 {
			note := InitialStockNote
			m := entity.StockMutation{
				ItemID:   item.ItemID,
				Kind:     entity.MutationInbound,
				Quantity: initialBalance,
				Note:     &note,
			}
			if err := e.ledger.Append(tx, &m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return &item, nil
}

// RenameItem updates code and/or name. It never touches the balance.
func (e *Engine) RenameItem(ctx context.Context, id uint, newCode, newName *string) (*entity.Item, error) {
	if newCode != nil {
		trimmed := strings.TrimSpace(*newCode)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: code must not be empty", ErrInvalidArgument)
		}
		newCode = &trimmed
	}
	if newName != nil {
		trimmed := strings.TrimSpace(*newName)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidArgument)
		}
		newName = &trimmed
	}
	if newCode == nil && newName == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidArgument)
	}

	lock := e.locks.forItem(id)
	lock.Lock()
	defer lock.Unlock()

	var updated entity.Item
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item entity.Item
		if err := tx.First(&item, "item_id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: item %d", ErrNotFound, id)
			}
			return err
		}
		if newCode != nil {
			exists, err := e.items.CodeExists(*newCode, id)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("%w: %s", ErrDuplicateCode, *newCode)
			}
		}
		if err := e.items.UpdateCodeName(tx, id, newCode, newName); err != nil {
			if isDuplicate(err) {
				return fmt.Errorf("%w: %s", ErrDuplicateCode, *newCode)
			}
			return err
		}
		return tx.First(&updated, "item_id = ?", id).Error
	})
	if err != nil {
		return nil, classify(err)
	}
	return &updated, nil
}

// DeleteItem removes an item with no ledger history. It takes the same
// per-item lock as Apply so a delete cannot interleave with a mutation.
func (e *Engine) DeleteItem(ctx context.Context, id uint) error {
	lock := e.locks.forItem(id)
	lock.Lock()
	defer lock.Unlock()

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item entity.Item
		if err := tx.First(&item, "item_id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: item %d", ErrNotFound, id)
			}
			return err
		}
		count, err := e.ledger.CountForItem(tx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %d ledger entries reference item %d", ErrConflict, count, id)
		}
		return e.items.Delete(tx, id)
	})
	return classify(err)
}
