package stock

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	entity "stockledger.GO/model/entity"
	itemRepo "stockledger.GO/model/repository/item"
	mutationRepo "stockledger.GO/model/repository/mutation"
)

// Engine applies stock mutations. Every balance change goes through
// Apply: the ledger append and the balance update commit (or roll back)
// as one transaction, and mutations on the same item are serialized by
// a per-item lock, so a committed balance always equals the ledger sum.
type Engine struct {
	db     *gorm.DB
	items  *itemRepo.ItemRepository
	ledger *mutationRepo.MutationRepository
	locks  *itemLocks
}

func NewEngine(db *gorm.DB) (*Engine, error) {
	items, err := itemRepo.NewItemRepository(db)
	if err != nil {
		return nil, err
	}
	return &Engine{
		db:     db,
		items:  items,
		ledger: mutationRepo.NewMutationRepository(db),
		locks:  newItemLocks(),
	}, nil
}

// Items exposes the item repository for read paths.
func (e *Engine) Items() *itemRepo.ItemRepository {
	return e.items
}

// Ledger exposes the mutation repository for read paths.
func (e *Engine) Ledger() *mutationRepo.MutationRepository {
	return e.ledger
}

// ApplyInput is one requested stock movement.
type ApplyInput struct {
	ItemID   uint
	Kind     string
	Quantity int64
	Note     *string
	Meta     map[string]interface{}
}

// ApplyResult is the committed ledger row plus the updated item snapshot.
type ApplyResult struct {
	Mutation entity.StockMutation `json:"mutation"`
	Item     entity.Item          `json:"item"`
}

// Apply validates and commits one mutation. On any error the store is
// left exactly as it was.
func (e *Engine) Apply(ctx context.Context, in ApplyInput) (*ApplyResult, error) {
	if in.Kind != entity.MutationInbound && in.Kind != entity.MutationOutbound {
		return nil, fmt.Errorf("%w: kind must be %q or %q", ErrInvalidArgument, entity.MutationInbound, entity.MutationOutbound)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be a positive integer", ErrInvalidArgument)
	}
	if in.ItemID == 0 {
		return nil, fmt.Errorf("%w: item id is required", ErrInvalidArgument)
	}

	var meta datatypes.JSON
	if len(in.Meta) > 0 {
		b, err := json.Marshal(in.Meta)
		if err != nil {
			return nil, fmt.Errorf("%w: meta not serializable", ErrInvalidArgument)
		}
		meta = datatypes.JSON(b)
	}

	lock := e.locks.forItem(in.ItemID)
	lock.Lock()
	defer lock.Unlock()

	res := &ApplyResult{}
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item entity.Item
		if err := tx.First(&item, "item_id = ?", in.ItemID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: item %d", ErrNotFound, in.ItemID)
			}
			return err
		}

		switch in.Kind {
		case entity.MutationInbound:
			rows, err := e.items.AddBalance(tx, in.ItemID, in.Quantity)
			if err != nil {
				return err
			}
			if rows == 0 {
				return fmt.Errorf("item %d vanished mid-transaction", in.ItemID)
			}
		case entity.MutationOutbound:
			if in.Quantity > item.Balance {
				return fmt.Errorf("%w: have %d, want %d", ErrInsufficientStock, item.Balance, in.Quantity)
			}
			rows, err := e.items.SubtractBalance(tx, in.ItemID, in.Quantity)
			if err != nil {
				return err
			}
			if rows == 0 {
				// The conditional update refused the write: a writer
				// outside the per-item lock raced us. Nothing committed.
				return fmt.Errorf("%w: have %d, want %d", ErrInsufficientStock, item.Balance, in.Quantity)
			}
		}

		m := entity.StockMutation{
			ItemID:   in.ItemID,
			Kind:     in.Kind,
			Quantity: in.Quantity,
			Note:     in.Note,
			Meta:     meta,
		}
		if err := e.ledger.Append(tx, &m); err != nil {
			return err
		}

		var updated entity.Item
		if err := tx.First(&updated, "item_id = ?", in.ItemID).Error; err != nil {
			return err
		}
		res.Mutation = m
		res.Item = updated
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	publishMutation(&res.Mutation, &res.Item)
	return res, nil
}
