package resolvers

import (
	"context"

	"gorm.io/gorm"

	gqlmodels "stockledger.GO/graphql/models"
	gqlregistry "stockledger.GO/graphql/registry"
	mutationRepo "stockledger.GO/model/repository/mutation"
	searchService "stockledger.GO/service/search"
)

// QueryResolver is the single resolver for all Query fields. The
// GraphQL surface is read-only; it shares the store handle with the
// REST layer but never takes the mutation engine's locks.
type QueryResolver struct {
	db *gorm.DB
}

func NewQueryResolver(db *gorm.DB) *QueryResolver {
	return &QueryResolver{db: db}
}

func (r *QueryResolver) Item(ctx context.Context, id string) (*gqlmodels.Item, error) {
	var rows []map[string]interface{}
	err := r.db.WithContext(ctx).Table("stock_item").
		Where("item_id = ?", id).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return flatToItem(rows[0]), nil
}

func (r *QueryResolver) Items(ctx context.Context) ([]*gqlmodels.Item, error) {
	var rows []map[string]interface{}
	err := r.db.WithContext(ctx).Table("stock_item").
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	items := make([]*gqlmodels.Item, len(rows))
	for i, row := range rows {
		items[i] = flatToItem(row)
	}
	return items, nil
}

func (r *QueryResolver) RecentMutations(ctx context.Context, limit int) ([]*gqlmodels.StockMutation, error) {
	var rows []map[string]interface{}
	err := r.db.WithContext(ctx).Table("stock_mutation m").
		Select("m.*, i.code AS item_code, i.name AS item_name").
		Joins("JOIN stock_item i ON i.item_id = m.item_id").
		Order("m.created_at DESC, m.mutation_id DESC").
		Limit(mutationRepo.ClampLimit(limit)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	muts := make([]*gqlmodels.StockMutation, len(rows))
	for i, row := range rows {
		muts[i] = flatToMutation(row)
	}
	return muts, nil
}

func (r *QueryResolver) SearchItems(ctx context.Context, query string, limit int) ([]*gqlmodels.Item, error) {
	found, err := searchService.GetService().Search(ctx, r.db, query, limit)
	if err != nil {
		return nil, err
	}
	items := make([]*gqlmodels.Item, len(found))
	for i, it := range found {
		items[i] = flatToItem(map[string]interface{}{
			"item_id":    it.ItemID,
			"code":       it.Code,
			"name":       it.Name,
			"balance":    it.Balance,
			"created_at": it.CreatedAt,
		})
	}
	return items, nil
}

// Extension dispatches to registered custom resolvers.
func (r *QueryResolver) Extension(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	return gqlregistry.Resolve(ctx, name, args)
}
