package models

import graphql "github.com/graph-gophers/graphql-go"

// Item is the GraphQL view of a stock-keeping unit.
type Item struct {
	ID        graphql.ID `json:"id" mapstructure:"item_id"`
	Code      string     `json:"code" mapstructure:"code"`
	Name      string     `json:"name" mapstructure:"name"`
	Balance   int32      `json:"balance" mapstructure:"balance"`
	CreatedAt string     `json:"created_at" mapstructure:"created_at"`
}

// StockMutation is the GraphQL view of one ledger entry, joined with
// its item's code and name.
type StockMutation struct {
	ID        graphql.ID `json:"id" mapstructure:"mutation_id"`
	ItemID    graphql.ID `json:"item_id" mapstructure:"item_id"`
	ItemCode  string     `json:"item_code" mapstructure:"item_code"`
	ItemName  string     `json:"item_name" mapstructure:"item_name"`
	Kind      string     `json:"kind" mapstructure:"kind"`
	Quantity  int32      `json:"quantity" mapstructure:"quantity"`
	Note      *string    `json:"note,omitempty" mapstructure:"note"`
	CreatedAt string     `json:"created_at" mapstructure:"created_at"`
}
