package graphqlserver

import (
	"context"
	"encoding/json"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"

	"stockledger.GO/graphql"
	gqlmodels "stockledger.GO/graphql/models"
	"stockledger.GO/graphql/registry"
	"stockledger.GO/graphql/resolvers"
)

// RootResolver is the root for graphql-go.
type RootResolver struct {
	DB *gorm.DB
}

// Query returns the query resolver.
func (r *RootResolver) Query() *QueryResolver {
	return &QueryResolver{db: r.DB}
}

// QueryResolver implements Query fields. Delegates to resolvers package.
type QueryResolver struct {
	db *gorm.DB
}

// ItemArgs matches the item query arguments.
type ItemArgs struct {
	ID gql.ID
}

func (r *QueryResolver) Item(ctx context.Context, args ItemArgs) (*gqlmodels.Item, error) {
	return resolvers.NewQueryResolver(r.db).Item(ctx, string(args.ID))
}

func (r *QueryResolver) Items(ctx context.Context) ([]*gqlmodels.Item, error) {
	return resolvers.NewQueryResolver(r.db).Items(ctx)
}

// RecentMutationsArgs matches the recentMutations arguments (default in schema: limit=20).
type RecentMutationsArgs struct {
	Limit int32
}

func (r *QueryResolver) RecentMutations(ctx context.Context, args RecentMutationsArgs) ([]*gqlmodels.StockMutation, error) {
	return resolvers.NewQueryResolver(r.db).RecentMutations(ctx, int(args.Limit))
}

// SearchItemsArgs matches the searchItems arguments (default in schema: limit=20).
type SearchItemsArgs struct {
	Query string
	Limit int32
}

func (r *QueryResolver) SearchItems(ctx context.Context, args SearchItemsArgs) ([]*gqlmodels.Item, error) {
	return resolvers.NewQueryResolver(r.db).SearchItems(ctx, args.Query, int(args.Limit))
}

// ExtensionArgs for _extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

func (r *QueryResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := registry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(db *gorm.DB) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &RootResolver{DB: db}, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
