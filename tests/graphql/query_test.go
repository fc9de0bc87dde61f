package graphqltest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	graphqlApi "stockledger.GO/api/graphql"
	"stockledger.GO/graphqlserver"
	entity "stockledger.GO/model/entity"
	stockService "stockledger.GO/service/stock"
)

func graphqlTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("graphql_test_%s_%d.db", t.Name(), time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(tmpFile) })
	db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	if err := db.AutoMigrate(&entity.Item{}, &entity.StockMutation{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func graphqlServer(t *testing.T, db *gorm.DB) *echo.Echo {
	t.Helper()
	schema, err := graphqlserver.NewSchema(db)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	e := echo.New()
	graphqlApi.RegisterGraphQLRoutesWithSchema(e, schema)
	return e
}

func runQuery(t *testing.T, e *echo.Echo, query string, variables map[string]interface{}) map[string]interface{} {
	t.Helper()
	body := map[string]interface{}{"query": query}
	if variables != nil {
		body["variables"] = variables
	}
	bodyBytes, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data   map[string]interface{}
		Errors []struct{ Message string }
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Errors) > 0 {
		t.Fatalf("graphql errors: %v", resp.Errors)
	}
	return resp.Data
}

func seedEngine(t *testing.T, db *gorm.DB) *stockService.Engine {
	t.Helper()
	engine, err := stockService.NewEngine(db)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

func TestQuery_Items(t *testing.T) {
	db := graphqlTestDB(t)
	engine := seedEngine(t, db)
	ctx := context.Background()
	engine.CreateItem(ctx, "GQL-1", "Graph item one", 10)
	engine.CreateItem(ctx, "GQL-2", "Graph item two", 0)

	e := graphqlServer(t, db)
	data := runQuery(t, e, `query { items { id code name balance } }`, nil)

	items, ok := data["items"].([]interface{})
	if !ok {
		t.Fatal("data.items missing")
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	first := items[0].(map[string]interface{})
	if first["code"] != "GQL-1" {
		t.Errorf("code = %v, want GQL-1 (name ascending)", first["code"])
	}
	if int(first["balance"].(float64)) != 10 {
		t.Errorf("balance = %v, want 10", first["balance"])
	}
}

func TestQuery_ItemByID(t *testing.T) {
	db := graphqlTestDB(t)
	engine := seedEngine(t, db)
	item, _ := engine.CreateItem(context.Background(), "GQL-ONE", "Single item", 3)

	e := graphqlServer(t, db)
	data := runQuery(t, e, fmt.Sprintf(`query { item(id: "%d") { id code balance } }`, item.ItemID), nil)

	got, ok := data["item"].(map[string]interface{})
	if !ok {
		t.Fatal("data.item missing")
	}
	if got["code"] != "GQL-ONE" {
		t.Errorf("code = %v, want GQL-ONE", got["code"])
	}

	data = runQuery(t, e, `query { item(id: "99999") { id } }`, nil)
	if data["item"] != nil {
		t.Errorf("item(99999) = %v, want null", data["item"])
	}
}

func TestQuery_RecentMutations(t *testing.T) {
	db := graphqlTestDB(t)
	engine := seedEngine(t, db)
	ctx := context.Background()
	item, _ := engine.CreateItem(ctx, "GQL-MUT", "Mutated", 0)
	for i := 1; i <= 3; i++ {
		if _, err := engine.Apply(ctx, stockService.ApplyInput{ItemID: item.ItemID, Kind: entity.MutationInbound, Quantity: int64(i)}); err != nil {
			t.Fatalf("Apply %d: %v", i, err)
		}
	}

	e := graphqlServer(t, db)
	data := runQuery(t, e, `query { recentMutations(limit: 2) { id itemCode kind quantity } }`, nil)

	rows, ok := data["recentMutations"].([]interface{})
	if !ok {
		t.Fatal("data.recentMutations missing")
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	first := rows[0].(map[string]interface{})
	if int(first["quantity"].(float64)) != 3 {
		t.Errorf("quantity = %v, want 3 (newest first)", first["quantity"])
	}
	if first["itemCode"] != "GQL-MUT" {
		t.Errorf("itemCode = %v, want GQL-MUT", first["itemCode"])
	}
}

func TestQuery_SearchItems(t *testing.T) {
	db := graphqlTestDB(t)
	engine := seedEngine(t, db)
	ctx := context.Background()
	engine.CreateItem(ctx, "DRILL-1", "Cordless drill", 0)
	engine.CreateItem(ctx, "GLUE-1", "Wood glue", 0)

	e := graphqlServer(t, db)
	data := runQuery(t, e, `query { searchItems(query: "drill") { code name } }`, nil)

	rows, ok := data["searchItems"].([]interface{})
	if !ok {
		t.Fatal("data.searchItems missing")
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].(map[string]interface{})["code"] != "DRILL-1" {
		t.Errorf("code = %v, want DRILL-1", rows[0].(map[string]interface{})["code"])
	}
}

func TestQuery_Extension_Ping(t *testing.T) {
	db := graphqlTestDB(t)
	e := graphqlServer(t, db)

	data := runQuery(t, e, `query { _extension(name: "ping") }`, nil)
	raw, ok := data["_extension"].(string)
	if !ok {
		t.Fatalf("_extension = %v, want JSON string", data["_extension"])
	}
	var out map[string]string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("unmarshal extension payload: %v", err)
	}
	if out["pong"] != "ok" {
		t.Errorf("pong = %q, want ok", out["pong"])
	}
}
