package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"stockledger.GO/api"
	"stockledger.GO/core/registry"
)

func TestMockRoute_Health(t *testing.T) {
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryRoutes)
	defer registry.GlobalRegistry.Lock(registry.KeyRegistryRoutes)

	api.RegisterGET("/mock/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status": "ok",
			"mock":   true,
		})
	})

	e := echo.New()
	api.ApplyRoutes(e, nil)

	req := httptest.NewRequest(http.MethodGet, "/mock/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /mock/health status = %d, want 200", rec.Code)
	}
	var resp map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status = %v, want ok", resp["status"])
	}
	if resp["mock"] != true {
		t.Errorf("mock = %v, want true", resp["mock"])
	}
}

func TestMockRoute_Items(t *testing.T) {
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryRoutes)
	defer registry.GlobalRegistry.Lock(registry.KeyRegistryRoutes)

	mockItems := []map[string]interface{}{
		{"id": 1, "code": "MOCK-ITEM-1", "name": "Mock item 1", "balance": 10},
		{"id": 2, "code": "MOCK-ITEM-2", "name": "Mock item 2", "balance": 0},
	}
	api.RegisterGET("/mock/items", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"items": mockItems,
			"count": len(mockItems),
		})
	})

	e := echo.New()
	api.ApplyRoutes(e, nil)

	req := httptest.NewRequest(http.MethodGet, "/mock/items", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /mock/items status = %d, want 200", rec.Code)
	}
	var resp map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	items, ok := resp["items"].([]interface{})
	if !ok || len(items) != 2 {
		t.Fatalf("items = %v, want 2 entries", resp["items"])
	}
	first, _ := items[0].(map[string]interface{})
	if first["code"] != "MOCK-ITEM-1" {
		t.Errorf("first item code = %v, want MOCK-ITEM-1", first["code"])
	}
	if resp["count"] != float64(2) {
		t.Errorf("count = %v, want 2", resp["count"])
	}
}

func TestMockRoute_NotFound(t *testing.T) {
	e := echo.New()
	api.ApplyRoutes(e, nil)

	req := httptest.NewRequest(http.MethodGet, "/nonexistent/route", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /nonexistent/route status = %d, want 404", rec.Code)
	}
}
