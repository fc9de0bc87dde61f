package item

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stockledger.GO/api"
	searchService "stockledger.GO/service/search"
	stockService "stockledger.GO/service/stock"
)

func init() {
	api.RegisterModule(RegisterItemRoutes)
}

type createItemInput struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	InitialBalance int64  `json:"initial_balance"`
}

type renameItemInput struct {
	Code *string `json:"code"`
	Name *string `json:"name"`
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func RegisterItemRoutes(apiGroup *echo.Group, db *gorm.DB) {
	engine, err := stockService.GetEngine(db)
	if err != nil {
		panic("item api: " + err.Error())
	}
	g := apiGroup.Group("/items")

	// GET /api/items – all items ordered by name
	g.GET("", func(c echo.Context) error {
		items, err := engine.Items().List()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"data": items})
	})

	// GET /api/items/search?q=term
	g.GET("/search", func(c echo.Context) error {
		q := c.QueryParam("q")
		if q == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "query parameter q is required"})
		}
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		items, err := searchService.GetService().Search(c.Request().Context(), db, q, limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"data": items})
	})

	// GET /api/items/:id
	g.GET("/:id", func(c echo.Context) error {
		id, ok := parseID(c.Param("id"))
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
		}
		item, err := engine.Items().FindByID(id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"data": item})
	})

	// POST /api/items – create, optionally with initial stock
	g.POST("", func(c echo.Context) error {
		var body createItemInput
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		item, err := engine.CreateItem(c.Request().Context(), body.Code, body.Name, body.InitialBalance)
		if err != nil {
			return c.JSON(api.ErrorStatus(err), echo.Map{"error": err.Error()})
		}
		if err := searchService.GetService().IndexItem(c.Request().Context(), item); err != nil {
			log.Printf("index item %d: %v", item.ItemID, err)
		}
		return c.JSON(http.StatusCreated, echo.Map{"data": item})
	})

	// PUT /api/items/:id – rename/recode only, balance untouched
	g.PUT("/:id", func(c echo.Context) error {
		id, ok := parseID(c.Param("id"))
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
		}
		var body renameItemInput
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		item, err := engine.RenameItem(c.Request().Context(), id, body.Code, body.Name)
		if err != nil {
			return c.JSON(api.ErrorStatus(err), echo.Map{"error": err.Error()})
		}
		if err := searchService.GetService().IndexItem(c.Request().Context(), item); err != nil {
			log.Printf("index item %d: %v", item.ItemID, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"data": item})
	})

	// DELETE /api/items/:id – only while no ledger history exists
	g.DELETE("/:id", func(c echo.Context) error {
		id, ok := parseID(c.Param("id"))
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
		}
		if err := engine.DeleteItem(c.Request().Context(), id); err != nil {
			return c.JSON(api.ErrorStatus(err), echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})
}
