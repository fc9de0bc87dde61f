package mutation

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stockledger.GO/api"
	stockService "stockledger.GO/service/stock"
)

func init() {
	api.RegisterModule(RegisterMutationRoutes)
}

type applyInput struct {
	ItemID   uint    `json:"item_id"`
	Kind     string  `json:"kind"`
	Quantity int64   `json:"quantity"`
	Note     *string `json:"note"`
}

func RegisterMutationRoutes(apiGroup *echo.Group, db *gorm.DB) {
	engine, err := stockService.GetEngine(db)
	if err != nil {
		panic("mutation api: " + err.Error())
	}
	g := apiGroup.Group("/mutations")

	// GET /api/mutations?limit=N – recent activity feed, newest first
	g.GET("", func(c echo.Context) error {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		rows, err := engine.Ledger().ListRecent(limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"data": rows})
	})

	// GET /api/mutations/item/:id – full ledger history for one item
	g.GET("/item/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil || id == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
		}
		rows, err := engine.Ledger().ListForItem(uint(id))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"data": rows})
	})

	// POST /api/mutations – apply one stock movement
	g.POST("", func(c echo.Context) error {
		var body applyInput
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		var meta map[string]interface{}
		if actor, ok := c.Get("auth_type").(string); ok {
			meta = map[string]interface{}{"auth": actor, "source": "api"}
		}

		res, err := engine.Apply(c.Request().Context(), stockService.ApplyInput{
			ItemID:   body.ItemID,
			Kind:     body.Kind,
			Quantity: body.Quantity,
			Note:     body.Note,
			Meta:     meta,
		})
		if err != nil {
			return c.JSON(api.ErrorStatus(err), echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, echo.Map{"data": res})
	})

	// GET /api/mutations/audit – recompute balances from the ledger
	g.GET("/audit", func(c echo.Context) error {
		report, err := engine.Audit(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		status := http.StatusOK
		if !report.Clean() {
			status = http.StatusConflict
		}
		return c.JSON(status, echo.Map{"data": report})
	})
}
