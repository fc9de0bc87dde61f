package realtime

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"stockledger.GO/api"
	itemRepo "stockledger.GO/model/repository/item"
	mutationRepo "stockledger.GO/model/repository/mutation"
)

func init() {
	api.RegisterModule(RegisterRealtimeRoutes)
}

// BalanceResponse for the combined balance+last-movement endpoint
type BalanceResponse struct {
	Code         string  `json:"code"`
	ItemID       uint    `json:"item_id"`
	Balance      int64   `json:"balance"`
	LastKind     *string `json:"last_kind,omitempty"`
	LastQuantity *int64  `json:"last_quantity,omitempty"`
	LastAt       *string `json:"last_at,omitempty"`
}

// Singleton repositories (created once per DB)
var (
	itemRepoInstance     *itemRepo.ItemRepository
	mutationRepoInstance *mutationRepo.MutationRepository
	repoOnce             sync.Once
	repoErr              error
)

func getRepositories(db *gorm.DB) (*itemRepo.ItemRepository, *mutationRepo.MutationRepository, error) {
	repoOnce.Do(func() {
		itemRepoInstance, repoErr = itemRepo.NewItemRepository(db)
		if repoErr != nil {
			return
		}
		mutationRepoInstance = mutationRepo.NewMutationRepository(db)
	})
	return itemRepoInstance, mutationRepoInstance, repoErr
}

// RegisterRealtimeRoutes sets up the low-overhead balance lookup API
func RegisterRealtimeRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/realtime")

	// GET /api/realtime/balance?code=XXX
	g.GET("/balance", func(c echo.Context) error {
		start := time.Now()

		code := c.QueryParam("code")
		if code == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "code query parameter is required"})
		}

		items, mutations, err := getRepositories(db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		var (
			itemID  uint
			balance int64
			found   bool
			last    *mutationRepo.RecentMutation
		)

		// Balance and last movement fetched in parallel
		group := new(errgroup.Group)
		group.Go(func() error {
			itemID, balance, found = items.GetByCodeRaw(code)
			return nil
		})
		group.Go(func() error {
			var err error
			last, err = mutations.LastForCode(code)
			return err
		})
		if err := group.Wait(); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		if !found {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}

		resp := BalanceResponse{Code: code, ItemID: itemID, Balance: balance}
		if last != nil {
			at := last.CreatedAt.UTC().Format(time.RFC3339)
			resp.LastKind = &last.Kind
			resp.LastQuantity = &last.Quantity
			resp.LastAt = &at
		}

		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, resp)
	})
}
