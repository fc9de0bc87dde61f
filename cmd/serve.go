package cmd

import (
	"log"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"stockledger.GO/api"
	"stockledger.GO/config"
	"stockledger.GO/core/auth"
	"stockledger.GO/graphqlserver"

	_ "stockledger.GO/api/item"
	_ "stockledger.GO/api/mutation"
	_ "stockledger.GO/api/realtime"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		config.LoadAppConfig()
		config.InitRedis()
		if config.RedisClient != nil {
			if err := config.RedisClient.Ping(config.RedisCtx()).Err(); err != nil {
				config.RedisClient = nil
				log.Println("Redis configured but not reachable, mutation events disabled.")
			}
		}

		db, err := config.NewDB()
		if err != nil {
			log.Fatalf("failed to connect to DB: %v", err)
		}

		e := echo.New()
		e.Use(middleware.Logger())
		e.Use(middleware.Recover())
		e.Use(middleware.Gzip())
		e.Use(middleware.Decompress())
		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				start := time.Now()
				err := next(c)
				duration := time.Since(start).Milliseconds()
				c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
				return err
			}
		})

		apiGroup := e.Group("/api")
		apiGroup.Use(auth.Middleware(db))
		api.ApplyModules(apiGroup, db)

		// GraphQL mounted directly: api/graphql imports custom, and
		// custom imports this package.
		schema, err := graphqlserver.NewSchema(db)
		if err != nil {
			log.Fatalf("graphql schema: %v", err)
		}
		handler := graphqlserver.Handler(schema)
		e.POST("/graphql", echo.WrapHandler(handler))
		e.GET("/graphql", echo.WrapHandler(handler))

		api.ApplyRoutes(e, db)

		port := config.GetEnv("PORT", "8080")
		log.Printf("Server running on :%s", port)
		e.Logger.Fatal(e.Start(":" + port))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
