package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/spf13/cobra"

	"stockledger.GO/config"
	"stockledger.GO/migrations"
)

var migrateDown bool

var migrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Apply (or roll back with --down) the embedded schema migrations",
	Run: func(cmd *cobra.Command, args []string) {
		driver := config.GetEnv("DB_DRIVER", "mysql")

		src, err := iofs.New(migrations.FS, driver)
		if err != nil {
			fmt.Printf("Migration source failed: %v\n", err)
			os.Exit(1)
		}

		var m *migrate.Migrate
		if driver == "sqlite" {
			// Reuse the application's sqlite handle so the binary
			// carries a single sqlite driver registration.
			gdb, err := config.NewDB()
			if err != nil {
				fmt.Printf("Database open failed: %v\n", err)
				os.Exit(1)
			}
			sqlDB, err := gdb.DB()
			if err != nil {
				fmt.Printf("Database open failed: %v\n", err)
				os.Exit(1)
			}
			drv, err := migrations.NewSQLiteDriver(sqlDB)
			if err != nil {
				fmt.Printf("Migration setup failed: %v\n", err)
				os.Exit(1)
			}
			m, err = migrate.NewWithInstance("iofs", src, "sqlite", drv)
			if err != nil {
				fmt.Printf("Migration setup failed: %v\n", err)
				os.Exit(1)
			}
		} else {
			dsn := os.Getenv("MYSQL_DSN")
			if dsn == "" {
				user := os.Getenv("MYSQL_USER")
				pass := os.Getenv("MYSQL_PASS")
				host := os.Getenv("MYSQL_HOST")
				port := config.GetEnv("MYSQL_PORT", "3306")
				db := os.Getenv("MYSQL_DB")
				dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", user, pass, host, port, db)
			}
			m, err = migrate.NewWithSourceInstance("iofs", src, "mysql://"+dsn)
			if err != nil {
				fmt.Printf("Migration setup failed: %v\n", err)
				os.Exit(1)
			}
		}

		if migrateDown {
			err = m.Down()
		} else {
			err = m.Up()
		}
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			fmt.Printf("Migration failed: %v\n", err)
			os.Exit(1)
		}
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("Schema already up to date")
			return
		}
		fmt.Println("Migrations applied")
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "Roll back all migrations")
	rootCmd.AddCommand(migrateCmd)
}
