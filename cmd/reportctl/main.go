// Command reportctl: operasi report engine dari shell (migrate, seed, generate).
package main

import (
	"context"
	"fmt"
	"os"

	"gorm.io/gorm"

	"schoolku_backend/cmd/reportctl/commands"
	"schoolku_backend/internals/configs"
	database "schoolku_backend/internals/databases"
	appLogger "schoolku_backend/internals/logger"
)

func main() {
	root := commands.NewRootCommand(openDB)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openDB(ctx context.Context) (*gorm.DB, commands.Settings, error) {
	cfg, err := configs.LoadEnv()
	if err != nil {
		return nil, commands.Settings{}, err
	}
	if err := appLogger.Init(cfg.Log); err != nil {
		return nil, commands.Settings{}, err
	}
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return nil, commands.Settings{}, err
	}
	if err := database.Ping(ctx, db); err != nil {
		_ = database.Close(db)
		return nil, commands.Settings{}, fmt.Errorf("ping db: %w", err)
	}
	return db, commands.Settings{FetchTimeout: cfg.ReportFetchTimeout}, nil
}
