package main

import (
	"github.com/rs/zerolog/log"

	"github.com/laiba166-shaikh/AI-400-task-manager/config"
	"github.com/laiba166-shaikh/AI-400-task-manager/di"
	"github.com/laiba166-shaikh/AI-400-task-manager/infras/database"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/logger"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/timezone"
)

// @title Task Manager API
// @version 1.0.0
// @description CRUD service for tasks.
// @BasePath /
func main() {
	logger.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.SetLogLevel(cfg.Server.LogLevel)
	timezone.Init(cfg.App.Timezone)

	if cfg.DB.AutoMigrate {
		autoMigrate(cfg)
	}

	http, err := di.InitializeService(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}

	http.Serve()
}

func autoMigrate(cfg *config.Config) {
	target, err := database.ParseURL(cfg.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse database URL")
	}

	// migrations run on their own handle, which would be a different :memory: database
	if target.InMemory() {
		log.Warn().Msg("DB_AUTO_MIGRATE has no effect on an in-memory database")

		return
	}

	if err := database.Migrate(target, cfg.DB.MigrationTable, database.MigrateUp); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}
}
