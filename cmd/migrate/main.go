package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/laiba166-shaikh/AI-400-task-manager/config"
	"github.com/laiba166-shaikh/AI-400-task-manager/infras/database"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/logger"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down/drop/step-up) is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.SetLogLevel(cfg.Server.LogLevel)

	target, err := database.ParseURL(cfg.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse database URL")
	}

	if err := database.Migrate(target, cfg.DB.MigrationTable, os.Args[1]); err != nil {
		log.Fatal().Err(err).Str("action", os.Args[1]).Msg("Migration failed")
	}
}
