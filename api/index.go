package handler

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/laiba166-shaikh/AI-400-task-manager/config"
	"github.com/laiba166-shaikh/AI-400-task-manager/di"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/logger"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/timezone"
	"github.com/laiba166-shaikh/AI-400-task-manager/transport/http/response"
)

var (
	once    sync.Once
	app     http.Handler
	initErr error
)

func initialize() {
	logger.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		initErr = err

		return
	}

	logger.SetLogLevel(cfg.Server.LogLevel)
	timezone.Init(cfg.App.Timezone)

	service, err := di.InitializeService(cfg)
	if err != nil {
		initErr = err

		return
	}

	app = service.Handler()
}

// Handler is the serverless entry point; the service is built on the first request and reused.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(initialize)

	if initErr != nil {
		log.Error().Err(initErr).Msg("Failed to initialize service")
		response.WithDetail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))

		return
	}

	app.ServeHTTP(w, r)
}
