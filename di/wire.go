//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/laiba166-shaikh/AI-400-task-manager/config"
	"github.com/laiba166-shaikh/AI-400-task-manager/infras/database"
	"github.com/laiba166-shaikh/AI-400-task-manager/infras/otel"
	"github.com/laiba166-shaikh/AI-400-task-manager/infras/redis"
	taskRepository "github.com/laiba166-shaikh/AI-400-task-manager/internal/domains/task/repository"
	taskService "github.com/laiba166-shaikh/AI-400-task-manager/internal/domains/task/service"
	rootHandler "github.com/laiba166-shaikh/AI-400-task-manager/internal/handlers/root"
	taskHandler "github.com/laiba166-shaikh/AI-400-task-manager/internal/handlers/task"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/cache"
	"github.com/laiba166-shaikh/AI-400-task-manager/transport/http"
	"github.com/laiba166-shaikh/AI-400-task-manager/transport/http/middleware"
	"github.com/laiba166-shaikh/AI-400-task-manager/transport/http/router"
	"github.com/laiba166-shaikh/AI-400-task-manager/transport/http/state"
)

var infrastructures = wire.NewSet(
	database.New,
	wire.Bind(new(database.SessionFactory), new(*database.Connection)),
	otel.New,
	redis.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	state.New,
)

var taskDomain = wire.NewSet(
	taskRepository.New,
	taskService.New,
)

var domains = wire.NewSet(
	taskDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	rootHandler.New,
	taskHandler.New,
	router.New,
)

func InitializeService(cfg *config.Config) (*http.HTTP, error) {
	wire.Build(
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}
