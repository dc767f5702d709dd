package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	// registers the generated OpenAPI document with swag
	_ "github.com/laiba166-shaikh/AI-400-task-manager/docs"
	"github.com/laiba166-shaikh/AI-400-task-manager/internal/handlers/root"
	"github.com/laiba166-shaikh/AI-400-task-manager/internal/handlers/task"
)

type DomainHandlers struct {
	Root root.Handler
	Task task.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Root.Router(router)
	r.DomainHandlers.Task.Router(router)

	router.Get("/docs", http.RedirectHandler("/docs/index.html", http.StatusMovedPermanently).ServeHTTP)
	router.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
