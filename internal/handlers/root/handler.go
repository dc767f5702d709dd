package root

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/laiba166-shaikh/AI-400-task-manager/config"
	"github.com/laiba166-shaikh/AI-400-task-manager/transport/http/response"
	"github.com/laiba166-shaikh/AI-400-task-manager/transport/http/state"
)

const docsPath = "/docs"

type Info struct {
	Message string `json:"message" example:"Task Manager API"`
	Version string `json:"version" example:"1.0.0"`
	Docs    string `json:"docs"    example:"/docs"`
}

type Health struct {
	Status string `json:"status" example:"healthy"`
}

type Handler struct {
	cfg   *config.Config
	state *state.Server
}

func New(cfg *config.Config, state *state.Server) Handler {
	return Handler{
		cfg:   cfg,
		state: state,
	}
}

func (h *Handler) Router(r chi.Router) {
	r.Get("/", h.Root)
	r.Get("/health", h.Health)
}

// Root describes the API.
// @Summary API information
// @Tags Root
// @Produce json
// @Success 200 {object} root.Info
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	response.WithJSON(w, http.StatusOK, Info{
		Message: h.cfg.App.Name,
		Version: h.cfg.App.Version,
		Docs:    docsPath,
	})
}

// Health reports whether the server accepts traffic.
// @Summary Health check
// @Tags Root
// @Produce json
// @Success 200 {object} root.Health
// @Failure 503 {object} response.Error
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	if h.state.Draining() {
		response.WithPreparingShutdown(w)

		return
	}

	response.WithJSON(w, http.StatusOK, Health{Status: "healthy"})
}
