package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/laiba166-shaikh/AI-400-task-manager/config"
	"github.com/laiba166-shaikh/AI-400-task-manager/infras/database"
	"github.com/laiba166-shaikh/AI-400-task-manager/infras/otel"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/constant"
	"github.com/laiba166-shaikh/AI-400-task-manager/transport/http/middleware"
	"github.com/laiba166-shaikh/AI-400-task-manager/transport/http/response"
	"github.com/laiba166-shaikh/AI-400-task-manager/transport/http/router"
	"github.com/laiba166-shaikh/AI-400-task-manager/transport/http/state"
)

const (
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 120 * time.Second
)

type HTTP struct {
	Config     *config.Config
	Router     router.Router
	State      *state.Server
	middleware middleware.AppMiddleware
	db         *database.Connection
	otel       otel.Otel

	once    sync.Once
	handler http.Handler
	server  *http.Server
}

func New(cfg *config.Config, r router.Router, mw middleware.AppMiddleware, st *state.Server, db *database.Connection, otl otel.Otel) *HTTP {
	return &HTTP{
		Config:     cfg,
		Router:     r,
		State:      st,
		middleware: mw,
		db:         db,
		otel:       otl,
	}
}

// Handler builds the route tree once and returns it.
func (h *HTTP) Handler() http.Handler {
	h.once.Do(h.setupRoutes)

	return h.handler
}

func (h *HTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Handler().ServeHTTP(w, r)
}

// Serve listens until SIGINT or SIGTERM, then drains and releases the database and tracer.
func (h *HTTP) Serve() {
	h.server = &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	done := h.setupGracefulShutdown()
	h.State.Set(state.ServerStateReady)

	log.Info().Str("address", h.server.Addr).Msg("Starting up HTTP server.")

	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}

	<-done
}

func (h *HTTP) setupRoutes() {
	mux := chi.NewRouter()

	mux.Use(
		chiMiddleware.Recoverer,
		h.middleware.RequestID,
		h.middleware.Logger,
		h.middleware.Tracing,
		h.middleware.CORS(),
		h.middleware.RateLimit(),
	)

	mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.WithDetail(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.WithDetail(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})

	h.Router.SetupRoutes(mux)

	h.handler = mux
}

func (h *HTTP) setupGracefulShutdown() <-chan struct{} {
	serverStateCh := make(chan os.Signal, 1)
	done := make(chan struct{})

	signal.Notify(serverStateCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer close(done)

		h.respondToSigterm(serverStateCh)
	}()

	return done
}

func (h *HTTP) respondToSigterm(signals chan os.Signal) {
	<-signals

	shutdownConfig := h.Config.Server.Shutdown

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")
	} else {
		log.Info().Msg("Received SIGTERM.")
		log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

		h.State.Set(state.ServerStateInGracePeriod)

		time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

		log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")
	}

	h.State.Set(state.ServerStateInCleanupPeriod)

	ctx := context.Background()

	if shutdownConfig.CleanupPeriodSeconds > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, time.Duration(shutdownConfig.CleanupPeriodSeconds)*time.Second)
		defer cancel()
	}

	if err := h.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Shutdown did not complete cleanly")

		return
	}

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}

// Shutdown stops accepting requests, waits for in-flight ones, then closes
// the database pool and flushes traces.
func (h *HTTP) Shutdown(ctx context.Context) error {
	h.State.Set(state.ServerStateInCleanupPeriod)

	var errs []error

	if h.server != nil {
		if err := h.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop HTTP server: %w", err))
		}
	}

	if h.db != nil {
		if err := h.db.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if err := h.otel.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to flush traces: %w", err))
	}

	return errors.Join(errs...)
}
