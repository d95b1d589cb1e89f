package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mattjh/dicebank/internal/middleware"
	"github.com/mattjh/dicebank/internal/registry"
	"github.com/mattjh/dicebank/internal/ws"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	Logger     *slog.Logger
	Registry   *registry.Registry
	Dispatcher *ws.Dispatcher
}

// NewRouter creates the HTTP router: the websocket endpoint plus a small
// JSON surface for health checks
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	r.Use(recoveryMiddleware)

	// The websocket endpoint skips the logging middleware; its wrapped
	// writer does not implement http.Hijacker
	r.Handle("/ws", cfg.Dispatcher)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(loggingMiddleware)
	api.HandleFunc("/health", healthHandler(cfg.Registry)).Methods(http.MethodGet)

	root := r.Path("/").Subrouter()
	root.Use(loggingMiddleware)
	root.HandleFunc("/", bannerHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, `{"status":"ok","liveGames":%d}`, reg.Len())
	}
}

func bannerHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("dicebank server"))
}
