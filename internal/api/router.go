package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/battleship-go/internal/api/feed"
	"github.com/mcoot/battleship-go/internal/api/handler"
	"github.com/mcoot/battleship-go/internal/api/middleware"
	"github.com/mcoot/battleship-go/internal/services/match"
	"github.com/mcoot/battleship-go/internal/storage"
)

// PathPrefix is the root of every API route
const PathPrefix = "/api/v1"

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	Storage         storage.Storage
	MatchController *match.Controller
	// Events carries the live match feed (optional)
	Events *feed.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	var broadcaster *feed.Broadcaster
	if cfg.Events != nil {
		broadcaster = feed.NewBroadcaster(cfg.Events, cfg.Logger)
	}
	matchHandler := handler.NewMatchHandler(cfg.MatchController, broadcaster)
	healthHandler := handler.NewHealthHandler(cfg.Storage, cfg.Logger)

	// Create middleware
	requestIDMiddleware := middleware.RequestID()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// Routes live on the root router so a wrong method reports 405
	r.Use(recoveryMiddleware)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)

	// Simulation routes
	r.HandleFunc(PathPrefix+"/simulations", matchHandler.Simulate).Methods(http.MethodPost)

	// Match history routes
	r.HandleFunc(PathPrefix+"/matches", matchHandler.List).Methods(http.MethodGet)
	r.HandleFunc(PathPrefix+"/matches/{id}", matchHandler.Get).Methods(http.MethodGet)
	r.HandleFunc(PathPrefix+"/matches/{id}", matchHandler.Delete).Methods(http.MethodDelete)
	r.HandleFunc(PathPrefix+"/summary", matchHandler.Summary).Methods(http.MethodGet)

	// Live match feed
	if cfg.Events != nil {
		eventsHandler := handler.NewEventsHandler(cfg.Events)
		r.HandleFunc(PathPrefix+"/events", eventsHandler.Stream).Methods(http.MethodGet)
		r.HandleFunc(PathPrefix+"/ws", eventsHandler.WebSocket).Methods(http.MethodGet)
	}

	// Health check endpoint
	r.HandleFunc(PathPrefix+"/health", healthHandler.Get).Methods(http.MethodGet)

	return r
}
