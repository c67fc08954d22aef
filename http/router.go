package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter wires the API routes. limiter may be nil to disable rate limiting.
func NewRouter(projections *ProjectionHandler, limiter *RateLimiter, logger *zap.Logger) http.Handler {
	router := mux.NewRouter()
	router.Use(RequestIDMiddleware, LoggingMiddleware(logger))

	router.HandleFunc("/healthz", Health).Methods(http.MethodGet)

	api := router.PathPrefix("/api/financial").Subrouter()
	if limiter != nil {
		api.Use(RateLimitMiddleware(limiter))
	}
	api.HandleFunc("", projections.CreateProjection).Methods(http.MethodPost)
	api.HandleFunc("/{id}", projections.GetProjection).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found", nil)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	return router
}

func Health(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
