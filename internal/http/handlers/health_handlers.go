package handlers

import (
	"context"
	"net/http"
	"time"
)

// HealthHandler godoc
// @Summary Liveness and store reachability
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /healthz [get]
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.log.WithError(err).Warn("store ping failed")
		s.respond(w, r, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Store: "down"})
		return
	}
	s.respond(w, r, http.StatusOK, HealthResponse{Status: "ok", Store: "up"})
}
