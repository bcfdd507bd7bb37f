package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"fluxactu/internal/handler/http/respond"
	"fluxactu/internal/observability/logging"
)

type RefreshHandler struct {
	Session Session
	// Limiter is optional.
	Limiter *rate.Limiter
	// Timeout defaults to one minute.
	Timeout time.Duration
	Logger  *slog.Logger
}

// ServeHTTP re-runs the article fetch and returns the session status.
// The fetch is detached from the client connection so other waiters keep it.
// @Summary      Recharger les articles
// @Tags         articles
// @Produce      json
// @Success      200 {object} reader.Status
// @Failure      429 {object} map[string]string
// @Failure      502 {object} reader.Status
// @Router       /api/refresh [post]
func (h RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRequestID(r.Context(), h.Logger)

	if h.Limiter != nil && !h.Limiter.Allow() {
		logger.Warn("refresh rate limit exceeded")
		respond.SafeError(w, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
		return
	}

	timeout := h.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), timeout)
	defer cancel()

	status, err := h.Session.Refresh(ctx)
	if err != nil {
		logger.Warn("refresh failed", slog.Any("error", err))
		respond.JSON(w, http.StatusBadGateway, status)
		return
	}
	respond.JSON(w, http.StatusOK, status)
}
