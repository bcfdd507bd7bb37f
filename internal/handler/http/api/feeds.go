package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"fluxactu/internal/handler/http/respond"
	"fluxactu/internal/observability/logging"
	"fluxactu/internal/usecase/reader"
)

type ListFeedsHandler struct {
	Session Session
}

// ServeHTTP returns derived feeds followed by registered feeds.
// @Summary      Flux suivis
// @Tags         feeds
// @Produce      json
// @Success      200 {array} FeedDTO
// @Router       /api/feeds [get]
func (h ListFeedsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, toFeedDTOs(h.Session.Feeds()))
}

type AddFeedHandler struct {
	Session Session
	Logger  *slog.Logger
}

// ServeHTTP registers a followed feed.
// @Summary      Ajouter un flux
// @Tags         feeds
// @Accept       json
// @Produce      json
// @Param        feed body FeedRequest true "flux"
// @Success      201 {object} FeedDTO
// @Success      204 "URL vide, rien n'est ajouté"
// @Failure      400 {object} map[string]string
// @Router       /api/feeds [post]
func (h AddFeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRequestID(r.Context(), h.Logger)

	var req FeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid feed request body", slog.Any("error", err))
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}

	feed, err := h.Session.AddFeed(req.URL, req.Title, req.Topic)
	switch {
	case errors.Is(err, reader.ErrInvalidFeedURL):
		respond.Message(w, http.StatusBadRequest, reader.InvalidFeedURLMessage)
	case err != nil:
		respond.SafeError(w, http.StatusInternalServerError, err)
	case feed == nil:
		w.WriteHeader(http.StatusNoContent)
	default:
		respond.JSON(w, http.StatusCreated, toFeedDTO(*feed))
	}
}
