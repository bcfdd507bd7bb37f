package api

import (
	"log/slog"
	"net/http"

	"fluxactu/internal/handler/http/respond"
	"fluxactu/internal/observability/logging"
	"fluxactu/internal/usecase/reader"
)

type ArticlesHandler struct {
	Session      Session
	DefaultSpice int
	Logger       *slog.Logger
}

// ServeHTTP returns the filtered, ordered and tone-adjusted article list.
// @Summary      Liste filtrée des articles
// @Tags         articles
// @Produce      json
// @Param        q      query  string  false  "mots-clés"
// @Param        topic  query  string  false  "thème" default(All)
// @Param        order  query  string  false  "date ou score" default(date)
// @Param        spice  query  int     false  "tonicité 0-100" default(60)
// @Success      200 {object} ArticlesResponse
// @Failure      400 {object} map[string]string
// @Router       /api/articles [get]
func (h ArticlesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	logger := logging.WithRequestID(r.Context(), h.Logger)

	c := reader.DefaultCriteria()
	c.Query = q.Get("q")
	if topic := q.Get("topic"); topic != "" {
		c.Topic = topic
	}

	order, err := reader.ParseOrder(q.Get("order"))
	if err != nil {
		logger.Warn("invalid order", slog.String("order", q.Get("order")))
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	c.Order = order

	spice := h.DefaultSpice
	if raw := q.Get("spice"); raw != "" {
		spice, err = reader.ParseSpice(raw)
		if err != nil {
			logger.Warn("invalid spice", slog.String("spice", raw))
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
	}

	respond.JSON(w, http.StatusOK, NewArticlesResponse(h.Session.View(c, spice)))
}

type TopicsHandler struct {
	Session Session
}

// ServeHTTP returns "All" followed by the distinct effective topics.
// @Summary      Thèmes disponibles
// @Tags         articles
// @Produce      json
// @Success      200 {array} string
// @Router       /api/topics [get]
func (h TopicsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.Session.Topics())
}
