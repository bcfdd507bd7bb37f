// Package page serves the server-rendered reader page and its add-feed form.
package page

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"fluxactu/internal/domain/entity"
	"fluxactu/internal/handler/http/respond"
	"fluxactu/internal/usecase/reader"
)

//go:embed templates/index.html
var templateFS embed.FS

// DateLayout is the display format of article dates.
const DateLayout = "02/01/2006 15:04:05"

var indexTemplate = template.Must(template.New("index.html").
	Funcs(template.FuncMap{"formatDate": formatDate}).
	ParseFS(templateFS, "templates/index.html"))

func formatDate(a reader.ArticleView) string {
	if !a.HasDate {
		return ""
	}
	return a.PublishedAt.Format(DateLayout)
}

// Session is the part of the reader session the page needs.
type Session interface {
	View(c reader.Criteria, spice int) reader.Page
	AddFeed(rawURL, title, topic string) (*entity.FollowedFeed, error)
}

// Handler renders the reader page.
type Handler struct {
	Session Session
	// APIHost is shown in the page header.
	APIHost string
	// DefaultSpice is the tone used when the request carries none.
	DefaultSpice int
	Logger       *slog.Logger
}

type topicLink struct {
	Name   string
	Href   string
	Active bool
}

type feedForm struct {
	URL   string
	Title string
	Topic string
}

type pageData struct {
	APIHost   string
	Page      reader.Page
	Topics    []topicLink
	Form      feedForm
	FeedError string
	MinSpice  int
	MaxSpice  int
	SpiceStep int
}

// Register mounts the page routes on mux.
func Register(mux *http.ServeMux, h *Handler) {
	mux.Handle("GET /{$}", http.HandlerFunc(h.Index))
	mux.Handle("POST /feeds", http.HandlerFunc(h.AddFeed))
}

// Index renders GET / for the view in the query string (q, topic, spice, order).
// Malformed spice or order values fall back to their defaults.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c, spice := h.parseView(q.Get("q"), q.Get("topic"), q.Get("spice"), q.Get("order"))
	h.render(w, http.StatusOK, c, spice, defaultForm(), "")
}

// AddFeed handles the add-feed form. An accepted or empty submission redirects
// back to the same view; an invalid URL re-renders the page with the alert.
func (h *Handler) AddFeed(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid form"))
		return
	}

	c, spice := h.parseView(r.PostForm.Get("q"), r.PostForm.Get("view_topic"),
		r.PostForm.Get("spice"), r.PostForm.Get("order"))
	form := feedForm{
		URL:   r.PostForm.Get("url"),
		Title: r.PostForm.Get("title"),
		Topic: r.PostForm.Get("topic"),
	}

	if _, err := h.Session.AddFeed(form.URL, form.Title, form.Topic); err != nil {
		if errors.Is(err, reader.ErrInvalidFeedURL) {
			h.render(w, http.StatusBadRequest, c, spice, form, reader.InvalidFeedURLMessage)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	http.Redirect(w, r, viewURL(c, spice, c.Topic), http.StatusSeeOther)
}

func (h *Handler) parseView(query, topic, rawSpice, rawOrder string) (reader.Criteria, int) {
	c := reader.DefaultCriteria()
	c.Query = query
	if topic != "" {
		c.Topic = topic
	}
	if order, err := reader.ParseOrder(rawOrder); err == nil {
		c.Order = order
	} else {
		h.logger().Debug("ignoring order", slog.String("order", rawOrder))
	}

	spice := h.defaultSpice()
	if rawSpice != "" {
		if v, err := reader.ParseSpice(rawSpice); err == nil {
			spice = v
		} else {
			h.logger().Debug("ignoring spice", slog.String("spice", rawSpice))
		}
	}
	return c, spice
}

func (h *Handler) render(w http.ResponseWriter, code int, c reader.Criteria, spice int, form feedForm, feedErr string) {
	p := h.Session.View(c, spice)

	links := make([]topicLink, 0, len(p.Topics))
	for _, t := range p.Topics {
		links = append(links, topicLink{
			Name:   t,
			Href:   viewURL(p.Criteria, spice, t),
			Active: t == p.Criteria.Topic,
		})
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, pageData{
		APIHost:   h.APIHost,
		Page:      p,
		Topics:    links,
		Form:      form,
		FeedError: feedErr,
		MinSpice:  reader.MinSpice,
		MaxSpice:  reader.MaxSpice,
		SpiceStep: reader.SpiceStep,
	}); err != nil {
		h.logger().Error("render page", slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger().Warn("write page", slog.Any("error", err))
	}
}

// viewURL is the link to the view c with topic replaced.
func viewURL(c reader.Criteria, spice int, topic string) string {
	v := url.Values{}
	if c.Query != "" {
		v.Set("q", c.Query)
	}
	if topic != "" && topic != reader.AllTopics {
		v.Set("topic", topic)
	}
	v.Set("spice", strconv.Itoa(spice))
	if c.Order != "" && c.Order != reader.OrderByDate {
		v.Set("order", string(c.Order))
	}
	return "/?" + v.Encode()
}

func defaultForm() feedForm {
	return feedForm{Topic: entity.FallbackTopic}
}

func (h *Handler) defaultSpice() int {
	if h.DefaultSpice < reader.MinSpice || h.DefaultSpice > reader.MaxSpice {
		return reader.DefaultSpice
	}
	return h.DefaultSpice
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
