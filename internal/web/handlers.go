package web

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/emiliopalmerini/dustlog/internal/domain"
	"github.com/emiliopalmerini/dustlog/internal/ports"
	"github.com/emiliopalmerini/dustlog/internal/usage"
)

// Handler serves usage reports, charts and the log tail.
type Handler struct {
	service   *usage.Service
	repo      ports.LogRepository
	tools     []string
	window    domain.Window
	tailCount int
	logger    log.FieldLogger
}

func NewHandler(service *usage.Service, repo ports.LogRepository, tools []string, window domain.Window, tailCount int, logger log.FieldLogger) *Handler {
	return &Handler{
		service:   service,
		repo:      repo,
		tools:     tools,
		window:    window,
		tailCount: tailCount,
		logger:    logger,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Tools reports every configured tool. A tool that fails carries its error
// in the row; the response is still 200.
func (h *Handler) Tools(w http.ResponseWriter, r *http.Request) {
	window, err := h.windowFor(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	results := h.service.Report(r.Context(), h.tools, window)
	rows := make([]toolSummary, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			rows = append(rows, toolSummary{Tool: res.Tool, Error: res.Err.Error()})
			continue
		}
		rows = append(rows, summarize(&res.Usage))
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) ToolUsage(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadUsage(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadUsage(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.service.RenderChart(&buf, &u); err != nil {
		h.logger.WithField("tool", u.Tool).WithError(err).Error("failed to render chart")
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func (h *Handler) Tail(w http.ResponseWriter, r *http.Request) {
	n, err := queryInt(r, "n", h.tailCount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rows, err := h.repo.Tail(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) loadUsage(w http.ResponseWriter, r *http.Request) (domain.Usage, bool) {
	window, err := h.windowFor(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return domain.Usage{}, false
	}

	tool, err := url.PathUnescape(chi.URLParam(r, "tool"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return domain.Usage{}, false
	}
	u, err := h.service.ToolUsage(r.Context(), tool, window)
	if err != nil {
		status := http.StatusInternalServerError
		var perr *domain.ParseError
		if errors.As(err, &perr) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err)
		return domain.Usage{}, false
	}
	return u, true
}

// windowFor honours an optional ?days= override.
func (h *Handler) windowFor(r *http.Request) (domain.Window, error) {
	days, err := queryInt(r, "days", h.window.Days)
	if err != nil {
		return domain.Window{}, err
	}
	return domain.Window{Days: days}, nil
}
