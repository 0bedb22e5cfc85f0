package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/emiliopalmerini/dustlog/internal/domain"
)

// toolSummary is one row of the /api/tools report.
type toolSummary struct {
	Tool        string     `json:"tool"`
	TotalHours  float64    `json:"total_hours"`
	Since       *time.Time `json:"since,omitempty"`
	Events      int        `json:"events"`
	Transitions int        `json:"transitions"`
	Error       string     `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// queryInt reads a non-negative integer query parameter, returning def
// when it is absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &paramError{name: name, value: raw}
	}
	return n, nil
}

type paramError struct {
	name  string
	value string
}

func (e *paramError) Error() string {
	return "invalid " + e.name + " parameter: " + strconv.Quote(e.value)
}

func summarize(u *domain.Usage) toolSummary {
	s := toolSummary{
		Tool:        u.Tool,
		TotalHours:  u.TotalHours,
		Events:      u.Events,
		Transitions: u.Transitions,
	}
	if u.Events > 0 {
		since := u.Since
		s.Since = &since
	}
	return s
}
