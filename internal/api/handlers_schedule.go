package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"aircheck/internal/schedule"
)

type schedulePreviewRequest struct {
	Pattern  string `json:"pattern"`
	Now      string `json:"now,omitempty"`
	Timezone string `json:"tz,omitempty"`
}

type schedulePreviewResponse struct {
	Valid       bool   `json:"valid"`
	Resolvable  bool   `json:"resolvable"`
	Pattern     string `json:"pattern"`
	Description string `json:"description"`
	NextAt      string `json:"next_at,omitempty"`
	When        string `json:"when,omitempty"`
	Message     string `json:"message,omitempty"`
}

// handleSchedulePreview parses a pattern and reports its description and
// next occurrence. Parse failures are an ordinary 200 with valid=false: the
// pattern still gets its pass-through description so clients always have
// display text.
func (s *Server) handleSchedulePreview(w http.ResponseWriter, r *http.Request) {
	var req schedulePreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return
	}
	pattern := strings.TrimSpace(req.Pattern)
	if pattern == "" {
		writeError(w, http.StatusBadRequest, "invalid_input", "pattern is required")
		return
	}

	loc := s.location
	if req.Timezone != "" {
		parsed, err := time.LoadLocation(req.Timezone)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "unknown timezone "+req.Timezone)
			return
		}
		loc = parsed
	}

	now := time.Now()
	if req.Now != "" {
		parsed, err := time.Parse(time.RFC3339, req.Now)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "now must be RFC3339")
			return
		}
		now = parsed
	}

	spec, err := schedule.Parse(pattern)
	if err != nil {
		var parseErr *schedule.ParseError
		resp := schedulePreviewResponse{
			Valid:       false,
			Pattern:     pattern,
			Description: schedule.DescribePattern(pattern),
		}
		if errors.As(err, &parseErr) {
			resp.Message = parseErr.Reason
		} else {
			resp.Message = err.Error()
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	resp := schedulePreviewResponse{
		Valid:       true,
		Pattern:     pattern,
		Description: schedule.Describe(spec),
	}
	if next, ok := schedule.Next(spec, now, loc); ok {
		resp.Resolvable = true
		resp.NextAt = next.Format(time.RFC3339)
		resp.When = schedule.RelativeLabel(next, now)
	}
	writeJSON(w, http.StatusOK, resp)
}
