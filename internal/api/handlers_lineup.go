package api

import (
	"net/http"
	"time"
)

type lineupAiring struct {
	Show        string `json:"show"`
	Pattern     string `json:"pattern"`
	Description string `json:"description"`
	AirsAt      string `json:"airs_at,omitempty"`
	When        string `json:"when,omitempty"`
}

type lineupResponse struct {
	Now     string         `json:"now"`
	Airings []lineupAiring `json:"airings"`
}

// handleLineup returns the configured shows resolved against now, soonest
// first. The optional now query parameter (RFC3339) exists for clients that
// render lineups for a different reference time.
func (s *Server) handleLineup(w http.ResponseWriter, r *http.Request) {
	now := time.Now().In(s.location)
	if raw := r.URL.Query().Get("now"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "now must be RFC3339")
			return
		}
		now = parsed.In(s.location)
	}

	airings := s.planner.Lineup(s.shows, now)
	resp := lineupResponse{
		Now:     now.Format(time.RFC3339),
		Airings: make([]lineupAiring, 0, len(airings)),
	}
	for _, airing := range airings {
		item := lineupAiring{
			Show:        airing.Show,
			Pattern:     airing.Pattern,
			Description: airing.Description,
			When:        airing.When,
		}
		if airing.AirsAt != nil {
			item.AirsAt = airing.AirsAt.Format(time.RFC3339)
		}
		resp.Airings = append(resp.Airings, item)
	}
	writeJSON(w, http.StatusOK, resp)
}
