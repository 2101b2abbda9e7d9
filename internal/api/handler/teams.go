package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/cbb-data/internal/api/respond"
	"github.com/albapepper/cbb-data/internal/cache"
	"github.com/albapepper/cbb-data/internal/dataset"
)

// TeamList wraps a list of teams with its length.
type TeamList struct {
	Count int         `json:"count"`
	Teams interface{} `json:"teams"`
}

func filterFrom(r *http.Request) dataset.Filter {
	q := r.URL.Query()
	return dataset.Filter{
		Conference: strings.TrimSpace(q.Get("conference")),
		Search:     strings.TrimSpace(q.Get("search")),
	}
}

// GetMetadata returns the snapshot header.
// @Summary Snapshot metadata
// @Description Returns lastUpdated, season, teamCount and per-source contribution counts.
// @Tags snapshot
// @Produce json
// @Success 200 {object} provider.Metadata
// @Failure 503 {object} respond.ErrorResponse
// @Router /metadata [get]
func (h *Handler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "metadata", cache.TTLSnapshot, func() (interface{}, error) {
		return h.store.Metadata()
	})
}

// ListTeams returns every team in rank order.
// @Summary List teams
// @Description Returns unified team records in rank order, optionally filtered by conference or name.
// @Tags teams
// @Produce json
// @Param conference query string false "Conference code"
// @Param search query string false "Substring of team name, alternate name or teamId"
// @Success 200 {object} TeamList
// @Failure 503 {object} respond.ErrorResponse
// @Router /teams [get]
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	f := filterFrom(r)
	key := fmt.Sprintf("teams:%s:%s", strings.ToLower(f.Conference), strings.ToLower(f.Search))
	h.serveCached(w, r, key, cache.TTLSnapshot, func() (interface{}, error) {
		teams, err := h.store.Teams(f)
		if err != nil {
			return nil, err
		}
		return TeamList{Count: len(teams), Teams: teams}, nil
	})
}

// GetTeam returns one team.
// @Summary Get team
// @Description Returns the unified record for one teamId (slug).
// @Tags teams
// @Produce json
// @Param teamId path string true "Team slug"
// @Success 200 {object} provider.TeamSeason
// @Failure 404 {object} respond.ErrorResponse
// @Router /teams/{teamId} [get]
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	id := strings.ToLower(chi.URLParam(r, "teamId"))
	if id == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_TEAM", "teamId is required")
		return
	}
	h.serveCached(w, r, "team:"+id, cache.TTLSnapshot, func() (interface{}, error) {
		return h.store.Team(id)
	})
}

// GetRankings returns the sortable rankings table.
// @Summary Rankings
// @Description Filter and sort the rankings table. Null metrics sort last in either direction.
// @Tags rankings
// @Produce json
// @Param sort query string false "Sort field (JSON name)" default(rank)
// @Param dir query string false "Sort direction" Enums(asc, desc) default(asc)
// @Param conference query string false "Conference code"
// @Param search query string false "Team name search"
// @Success 200 {object} TeamList
// @Failure 400 {object} respond.ErrorResponse
// @Router /rankings [get]
func (h *Handler) GetRankings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dir := strings.ToLower(q.Get("dir"))
	if dir != "" && dir != "asc" && dir != "desc" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_DIR", "dir must be 'asc' or 'desc'")
		return
	}
	query := dataset.Query{Filter: filterFrom(r), Sort: q.Get("sort"), Desc: dir == "desc"}

	key := fmt.Sprintf("rankings:%s:%t:%s:%s", query.Sort, query.Desc,
		strings.ToLower(query.Conference), strings.ToLower(query.Search))
	h.serveCached(w, r, key, cache.TTLSnapshot, func() (interface{}, error) {
		teams, err := h.store.Rankings(query)
		if err != nil {
			return nil, err
		}
		return TeamList{Count: len(teams), Teams: teams}, nil
	})
}

// ListConferences returns every conference with its team count.
// @Summary List conferences
// @Tags conferences
// @Produce json
// @Success 200 {array} dataset.Conference
// @Router /conferences [get]
func (h *Handler) ListConferences(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "conferences", cache.TTLSnapshot, func() (interface{}, error) {
		return h.store.Conferences()
	})
}

// GetMatchup compares two teams.
// @Summary Head-to-head matchup
// @Description Predicted margin (home court 3.5), log5 win probability from barthag and per-factor edges. Positive edges favor teamA.
// @Tags matchup
// @Produce json
// @Param teamA query string true "Team A slug"
// @Param teamB query string true "Team B slug"
// @Param site query string false "Where team A plays" Enums(neutral, home, away) default(neutral)
// @Success 200 {object} dataset.Matchup
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /matchup [get]
func (h *Handler) GetMatchup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a := strings.ToLower(strings.TrimSpace(q.Get("teamA")))
	b := strings.ToLower(strings.TrimSpace(q.Get("teamB")))
	if a == "" || b == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_TEAMS", "teamA and teamB are required")
		return
	}
	site, err := dataset.ParseSite(strings.ToLower(q.Get("site")))
	if err != nil {
		h.writeError(w, err)
		return
	}

	key := fmt.Sprintf("matchup:%s:%s:%s", a, b, site)
	h.serveCached(w, r, key, cache.TTLMatchup, func() (interface{}, error) {
		return h.store.Matchup(a, b, site)
	})
}
