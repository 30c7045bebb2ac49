package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"

	"nfl-rankings-go/logging"
	"nfl-rankings-go/models"
	"nfl-rankings-go/services"
)

// RankingHandler serves the franchise rankings dashboard and its chart data
type RankingHandler struct {
	templates      *template.Template
	rankingService *services.RankingService
	logger         *logging.Logger
}

// NewRankingHandler creates a new ranking handler
func NewRankingHandler(templates *template.Template, rankingService *services.RankingService) *RankingHandler {
	return &RankingHandler{
		templates:      templates,
		rankingService: rankingService,
		logger:         logging.WithPrefix("RankingHandler"),
	}
}

// dashboardData is everything dashboard.html renders.
type dashboardData struct {
	Title       string
	Filter      services.RankingFilter
	Options     *services.FilterOptions
	ThroughYear int
	AllTime     []models.AllTimeRank
	Snapshot    []models.FranchiseSummary
	Query       string // raw query string, reused by the chart fetches
}

// GetDashboard handles GET / and GET /rankings
func (h *RankingHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := queryFilter(r)

	options, err := h.rankingService.GetFilterOptions(ctx, filter.Divisions)
	if err != nil {
		h.logger.Errorf("Error building filter options: %v", err)
		http.Error(w, "Unable to load ranking data", http.StatusInternalServerError)
		return
	}

	if filter.ThroughYear == 0 {
		filter.ThroughYear = options.MaxYear
	}

	allTime, err := h.rankingService.AllTimeRankings(ctx, filter)
	if err != nil {
		h.logger.Errorf("Error building all-time rankings: %v", err)
		http.Error(w, "Unable to load ranking data", http.StatusInternalServerError)
		return
	}

	snapshot, err := h.rankingService.SnapshotComparison(ctx, filter)
	if err != nil {
		h.logger.Errorf("Error building snapshot comparison: %v", err)
		http.Error(w, "Unable to load ranking data", http.StatusInternalServerError)
		return
	}

	data := dashboardData{
		Title:       "NFL Franchise Rankings",
		Filter:      filter,
		Options:     options,
		ThroughYear: filter.ThroughYear,
		AllTime:     allTime,
		Snapshot:    snapshot,
		Query:       r.URL.RawQuery,
	}

	renderTemplate(h.templates, h.logger, w, "dashboard.html", data)
}

// GetRankHistory handles GET /api/rank-history - line chart series as JSON
func (h *RankingHandler) GetRankHistory(w http.ResponseWriter, r *http.Request) {
	series, err := h.rankingService.RankHistory(r.Context(), queryFilter(r))
	if err != nil {
		h.logger.Errorf("Error building rank history: %v", err)
		http.Error(w, "Unable to load rank history", http.StatusInternalServerError)
		return
	}
	writeJSON(w, series, h.logger)
}

// GetWinPctHistory handles GET /api/winpct-history - line chart series as JSON
func (h *RankingHandler) GetWinPctHistory(w http.ResponseWriter, r *http.Request) {
	series, err := h.rankingService.WinPctHistory(r.Context(), queryFilter(r))
	if err != nil {
		h.logger.Errorf("Error building winning-pct history: %v", err)
		http.Error(w, "Unable to load winning percentage history", http.StatusInternalServerError)
		return
	}
	writeJSON(w, series, h.logger)
}

func writeJSON(w http.ResponseWriter, payload interface{}, logger *logging.Logger) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Errorf("Error encoding JSON response: %v", err)
	}
}
