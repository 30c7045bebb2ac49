package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"nfl-rankings-go/logging"
	"nfl-rankings-go/middleware"
	"nfl-rankings-go/models"
	"nfl-rankings-go/services"
)

// SimulatorHandler serves the interactive playoff bracket simulator.
// When the season dataset was unusable at startup the handler still serves
// the page, with an error banner instead of a bracket; the ranking views are
// unaffected by simulator data problems.
type SimulatorHandler struct {
	templates  *template.Template
	sessions   *services.SessionService
	bracket    *services.BracketService
	delta      *services.RankDeltaService
	seasonYear int
	dataErr    error
	logger     *logging.Logger
}

// NewSimulatorHandler creates a new simulator handler. bracket may be nil
// when dataErr is set.
func NewSimulatorHandler(templates *template.Template, sessions *services.SessionService,
	bracket *services.BracketService, delta *services.RankDeltaService, seasonYear int, dataErr error) *SimulatorHandler {
	return &SimulatorHandler{
		templates:  templates,
		sessions:   sessions,
		bracket:    bracket,
		delta:      delta,
		seasonYear: seasonYear,
		dataErr:    dataErr,
		logger:     logging.WithPrefix("SimulatorHandler"),
	}
}

// stageGroup is one bracket stage with its per-scope statuses, for rendering.
type stageGroup struct {
	Stage    models.BracketStage
	Statuses []services.StageStatus
	Unlocked bool
	Complete bool
}

// simulatorData is everything simulator.html renders.
type simulatorData struct {
	Title      string
	SeasonYear int
	DataError  string
	Error      string
	Stages     []stageGroup
	Results    []models.SimulationResult
	AnyPicks   bool
}

// GetSimulator handles GET /simulator
func (h *SimulatorHandler) GetSimulator(w http.ResponseWriter, r *http.Request) {
	data := simulatorData{
		Title:      "Playoff Simulator",
		SeasonYear: h.seasonYear,
		Error:      r.URL.Query().Get("error"),
	}

	if h.dataErr != nil {
		h.logger.Warnf("Simulator unavailable: %v", h.dataErr)
		data.DataError = "The season dataset is incomplete; the simulator is unavailable until the data is corrected."
		renderTemplate(h.templates, h.logger, w, "simulator.html", data)
		return
	}

	err := h.sessions.WithPickSet(middleware.SessionID(r), func(ps *models.PickSet) error {
		statuses := h.bracket.StageStatuses(ps)
		groups := make(map[models.BracketStage][]services.StageStatus)
		for _, status := range statuses {
			groups[status.Stage] = append(groups[status.Stage], status)
		}
		for _, stage := range models.AllStages() {
			group := stageGroup{
				Stage:    stage,
				Statuses: groups[stage],
				Unlocked: h.bracket.Unlocked(ps, stage),
				Complete: h.bracket.StageComplete(ps, stage),
			}
			data.Stages = append(data.Stages, group)
		}

		data.Results = h.delta.BuildResults(h.bracket.Teams(), ps)
		for _, stage := range models.AllStages() {
			if len(ps.TeamsAt(stage)) > 0 {
				data.AnyPicks = true
				break
			}
		}
		return nil
	})
	if err != nil {
		h.logger.Errorf("Failed to read simulation session: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	renderTemplate(h.templates, h.logger, w, "simulator.html", data)
}

// PostDivisionWinner handles POST /simulator/division-winner
func (h *SimulatorHandler) PostDivisionWinner(w http.ResponseWriter, r *http.Request) {
	h.applySelection(w, r, func(ps *models.PickSet) error {
		return h.bracket.SelectDivisionWinner(ps, r.FormValue("division"), r.FormValue("team"))
	})
}

// PostWildCards handles POST /simulator/wildcards
func (h *SimulatorHandler) PostWildCards(w http.ResponseWriter, r *http.Request) {
	h.applySelection(w, r, func(ps *models.PickSet) error {
		return h.bracket.SelectWildCards(ps, r.FormValue("conference"), r.Form["teams"])
	})
}

// PostRoundWinners handles POST /simulator/round-winners
func (h *SimulatorHandler) PostRoundWinners(w http.ResponseWriter, r *http.Request) {
	var stage models.BracketStage
	switch r.FormValue("stage") {
	case "wildcard":
		stage = models.StageWildCardRound
	case "divisional":
		stage = models.StageDivisionalRound
	default:
		redirectWithMessage(w, r, "/simulator", "error", "unknown round")
		return
	}

	h.applySelection(w, r, func(ps *models.PickSet) error {
		return h.bracket.SelectRoundWinners(ps, stage, r.FormValue("conference"), r.Form["teams"])
	})
}

// PostConferenceChampion handles POST /simulator/conference-champion
func (h *SimulatorHandler) PostConferenceChampion(w http.ResponseWriter, r *http.Request) {
	h.applySelection(w, r, func(ps *models.PickSet) error {
		return h.bracket.SelectConferenceChampion(ps, r.FormValue("conference"), r.FormValue("team"))
	})
}

// PostSuperBowlChampion handles POST /simulator/super-bowl
func (h *SimulatorHandler) PostSuperBowlChampion(w http.ResponseWriter, r *http.Request) {
	h.applySelection(w, r, func(ps *models.PickSet) error {
		return h.bracket.SelectSuperBowlChampion(ps, r.FormValue("team"))
	})
}

// PostReset handles POST /simulator/reset
func (h *SimulatorHandler) PostReset(w http.ResponseWriter, r *http.Request) {
	if h.dataErr == nil {
		h.sessions.Reset(middleware.SessionID(r))
	}
	http.Redirect(w, r, "/simulator", http.StatusSeeOther)
}

// applySelection runs one selection event against the session's PickSet and
// redirects back to the simulator, flashing recoverable errors to the user.
func (h *SimulatorHandler) applySelection(w http.ResponseWriter, r *http.Request, apply func(*models.PickSet) error) {
	if h.dataErr != nil {
		http.Redirect(w, r, "/simulator", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		redirectWithMessage(w, r, "/simulator", "error", "malformed form submission")
		return
	}

	if err := h.sessions.WithPickSet(middleware.SessionID(r), apply); err != nil {
		if errors.Is(err, services.ErrInvalidSelection) || errors.Is(err, services.ErrStageLocked) {
			h.logger.Debugf("Rejected selection: %v", err)
			redirectWithMessage(w, r, "/simulator", "error", err.Error())
			return
		}
		h.logger.Errorf("Selection failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/simulator", http.StatusSeeOther)
}
