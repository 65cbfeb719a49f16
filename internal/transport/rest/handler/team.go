package handler

import (
	"encoding/json"
	"net/http"
	"sort"

	"deslimste/internal/model"
	"deslimste/internal/service"
	"deslimste/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// TeamHandler handles registration, readiness and the scoreboard
type TeamHandler struct {
	lifecycle *service.Lifecycle
	authSvc   *service.AuthService
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(lifecycle *service.Lifecycle, authSvc *service.AuthService) *TeamHandler {
	return &TeamHandler{lifecycle: lifecycle, authSvc: authSvc}
}

// JoinRequest is the request body for joining the game
type JoinRequest struct {
	Name    string   `json:"name"`
	Players []string `json:"players"`
	Pin     string   `json:"pin"`
}

// Join handles POST /v1/teams/join
func (h *TeamHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	team, err := h.lifecycle.JoinTeam(r.Context(), req.Name, req.Players, req.Pin)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := h.authSvc.GenerateTeamToken(team.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue team token")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"team":  team,
		"token": token,
	})
}

// ReadyRequest is the request body for the lobby ready toggle
type ReadyRequest struct {
	Ready bool `json:"ready"`
}

// Ready handles POST /v1/teams/ready
func (h *TeamHandler) Ready(w http.ResponseWriter, r *http.Request) {
	teamID := middleware.GetTeamID(r.Context())

	var req ReadyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.lifecycle.SetReady(r.Context(), teamID, req.Ready); err != nil {
		writeServiceError(w, err)
		return
	}

	allReady, err := h.lifecycle.AllReady(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ready":    req.Ready,
		"allReady": allReady,
	})
}

// Scoreboard handles GET /v1/scoreboard: teams by seconds, descending
func (h *TeamHandler) Scoreboard(w http.ResponseWriter, r *http.Request) {
	teams, err := h.lifecycle.ListTeams(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	sort.Slice(teams, func(i, j int) bool {
		if teams[i].Seconds != teams[j].Seconds {
			return teams[i].Seconds > teams[j].Seconds
		}
		return teams[i].Timestamp.Before(teams[j].Timestamp)
	})

	type entry struct {
		model.Team
		RoundsCompleted int `json:"roundsCompleted"`
	}
	out := make([]entry, len(teams))
	for i, t := range teams {
		out[i] = entry{Team: t, RoundsCompleted: len(t.CompletedRounds)}
	}
	writeJSON(w, http.StatusOK, out)
}

// List handles GET /v1/teams (admin)
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.lifecycle.ListTeams(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

// Delete handles DELETE /v1/teams/{id} (admin)
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.lifecycle.DeleteTeam(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
