package handler

import (
	"encoding/json"
	"net/http"

	"deslimste/internal/model"
	"deslimste/internal/service"
	"deslimste/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// RoundHandler exposes the round engines to team clients
type RoundHandler struct {
	sessions *service.SessionManager
}

// NewRoundHandler creates a new round handler
func NewRoundHandler(sessions *service.SessionManager) *RoundHandler {
	return &RoundHandler{sessions: sessions}
}

func roundType(r *http.Request) (model.RoundType, bool) {
	return model.ParseRoundType(mux.Vars(r)["type"])
}

// List handles GET /v1/rounds: progression and which round is unlocked
func (h *RoundHandler) List(w http.ResponseWriter, r *http.Request) {
	teamID := middleware.GetTeamID(r.Context())

	progress, err := h.sessions.Progress(r.Context(), teamID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := progress.Reload(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}

	enterable, err := progress.EnterableRounds(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	team := progress.Team()
	type roundInfo struct {
		Type      model.RoundType `json:"type"`
		Completed bool            `json:"completed"`
		Enterable bool            `json:"enterable"`
	}
	out := make([]roundInfo, 0, len(model.RoundOrder))
	for _, rt := range model.RoundOrder {
		info := roundInfo{Type: rt, Completed: team.HasCompleted(rt)}
		for _, e := range enterable {
			if e == rt {
				info.Enterable = true
			}
		}
		out = append(out, info)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"seconds": team.Seconds,
		"rounds":  out,
	})
}

// Start handles POST /v1/rounds/{type}/start
func (h *RoundHandler) Start(w http.ResponseWriter, r *http.Request) {
	teamID := middleware.GetTeamID(r.Context())
	rt, ok := roundType(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown round type")
		return
	}

	engine, err := h.sessions.StartRound(r.Context(), teamID, rt)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, engine.Snapshot())
}

// Get handles GET /v1/rounds/{type}
func (h *RoundHandler) Get(w http.ResponseWriter, r *http.Request) {
	teamID := middleware.GetTeamID(r.Context())
	rt, ok := roundType(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown round type")
		return
	}

	engine, err := h.sessions.ActiveEngine(teamID, rt)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, engine.Snapshot())
}

// Submit handles POST /v1/rounds/{type}/submit
func (h *RoundHandler) Submit(w http.ResponseWriter, r *http.Request) {
	teamID := middleware.GetTeamID(r.Context())
	rt, ok := roundType(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown round type")
		return
	}

	var sub service.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.sessions.Submit(r.Context(), teamID, rt, sub)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Leave handles POST /v1/rounds/{type}/leave
func (h *RoundHandler) Leave(w http.ResponseWriter, r *http.Request) {
	teamID := middleware.GetTeamID(r.Context())
	h.sessions.LeaveRound(r.Context(), teamID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "left"})
}
