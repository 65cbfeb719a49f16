package handler

import (
	"encoding/json"
	"net/http"

	"deslimste/internal/model"
	"deslimste/internal/repository"

	"github.com/gorilla/mux"
)

// QuestionHandler handles admin question CRUD
type QuestionHandler struct {
	repo repository.QuestionRepo
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(repo repository.QuestionRepo) *QuestionHandler {
	return &QuestionHandler{repo: repo}
}

// Create handles POST /v1/questions. Malformed questions are rejected
// here so play never sees them.
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var q model.Question
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := q.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repo.Insert(r.Context(), &q); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

// List handles GET /v1/questions with an optional ?type= filter
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		questions []model.Question
		err       error
	)
	if typeParam := r.URL.Query().Get("type"); typeParam != "" {
		rt, ok := model.ParseRoundType(typeParam)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown round type")
			return
		}
		questions, err = h.repo.ListByType(r.Context(), rt)
	} else {
		questions, err = h.repo.ListAll(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if questions == nil {
		questions = []model.Question{}
	}
	writeJSON(w, http.StatusOK, questions)
}

// Delete handles DELETE /v1/questions/{id}
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
