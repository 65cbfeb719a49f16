package handler

import (
	"encoding/json"
	"net/http"

	"deslimste/internal/model"
	"deslimste/internal/service"

	qrcode "github.com/skip2/go-qrcode"
)

// AdminHandler handles game configuration and lifecycle endpoints
type AdminHandler struct {
	authSvc   *service.AuthService
	lifecycle *service.Lifecycle
	sessions  *service.SessionManager
	baseURL   string
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(authSvc *service.AuthService, lifecycle *service.Lifecycle, sessions *service.SessionManager, baseURL string) *AdminHandler {
	return &AdminHandler{
		authSvc:   authSvc,
		lifecycle: lifecycle,
		sessions:  sessions,
		baseURL:   baseURL,
	}
}

// Login handles POST /v1/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authSvc.Login(r.Context(), req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// SetupRequest is the request body for game configuration
type SetupRequest struct {
	FamilyName    string         `json:"familyName"`
	Mode          model.GameMode `json:"mode"`
	AdminPassword string         `json:"adminPassword,omitempty"`
}

// Setup handles POST /v1/admin/setup. The first call may come without a
// token because no password exists yet; once a password is on record,
// reconfiguration requires a valid admin token.
func (h *AdminHandler) Setup(w http.ResponseWriter, r *http.Request) {
	var req SetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	gs, err := h.lifecycle.State(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if gs.AdminPassword != "" {
		token := extractBearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}
		if _, err := h.authSvc.ValidateAdminToken(token); err != nil {
			writeServiceError(w, err)
			return
		}
	}

	gs, err = h.lifecycle.Configure(r.Context(), req.FamilyName, req.Mode, req.AdminPassword)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"familyName": gs.FamilyName,
		"mode":       gs.Mode,
		"pinCode":    gs.PinCode,
	})
}

// State handles GET /v1/admin/state
func (h *AdminHandler) State(w http.ResponseWriter, r *http.Request) {
	gs, err := h.lifecycle.State(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	allReady, err := h.lifecycle.AllReady(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"familyName":  gs.FamilyName,
		"mode":        gs.Mode,
		"pinCode":     gs.PinCode,
		"phase":       gs.Phase(),
		"gameStarted": gs.GameStarted,
		"allReady":    allReady,
	})
}

// Start handles POST /v1/admin/start
func (h *AdminHandler) Start(w http.ResponseWriter, r *http.Request) {
	if err := h.lifecycle.Start(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "started"})
}

// Reset handles POST /v1/admin/reset (soft reset: teams survive)
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.lifecycle.SoftReset(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	h.sessions.Clear(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// HardReset handles POST /v1/admin/hard-reset
func (h *AdminHandler) HardReset(w http.ResponseWriter, r *http.Request) {
	if err := h.lifecycle.HardReset(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	h.sessions.Clear(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "hard-reset"})
}

// JoinCard handles GET /v1/admin/joincard: a QR code PNG encoding the
// join URL with the current PIN, for showing on the living-room TV.
func (h *AdminHandler) JoinCard(w http.ResponseWriter, r *http.Request) {
	gs, err := h.lifecycle.State(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !gs.Configured() {
		writeServiceError(w, service.ErrNotConfigured)
		return
	}

	png, err := qrcode.Encode(h.baseURL+"/join?pin="+gs.PinCode, qrcode.Medium, 256)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render join card")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
