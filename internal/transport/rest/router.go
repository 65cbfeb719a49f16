package rest

import (
	"net/http"
	"os"

	"deslimste/internal/repository"
	"deslimste/internal/service"
	"deslimste/internal/transport/rest/handler"
	"deslimste/internal/transport/rest/middleware"
	"deslimste/internal/transport/ws"

	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService  *service.AuthService
	Lifecycle    *service.Lifecycle
	Sessions     *service.SessionManager
	QuestionRepo repository.QuestionRepo
	WSHub        *ws.Hub
	BaseURL      string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	adminHandler := handler.NewAdminHandler(c.AuthService, c.Lifecycle, c.Sessions, c.BaseURL)
	questionHandler := handler.NewQuestionHandler(c.QuestionRepo)
	teamHandler := handler.NewTeamHandler(c.Lifecycle, c.AuthService)
	roundHandler := handler.NewRoundHandler(c.Sessions)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	authMW := middleware.NewAuthMiddleware(c.AuthService)

	r.Use(corsMiddleware)

	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/admin/login", adminHandler.Login).Methods("POST", "OPTIONS")
	// Setup guards itself: open on first run, admin-only afterwards.
	v1.HandleFunc("/admin/setup", adminHandler.Setup).Methods("POST", "OPTIONS")
	v1.HandleFunc("/teams/join", teamHandler.Join).Methods("POST", "OPTIONS")
	v1.HandleFunc("/scoreboard", teamHandler.Scoreboard).Methods("GET", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws", wsHandler.Serve).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Admin routes
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/admin/state", adminHandler.State).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/admin/start", adminHandler.Start).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/admin/reset", adminHandler.Reset).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/admin/hard-reset", adminHandler.HardReset).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/admin/joincard", adminHandler.JoinCard).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/questions", questionHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/questions", questionHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/questions/{id}", questionHandler.Delete).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/teams", teamHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/teams/{id}", teamHandler.Delete).Methods("DELETE", "OPTIONS")

	// Team routes
	teamRoutes := v1.NewRoute().Subrouter()
	teamRoutes.Use(authMW.RequireTeam)

	teamRoutes.HandleFunc("/teams/ready", teamHandler.Ready).Methods("POST", "OPTIONS")
	teamRoutes.HandleFunc("/rounds", roundHandler.List).Methods("GET", "OPTIONS")
	teamRoutes.HandleFunc("/rounds/{type}/start", roundHandler.Start).Methods("POST", "OPTIONS")
	teamRoutes.HandleFunc("/rounds/{type}", roundHandler.Get).Methods("GET", "OPTIONS")
	teamRoutes.HandleFunc("/rounds/{type}/submit", roundHandler.Submit).Methods("POST", "OPTIONS")
	teamRoutes.HandleFunc("/rounds/{type}/leave", roundHandler.Leave).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
