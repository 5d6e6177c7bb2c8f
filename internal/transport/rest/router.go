package rest

import (
	"adventcal/internal/repository"
	"adventcal/internal/service"
	"adventcal/internal/store"
	"adventcal/internal/transport/rest/handler"
	"adventcal/internal/transport/rest/middleware"
	"adventcal/internal/transport/ws"
	"net/http"

	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	Actions     *service.Actions
	Store       *store.Store
	AuthService *service.AuthService
	WSHub       *ws.Hub
	// Clients is set only in mock mode
	Clients handler.ClientSwitcher
	// Events is set only when the journal is configured
	Events      repository.EventRepo
	Metrics     http.Handler
	CORSOrigins string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	stateHandler := handler.NewStateHandler(c.Actions, c.Store)
	sessionHandler := handler.NewSessionHandler(c.Actions, c.AuthService)
	playerHandler := handler.NewPlayerHandler(c.Actions, c.Store)
	calendarHandler := handler.NewCalendarHandler(c.Actions)
	leaderboardHandler := handler.NewLeaderboardHandler(c.Actions, c.Store)
	rewardHandler := handler.NewRewardHandler(c.Actions, c.Store)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService, func() string {
		if p := c.Store.Snapshot().SessionPlayer; p != nil {
			return p.ID
		}
		return ""
	})

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORSOrigins))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/state", stateHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/reload", stateHandler.Reload).Methods("POST", "OPTIONS")
	v1.HandleFunc("/calendar/{day:[0-9]+}/open", calendarHandler.OpenDay).Methods("POST", "OPTIONS")
	v1.HandleFunc("/tasks/active", calendarHandler.CloseTask).Methods("DELETE", "OPTIONS")
	v1.HandleFunc("/leaderboard/refresh", leaderboardHandler.Refresh).Methods("POST", "OPTIONS")
	v1.HandleFunc("/leaderboard/modal", leaderboardHandler.Open).Methods("POST", "OPTIONS")
	v1.HandleFunc("/leaderboard/modal/more", leaderboardHandler.More).Methods("POST", "OPTIONS")
	v1.HandleFunc("/leaderboard/modal", leaderboardHandler.Close).Methods("DELETE", "OPTIONS")
	v1.HandleFunc("/rewards", rewardHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/players", sessionHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/session/signin", sessionHandler.SignIn).Methods("POST", "OPTIONS")
	v1.HandleFunc("/players/me", playerHandler.Me).Methods("GET", "OPTIONS")

	// WebSocket route (token in query param is optional)
	v1.HandleFunc("/ws", wsHandler.Stream).Methods("GET")

	if c.Clients != nil {
		mockHandler := handler.NewMockHandler(c.Clients, c.Actions, c.Store)
		v1.HandleFunc("/mock/clients", mockHandler.Clients).Methods("GET", "OPTIONS")
		v1.HandleFunc("/mock/clients/{clientId}", mockHandler.SwitchClient).Methods("PUT", "OPTIONS")
	}
	if c.Events != nil {
		eventHandler := handler.NewEventHandler(c.Events)
		v1.HandleFunc("/events", eventHandler.Recent).Methods("GET", "OPTIONS")
	}

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	if c.Metrics != nil {
		r.Handle("/metrics", c.Metrics).Methods("GET")
	}

	// Player routes (require the session player's token)
	playerRoutes := v1.NewRoute().Subrouter()
	playerRoutes.Use(authMW.RequirePlayer)

	playerRoutes.HandleFunc("/tasks/{taskId}/complete", calendarHandler.CompleteTask).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/players/me", playerHandler.UpdateProfile).Methods("PATCH", "OPTIONS")
	playerRoutes.HandleFunc("/session/logout", sessionHandler.Logout).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/rewards/{rewardId}/purchase", rewardHandler.Purchase).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
