package api

import (
	"log"
	"net/http"

	_ "pomotrack-backend/docs"
	httpSwagger "github.com/swaggo/http-swagger"

	"pomotrack-backend/internal/api/handlers"
	"pomotrack-backend/internal/api/middleware"
	"pomotrack-backend/internal/config"
	"pomotrack-backend/internal/utils"

	"github.com/rs/cors"
)

func SetupRouter(h *handlers.Handler) http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(config.Envs.CorsConfig)

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		utils.JSONResponse(w, http.StatusOK, map[string]string{"message": "Backend is running"})
	})

	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	mainMux.HandleFunc("POST /api/auth/register", h.Register)
	mainMux.HandleFunc("POST /api/auth/login", h.Login)

	if config.Envs.Google.ClientID != "" {
		mainMux.HandleFunc("GET /api/auth/google/login", h.GoogleLogin)
		mainMux.HandleFunc("GET /api/auth/google/callback", h.GoogleCallback)
	}

	// ---------- PROTECTED ROUTES ----------
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("GET /api/auth/me", h.Me)
	protectedMux.HandleFunc("GET /api/tasks", h.ListTasks)
	protectedMux.HandleFunc("POST /api/tasks", h.AddTask)
	protectedMux.HandleFunc("DELETE /api/tasks/{id}", h.DeleteTask)
	protectedMux.HandleFunc("POST /api/tasks/{id}/pomodoro", h.IncrementPomodoro)

	guarded := middleware.RequireAuth(protectedMux)
	mainMux.Handle("/api/auth/me", guarded)
	mainMux.Handle("/api/tasks", guarded)
	mainMux.Handle("/api/tasks/", guarded)

	log.Println("Router initialized")
	handler := c.Handler(mainMux)
	handler = middleware.Logger(handler)
	return handler
}
