package handlers

import (
	"net/http"

	"pomotrack-backend/internal/api/middleware"
	"pomotrack-backend/internal/auth"
	"pomotrack-backend/internal/models"
	"pomotrack-backend/internal/repositories"
)

// Handler bundles the stores the endpoints need. Wiring them in explicitly
// keeps the handlers testable against an in-memory database.
type Handler struct {
	users *repositories.UserRepository
	tasks *repositories.TaskRepository
}

func New(users *repositories.UserRepository, tasks *repositories.TaskRepository) *Handler {
	return &Handler{users: users, tasks: tasks}
}

// UserSummary is the only shape a user ever leaves the API in; the password
// hash never travels.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func summarize(u *models.User) UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Email: u.Email}
}

func middlewareIdentity(r *http.Request) (*auth.Identity, bool) {
	return middleware.IdentityFromContext(r.Context())
}
