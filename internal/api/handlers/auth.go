package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/mail"
	"regexp"

	"pomotrack-backend/internal/auth"
	"pomotrack-backend/internal/config"
	"pomotrack-backend/internal/repositories"
	"pomotrack-backend/internal/utils"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,50}$`)

const minPasswordLength = 6

// POST /api/auth/register
// Register godoc
// @Summary Register a new account
// @Description Creates a user from username, email, and password. Username and email must be unique.
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} handlers.UserSummary
// @Failure 400 {object} map[string]string
// @Router /api/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if !usernamePattern.MatchString(input.Username) {
		utils.JSONError(w, http.StatusBadRequest, "Username must be 3-50 characters of letters, digits, or underscores")
		return
	}
	if addr, err := mail.ParseAddress(input.Email); err != nil || addr.Address != input.Email {
		utils.JSONError(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	if len(input.Password) < minPasswordLength {
		utils.JSONError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user, err := h.users.Create(r.Context(), input.Username, input.Email, hash)
	switch {
	case err == nil:
	case errors.Is(err, repositories.ErrDuplicateUsername),
		errors.Is(err, repositories.ErrDuplicateEmail):
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	default:
		log.Println("register:", err)
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	utils.JSONResponse(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    summarize(user),
	})
}

// POST /api/auth/login
// Login godoc
// @Summary Log in with username or email
// @Description Verifies credentials and returns a bearer token valid for 7 days. The username field also accepts an email.
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil || input.Username == "" || input.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	// Unknown identifier and wrong password produce the same answer, so a
	// caller can't probe which usernames exist.
	user, err := h.users.FindByUsernameOrEmail(r.Context(), input.Username)
	switch {
	case err == nil:
	case errors.Is(err, repositories.ErrUserNotFound):
		utils.JSONError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	default:
		log.Println("login:", err)
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	if !auth.CheckPassword(input.Password, user.PasswordHash) {
		utils.JSONError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.IssueToken(user.ID, user.Username, config.Envs.JWTSecret)
	if err != nil {
		log.Println("login: sign token:", err)
		utils.JSONError(w, http.StatusInternalServerError, "Failed to create token")
		return
	}

	utils.JSONResponse(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    summarize(user),
	})
}

// GET /api/auth/me
// Me godoc
// @Summary Return the authenticated user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewareIdentity(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Authorization header required")
		return
	}

	user, err := h.users.FindByID(r.Context(), identity.UserID)
	switch {
	case err == nil:
	case errors.Is(err, repositories.ErrUserNotFound):
		utils.JSONError(w, http.StatusNotFound, "User not found")
		return
	default:
		log.Println("me:", err)
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	utils.JSONResponse(w, http.StatusOK, user)
}
