package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"

	"pomotrack-backend/internal/api/services"
	"pomotrack-backend/internal/auth"
	"pomotrack-backend/internal/config"
	"pomotrack-backend/internal/models"
	"pomotrack-backend/internal/repositories"
	"pomotrack-backend/internal/utils"
)

// GET /api/auth/google/login
// GoogleLogin godoc
// @Summary Start the Google sign-in flow
// @Tags Auth
// @Router /api/auth/google/login [get]
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := oauthState()
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "Failed to generate OAuth state")
		return
	}
	http.Redirect(w, r, services.GoogleOauthConfig.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GET /api/auth/google/callback
// GoogleCallback godoc
// @Summary Google sign-in redirect target
// @Description Exchanges the authorization code, finds or creates the matching user, and redirects to the frontend with a bearer token.
// @Tags Auth
// @Router /api/auth/google/callback [get]
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if !validOauthState(r.FormValue("state")) {
		utils.JSONError(w, http.StatusBadRequest, "Invalid OAuth state")
		return
	}

	token, err := services.GoogleOauthConfig.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		log.Println("google callback: code exchange:", err)
		utils.JSONError(w, http.StatusInternalServerError, "Code exchange failed")
		return
	}

	client := services.GoogleOauthConfig.Client(r.Context(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "Failed to get user info")
		return
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	var googleUser struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(data, &googleUser); err != nil || googleUser.Email == "" {
		utils.JSONError(w, http.StatusInternalServerError, "Failed to parse user info")
		return
	}

	user, err := h.findOrCreateGoogleUser(r, googleUser.Email, googleUser.Name)
	if err != nil {
		log.Println("google callback:", err)
		utils.JSONError(w, http.StatusInternalServerError, "Failed to sign in with Google")
		return
	}

	jwtToken, err := auth.IssueToken(user.ID, user.Username, config.Envs.JWTSecret)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "Failed to create token")
		return
	}

	redirectURL := fmt.Sprintf("%s/login?token=%s", config.Envs.FrontendURL, jwtToken)
	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}

// findOrCreateGoogleUser matches a Google account to a local user by email,
// registering one on first sign-in. Google accounts carry an empty password
// hash, so they can never log in with a password.
func (h *Handler) findOrCreateGoogleUser(r *http.Request, email, name string) (*models.User, error) {
	user, err := h.users.FindByUsernameOrEmail(r.Context(), email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}

	base := sanitizeUsername(name, email)
	username := base
	for attempt := 2; ; attempt++ {
		user, err = h.users.Create(r.Context(), username, email, "")
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, repositories.ErrDuplicateUsername) || attempt > 5 {
			return nil, err
		}
		username = fmt.Sprintf("%s_%d", base, attempt)
	}
}

var invalidUsernameChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

func sanitizeUsername(name, email string) string {
	candidate := invalidUsernameChars.ReplaceAllString(name, "_")
	if len(candidate) < 3 {
		local, _, _ := strings.Cut(email, "@")
		candidate = invalidUsernameChars.ReplaceAllString(local, "_")
	}
	for len(candidate) < 3 {
		candidate += "_"
	}
	if len(candidate) > 50 {
		candidate = candidate[:50]
	}
	return candidate
}

func oauthState() (string, error) {
	return utils.GenerateSecureToken(16)
}

func validOauthState(state string) bool {
	raw, err := base64.RawURLEncoding.DecodeString(state)
	return err == nil && len(raw) == 16
}
