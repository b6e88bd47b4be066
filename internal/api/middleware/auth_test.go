package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pomotrack-backend/internal/auth"
	"pomotrack-backend/internal/config"

	"github.com/stretchr/testify/require"
)

func callGuarded(t *testing.T, authorization string) (*httptest.ResponseRecorder, *auth.Identity) {
	t.Helper()

	var seen *auth.Identity
	guarded := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		seen = identity
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)
	return rec, seen
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	rec, _ := callGuarded(t, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotEmpty(t, errorBody(t, rec))
}

func TestRequireAuth_WrongScheme(t *testing.T) {
	rec, _ := callGuarded(t, "Basic dXNlcjpwYXNz")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_MissingTokenSegment(t *testing.T) {
	rec, _ := callGuarded(t, "Bearer ")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	rec, _ := callGuarded(t, "Bearer not.a.jwt")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	token, err := auth.IssueToken(7, "alice", config.Envs.JWTSecret)
	require.NoError(t, err)

	rec, identity := callGuarded(t, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, identity)
	require.EqualValues(t, 7, identity.UserID)
	require.Equal(t, "alice", identity.Username)
}
