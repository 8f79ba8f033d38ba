package handler_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrostack/farmkeep/internal/model"
	"github.com/agrostack/farmkeep/internal/utils"
)

func TestRegisterValidation(t *testing.T) {
	v := newEnv(t)

	tests := []struct {
		name     string
		body     map[string]string
		wantCode int
		wantErr  string
	}{
		{"missing fields", map[string]string{"username": "a"}, http.StatusBadRequest, "Please fill all fields"},
		{"mismatch", map[string]string{"username": "a", "password": "longenough", "confirm": "different"}, http.StatusBadRequest, "Passwords do not match"},
		{"too short", map[string]string{"username": "a", "password": "abc", "confirm": "abc"}, http.StatusBadRequest, "at least 6 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := v.do(http.MethodPost, "/api/auth/register", "", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Contains(t, body["error"], tt.wantErr)
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	v := newEnv(t)
	v.register("ravi", "password1")

	rec := v.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "ravi", "password": "password2", "confirm": "password2",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "already exists")
}

func TestLoginWrongPassword(t *testing.T) {
	v := newEnv(t)
	v.register("ravi", "password1")

	rec := v.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "ravi", "password": "nope-nope",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = v.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "ghost", "password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginSetsSessionCookie(t *testing.T) {
	v := newEnv(t)
	v.register("ravi", "password1")

	rec := v.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "ravi", "password": "password1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "farmkeep_session" {
			found = true
			assert.True(t, c.HttpOnly)
			assert.NotEmpty(t, c.Value)
		}
	}
	assert.True(t, found, "session cookie not set")
}

func TestLegacyPasswordMigratesOnLogin(t *testing.T) {
	v := newEnv(t)

	salt := "deadbeef"
	sum := sha256.Sum256([]byte("old-password" + salt))
	legacy := salt + "$" + hex.EncodeToString(sum[:])
	_, err := v.users.Create(context.Background(), "veteran", legacy, model.RoleUser)
	require.NoError(t, err)

	token := v.login("veteran", "old-password")
	assert.NotEmpty(t, token)

	u, err := v.users.GetByUsername(context.Background(), "veteran")
	require.NoError(t, err)
	assert.False(t, utils.IsLegacyHash(u.Password), "hash was not migrated")
	assert.True(t, utils.VerifyPassword(u.Password, "old-password"))

	// second login goes through the bcrypt path
	assert.NotEmpty(t, v.login("veteran", "old-password"))
}

func TestRefreshRotatesToken(t *testing.T) {
	v := newEnv(t)
	v.register("ravi", "password1")

	rec := v.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "ravi", "password": "password1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	refresh := decode(t, rec)["refresh"].(map[string]any)["token"].(string)

	rec = v.do(http.MethodPost, "/api/auth/refresh", "", map[string]string{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	next := decode(t, rec)["refresh"].(map[string]any)["token"].(string)
	assert.NotEqual(t, refresh, next)

	// the old token is revoked after rotation
	rec = v.do(http.MethodPost, "/api/auth/refresh", "", map[string]string{"refresh_token": refresh})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// the new one still works
	rec = v.do(http.MethodPost, "/api/auth/refresh", "", map[string]string{"refresh_token": next})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	v := newEnv(t)
	v.register("ravi", "password1")

	rec := v.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "ravi", "password": "password1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	refresh := decode(t, rec)["refresh"].(map[string]any)["token"].(string)

	rec = v.do(http.MethodPost, "/api/auth/logout", "", map[string]string{"refresh_token": refresh})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = v.do(http.MethodPost, "/api/auth/refresh", "", map[string]string{"refresh_token": refresh})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe(t *testing.T) {
	v := newEnv(t)
	token := v.register("ravi", "password1")

	rec := v.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	user := decode(t, rec)["user"].(map[string]any)
	assert.Equal(t, "ravi", user["username"])
	assert.Equal(t, "user", user["role"])
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	v := newEnv(t)

	rec := v.do(http.MethodGet, "/api/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not logged in", decode(t, rec)["error"])

	rec = v.do(http.MethodGet, "/api/tasks", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid session", decode(t, rec)["error"])
}
