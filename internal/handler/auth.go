package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/agrostack/farmkeep/internal/config"
	"github.com/agrostack/farmkeep/internal/middleware"
	"github.com/agrostack/farmkeep/internal/model"
	"github.com/agrostack/farmkeep/internal/repository"
	"github.com/agrostack/farmkeep/internal/utils"
)

const minPasswordLen = 6

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Sessions *repository.SessionRepo
	Log      zerolog.Logger
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo, sessions *repository.SessionRepo, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Sessions: sessions, Log: log}
}

type registerReq struct {
	Username string `json:"username" form:"signupName"`
	Password string `json:"password" form:"signupPassword"`
	Confirm  string `json:"confirm" form:"signupConfirm"`
}

type loginReq struct {
	Username string `json:"username" form:"loginName"`
	Password string `json:"password" form:"loginMeta"`
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type userPart struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type authResp struct {
	Success bool      `json:"success"`
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

// Register creates a user. Validation mirrors the signup form: all
// fields present, passwords matching, minimum length, unique username.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" || req.Confirm == "" {
		return fail(c, http.StatusBadRequest, "Please fill all fields")
	}
	if req.Password != req.Confirm {
		return fail(c, http.StatusBadRequest, "Passwords do not match")
	}
	if len(req.Password) < minPasswordLen {
		return fail(c, http.StatusBadRequest, "Password must be at least 6 characters long")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "create user failed")
	}
	u, err := h.Users.Create(ctx, req.Username, hash, model.RoleUser)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return fail(c, http.StatusConflict, "Username already exists")
		}
		return fail(c, http.StatusInternalServerError, "create user failed")
	}

	h.Log.Info().Str("username", u.Username).Msg("user registered")
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"user":    userPart{ID: u.ID, Username: u.Username, Role: u.Role},
	})
}

// Login verifies credentials and opens a session. Legacy "salt$sha256"
// rows verify through the fallback path and are re-hashed with bcrypt in
// place, a one-time migration on the user's next successful login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "username/password required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusUnauthorized, "Invalid username or password")
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}

	switch {
	case utils.VerifyPassword(u.Password, req.Password):
		// current scheme
	case utils.IsLegacyHash(u.Password) && utils.VerifyLegacyPassword(u.Password, req.Password):
		h.Log.Warn().Str("username", u.Username).Msg("legacy password hash verified; migrating to bcrypt")
		if newHash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost); err == nil {
			if err := h.Users.UpdatePassword(ctx, u.ID, newHash); err != nil {
				h.Log.Error().Err(err).Str("username", u.Username).Msg("legacy hash migration failed")
			}
		}
	default:
		return fail(c, http.StatusUnauthorized, "Invalid username or password")
	}

	return h.openSession(c, ctx, u, http.StatusOK)
}

// Refresh rotates the refresh token and issues a new access token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return fail(c, http.StatusBadRequest, "refresh_token required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sess, err := h.Sessions.GetActive(ctx, utils.HashRefreshRaw(req.RefreshToken))
	if err != nil {
		return fail(c, http.StatusUnauthorized, "invalid refresh token")
	}
	u, err := h.Users.GetByID(ctx, sess.UserID)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "invalid refresh token")
	}
	if err := h.Sessions.Revoke(ctx, sess.TokenHash); err != nil {
		return fail(c, http.StatusInternalServerError, "session update failed")
	}
	return h.openSession(c, ctx, u, http.StatusOK)
}

// Logout revokes the refresh token and clears the session cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	_ = c.Bind(&req)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if req.RefreshToken != "" {
		_ = h.Sessions.Revoke(ctx, utils.HashRefreshRaw(req.RefreshToken))
	}
	clearSessionCookie(c)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return fail(c, http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"user":    userPart{ID: u.ID, Username: u.Username, Role: u.Role},
	})
}

func (h *AuthHandler) openSession(c echo.Context, ctx context.Context, u *model.User, status int) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "issue access failed")
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "issue refresh failed")
	}
	if err := h.Sessions.Store(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return fail(c, http.StatusInternalServerError, "save session failed")
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    access.Token,
		Path:     "/",
		Expires:  access.Exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(status, authResp{
		Success: true,
		User:    userPart{ID: u.ID, Username: u.Username, Role: u.Role},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp},
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
