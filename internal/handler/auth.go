package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinecore/catalog/internal/model"
	"github.com/cinecore/catalog/internal/utils"
)

// AuthUserStore is the slice of user persistence the auth endpoints need.
type AuthUserStore interface {
	Create(ctx context.Context, fullname, email, passwordHash, role string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
}

// TokenStore persists and validates hashed refresh tokens.
type TokenStore interface {
	StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
}

// AuthHandler serves register, login and the refresh-token lifecycle.
type AuthHandler struct {
	users          AuthUserStore
	tokens         TokenStore
	jwtSecret      string
	accessTTLMin   int
	refreshTTLDays int
	bcryptCost     int
}

func NewAuthHandler(users AuthUserStore, tokens TokenStore, jwtSecret string, accessTTLMin, refreshTTLDays, bcryptCost int) *AuthHandler {
	return &AuthHandler{
		users:          users,
		tokens:         tokens,
		jwtSecret:      jwtSecret,
		accessTTLMin:   accessTTLMin,
		refreshTTLDays: refreshTTLDays,
		bcryptCost:     bcryptCost,
	}
}

type registerRequest struct {
	Fullname string `json:"fullname" validate:"required,min=3,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type tokenResponse struct {
	AccessToken  string       `json:"accessToken"`
	ExpiresAt    time.Time    `json:"expiresAt"`
	RefreshToken string       `json:"refreshToken"`
	User         userResponse `json:"user"`
}

// issueTokens mints an access token and a stored refresh token for a user.
func (h *AuthHandler) issueTokens(ctx context.Context, u *model.User) (tokenResponse, error) {
	access, err := utils.NewAccessToken(h.jwtSecret, u.ID, u.Role, h.accessTTLMin)
	if err != nil {
		return tokenResponse{}, err
	}
	refresh, err := utils.NewRefreshToken(h.refreshTTLDays)
	if err != nil {
		return tokenResponse{}, err
	}
	if err := h.tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return tokenResponse{}, err
	}
	return tokenResponse{
		AccessToken:  access.Token,
		ExpiresAt:    access.Exp,
		RefreshToken: refresh.Raw,
		User:         toUserResponse(u),
	}, nil
}

// Register creates an account. The role is always USER here; promotion to
// ADMIN only happens through the admin user update endpoint.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if done, err := bindAndValidate(c, &req); !done {
		return err
	}

	ctx := c.Request().Context()
	hash, err := utils.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		return respondError(c, err)
	}
	u, err := h.users.Create(ctx, strings.TrimSpace(req.Fullname), req.Email, hash, model.RoleUser)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.issueTokens(ctx, u)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusCreated, "user registered", out)
}

// Login authenticates by email and password. An unknown email is a 404 and a
// wrong password a 401, so the two failure modes stay distinguishable.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if done, err := bindAndValidate(c, &req); !done {
		return err
	}

	ctx := c.Request().Context()
	u, err := h.users.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return respondError(c, err)
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return fail(c, http.StatusUnauthorized, "invalid credentials")
	}
	out, err := h.issueTokens(ctx, u)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, "login successful", out)
}

// Refresh rotates a refresh token: the presented token is revoked and a fresh
// access/refresh pair is issued, so each raw token is usable exactly once.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if done, err := bindAndValidate(c, &req); !done {
		return err
	}

	ctx := c.Request().Context()
	hash := utils.HashRefreshRaw(req.RefreshToken)
	userID, err := h.tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.tokens.RevokeByHash(ctx, hash); err != nil {
		return respondError(c, err)
	}
	u, err := h.users.GetByID(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.issueTokens(ctx, u)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, "token refreshed", out)
}

// Logout revokes the presented refresh token. Revoking an already unknown
// token still succeeds; logout is idempotent.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshRequest
	if done, err := bindAndValidate(c, &req); !done {
		return err
	}
	if err := h.tokens.RevokeByHash(c.Request().Context(), utils.HashRefreshRaw(req.RefreshToken)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
