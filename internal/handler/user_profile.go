package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cinecore/catalog/internal/model"
	"github.com/cinecore/catalog/internal/utils"
)

// UserStore is the full user persistence surface shared by the profile and
// admin handlers.
type UserStore interface {
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id uint64) error
}

// SessionRevoker invalidates every refresh token a user holds. Used when a
// password changes so stolen refresh tokens die with the old credential.
type SessionRevoker interface {
	RevokeAllForUser(ctx context.Context, userID uint64) error
}

// ProfileHandler serves the authenticated user's own account.
type ProfileHandler struct {
	users      UserStore
	sessions   SessionRevoker
	bcryptCost int
}

func NewProfileHandler(users UserStore, sessions SessionRevoker, bcryptCost int) *ProfileHandler {
	return &ProfileHandler{users: users, sessions: sessions, bcryptCost: bcryptCost}
}

// profileUpdateRequest: pointer fields mark presence. The role is absent on
// purpose; a user can never change their own role.
type profileUpdateRequest struct {
	Fullname *string `json:"fullname" validate:"omitempty,min=3,max=80"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8,max=100"`
}

func (h *ProfileHandler) Get(c echo.Context) error {
	userID, ok2 := currentUserID(c)
	if !ok2 {
		return fail(c, http.StatusUnauthorized, "missing identity")
	}
	u, err := h.users.GetByID(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, "profile", toUserResponse(u))
}

func (h *ProfileHandler) Update(c echo.Context) error {
	userID, ok2 := currentUserID(c)
	if !ok2 {
		return fail(c, http.StatusUnauthorized, "missing identity")
	}
	var req profileUpdateRequest
	if done, err := bindAndValidate(c, &req); !done {
		return err
	}

	ctx := c.Request().Context()
	u, err := h.users.GetByID(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}
	if err := applyUserUpdate(u, req.Fullname, req.Email, req.Password, h.bcryptCost); err != nil {
		return respondError(c, err)
	}
	if err := h.users.Update(ctx, u); err != nil {
		return respondError(c, err)
	}
	if req.Password != nil {
		if err := h.sessions.RevokeAllForUser(ctx, u.ID); err != nil {
			return respondError(c, err)
		}
	}
	return ok(c, http.StatusOK, "profile updated", toUserResponse(u))
}

// applyUserUpdate merges present fields into a user entity, hashing a new
// password when one is supplied.
func applyUserUpdate(u *model.User, fullname, email, password *string, bcryptCost int) error {
	if fullname != nil {
		u.Fullname = strings.TrimSpace(*fullname)
	}
	if email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*email))
	}
	if password != nil {
		hash, err := utils.HashPassword(*password, bcryptCost)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
	}
	return nil
}
