package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// UserAdminHandler serves the ADMIN-only user management endpoints.
type UserAdminHandler struct {
	users      UserStore
	sessions   SessionRevoker
	bcryptCost int
}

func NewUserAdminHandler(users UserStore, sessions SessionRevoker, bcryptCost int) *UserAdminHandler {
	return &UserAdminHandler{users: users, sessions: sessions, bcryptCost: bcryptCost}
}

// adminUserUpdateRequest extends the profile update with the role; only
// admins can promote or demote an account.
type adminUserUpdateRequest struct {
	Fullname *string `json:"fullname" validate:"omitempty,min=3,max=80"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8,max=100"`
	Role     *string `json:"role" validate:"omitempty,oneof=USER ADMIN"`
}

func (h *UserAdminHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}
	u, err := h.users.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, "user found", toUserResponse(u))
}

func (h *UserAdminHandler) List(c echo.Context) error {
	us, err := h.users.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]userResponse, 0, len(us))
	for _, u := range us {
		out = append(out, toUserResponse(u))
	}
	return ok(c, http.StatusOK, "users listed", out)
}

func (h *UserAdminHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}
	var req adminUserUpdateRequest
	if done, err := bindAndValidate(c, &req); !done {
		return err
	}

	ctx := c.Request().Context()
	u, err := h.users.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	if err := applyUserUpdate(u, req.Fullname, req.Email, req.Password, h.bcryptCost); err != nil {
		return respondError(c, err)
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if err := h.users.Update(ctx, u); err != nil {
		return respondError(c, err)
	}
	// an admin-set password invalidates the user's sessions just like a
	// self-service change does
	if req.Password != nil {
		if err := h.sessions.RevokeAllForUser(ctx, u.ID); err != nil {
			return respondError(c, err)
		}
	}
	return ok(c, http.StatusOK, "user updated", toUserResponse(u))
}

func (h *UserAdminHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}
	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, "user deleted", nil)
}
