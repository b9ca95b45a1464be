package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cinecore/catalog/internal/model"
)

// CategoryStore is the persistence surface for category CRUD.
type CategoryStore interface {
	Create(ctx context.Context, name string) (*model.Category, error)
	GetByID(ctx context.Context, id uint64) (*model.Category, error)
	List(ctx context.Context, page, size int) ([]*model.Category, int64, error)
	UpdateName(ctx context.Context, id uint64, name string) error
	Delete(ctx context.Context, id uint64) error
}

type CategoryHandler struct {
	categories CategoryStore
}

func NewCategoryHandler(categories CategoryStore) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type categoryCreateRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type categoryUpdateRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
}

func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoryCreateRequest
	if done, err := bindAndValidate(c, &req); !done {
		return err
	}
	cat, err := h.categories.Create(c.Request().Context(), strings.TrimSpace(req.Name))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusCreated, "category created", toCategoryResponse(cat))
}

func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid category id")
	}
	cat, err := h.categories.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, "category found", toCategoryResponse(cat))
}

func (h *CategoryHandler) List(c echo.Context) error {
	page, size := parsePagination(c)
	cats, total, err := h.categories.List(c.Request().Context(), page, size)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, "categories listed",
		NewPagedResponse(toCategoryResponses(cats), page, size, total))
}

// Update renames a category. Renaming to the current name is a no-op success
// rather than a uniqueness conflict; an absent name leaves the row untouched.
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid category id")
	}
	var req categoryUpdateRequest
	if done, err := bindAndValidate(c, &req); !done {
		return err
	}

	ctx := c.Request().Context()
	cat, err := h.categories.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name != cat.Name {
			if err := h.categories.UpdateName(ctx, id, name); err != nil {
				return respondError(c, err)
			}
			cat.Name = name
		}
	}
	return ok(c, http.StatusOK, "category updated", toCategoryResponse(cat))
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid category id")
	}
	if err := h.categories.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, "category deleted", nil)
}
