package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinecore/catalog/internal/model"
)

// MovieCategoryStore manages the movie <-> category association.
type MovieCategoryStore interface {
	Link(ctx context.Context, movieID, categoryID uint64) error
	Unlink(ctx context.Context, movieID, categoryID uint64) error
	CategoriesOfMovie(ctx context.Context, movieID uint64) ([]*model.Category, error)
	MoviesOfCategory(ctx context.Context, categoryID uint64) ([]*model.Movie, error)
}

type MovieCategoryHandler struct {
	links MovieCategoryStore
}

func NewMovieCategoryHandler(links MovieCategoryStore) *MovieCategoryHandler {
	return &MovieCategoryHandler{links: links}
}

// linkIDs parses both path ids, writing the 400 itself when one is
// malformed. done is false when the request was rejected; callers must then
// return err without touching the store so only one envelope is written.
func (h *MovieCategoryHandler) linkIDs(c echo.Context) (movieID, categoryID uint64, done bool, err error) {
	movieID, perr := parseID(c, "id")
	if perr != nil {
		return 0, 0, false, fail(c, http.StatusBadRequest, "invalid movie id")
	}
	categoryID, perr = parseID(c, "categoryId")
	if perr != nil {
		return 0, 0, false, fail(c, http.StatusBadRequest, "invalid category id")
	}
	return movieID, categoryID, true, nil
}

// Link attaches a category to a movie. Both sides must exist; linking the
// same pair twice is a conflict.
func (h *MovieCategoryHandler) Link(c echo.Context) error {
	movieID, categoryID, done, err := h.linkIDs(c)
	if !done {
		return err
	}
	if err := h.links.Link(c.Request().Context(), movieID, categoryID); err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusCreated, "category assigned to movie", nil)
}

func (h *MovieCategoryHandler) Unlink(c echo.Context) error {
	movieID, categoryID, done, err := h.linkIDs(c)
	if !done {
		return err
	}
	if err := h.links.Unlink(c.Request().Context(), movieID, categoryID); err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, "category removed from movie", nil)
}

func (h *MovieCategoryHandler) CategoriesOfMovie(c echo.Context) error {
	movieID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid movie id")
	}
	cats, err := h.links.CategoriesOfMovie(c.Request().Context(), movieID)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, "categories of movie", toCategoryResponses(cats))
}

func (h *MovieCategoryHandler) MoviesOfCategory(c echo.Context) error {
	categoryID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid category id")
	}
	ms, err := h.links.MoviesOfCategory(c.Request().Context(), categoryID)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, "movies of category", toMovieResponses(ms))
}
