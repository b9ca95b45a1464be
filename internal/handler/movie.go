package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinecore/catalog/internal/model"
)

// MovieStore is the persistence surface for movie CRUD.
type MovieStore interface {
	Create(ctx context.Context, m *model.Movie) (*model.Movie, error)
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
	List(ctx context.Context, page, size int) ([]*model.Movie, int64, error)
	Update(ctx context.Context, m *model.Movie) error
	Delete(ctx context.Context, id uint64) error
}

// EventPublisher announces catalog changes. Publishing is best-effort; a
// broken broker never fails the request that triggered the event.
type EventPublisher interface {
	MovieCreated(m *model.Movie)
	MovieDeleted(id uint64, title string)
}

type MovieHandler struct {
	movies MovieStore
	events EventPublisher
}

func NewMovieHandler(movies MovieStore, events EventPublisher) *MovieHandler {
	return &MovieHandler{movies: movies, events: events}
}

type movieCreateRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=200"`
	Description string    `json:"description" validate:"required"`
	Duration    int       `json:"duration" validate:"required,gt=0"`
	Language    string    `json:"language" validate:"required,oneof=EN TR"`
	Imdb        float64   `json:"imdb" validate:"gte=0,lte=10"`
	ReleaseDate time.Time `json:"releaseDate" validate:"required"`
}

// movieUpdateRequest uses pointers as the present/absent marker: a nil field
// was not in the request body and leaves the stored value untouched. Fields
// can therefore never be cleared through a partial update.
type movieUpdateRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,min=1"`
	Duration    *int       `json:"duration" validate:"omitempty,gt=0"`
	Language    *string    `json:"language" validate:"omitempty,oneof=EN TR"`
	Imdb        *float64   `json:"imdb" validate:"omitempty,gte=0,lte=10"`
	ReleaseDate *time.Time `json:"releaseDate"`
}

func (h *MovieHandler) Create(c echo.Context) error {
	var req movieCreateRequest
	if done, err := bindAndValidate(c, &req); !done {
		return err
	}
	m, err := h.movies.Create(c.Request().Context(), &model.Movie{
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		Language:    req.Language,
		Imdb:        req.Imdb,
		ReleaseDate: req.ReleaseDate,
	})
	if err != nil {
		return respondError(c, err)
	}
	h.events.MovieCreated(m)
	return ok(c, http.StatusCreated, "movie created", toMovieResponse(m))
}

func (h *MovieHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid movie id")
	}
	m, err := h.movies.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, "movie found", toMovieResponse(m))
}

func (h *MovieHandler) List(c echo.Context) error {
	page, size := parsePagination(c)
	ms, total, err := h.movies.List(c.Request().Context(), page, size)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, "movies listed",
		NewPagedResponse(toMovieResponses(ms), page, size, total))
}

// Update applies a partial update: each present field overwrites the stored
// value, each absent field is left as is.
func (h *MovieHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid movie id")
	}
	var req movieUpdateRequest
	if done, err := bindAndValidate(c, &req); !done {
		return err
	}

	ctx := c.Request().Context()
	m, err := h.movies.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.Duration != nil {
		m.Duration = *req.Duration
	}
	if req.Language != nil {
		m.Language = *req.Language
	}
	if req.Imdb != nil {
		m.Imdb = *req.Imdb
	}
	if req.ReleaseDate != nil {
		m.ReleaseDate = *req.ReleaseDate
	}
	if err := h.movies.Update(ctx, m); err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, "movie updated", toMovieResponse(m))
}

func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid movie id")
	}
	ctx := c.Request().Context()
	m, err := h.movies.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.movies.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	h.events.MovieDeleted(m.ID, m.Title)
	return ok(c, http.StatusOK, "movie deleted", nil)
}
