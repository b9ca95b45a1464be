package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinecore/catalog/internal/model"
	"github.com/cinecore/catalog/internal/repository"
)

// StatusStore manages per-user movie flags.
type StatusStore interface {
	Get(ctx context.Context, userID, movieID uint64) (*model.MovieUserStatus, error)
	Upsert(ctx context.Context, s *model.MovieUserStatus) error
	ListByUser(ctx context.Context, userID uint64, filter string) ([]*model.MovieStatusEntry, error)
}

// MovieGetter is the slice of movie persistence the status endpoints need.
type MovieGetter interface {
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
}

// MovieStatusHandler serves the authenticated user's favorite/watched flags.
type MovieStatusHandler struct {
	statuses StatusStore
	movies   MovieGetter
}

func NewMovieStatusHandler(statuses StatusStore, movies MovieGetter) *MovieStatusHandler {
	return &MovieStatusHandler{statuses: statuses, movies: movies}
}

// statusUpdateRequest carries the flags to set. Absent fields keep their
// stored value, so favorite and watched can be toggled independently.
type statusUpdateRequest struct {
	IsFavorite *bool `json:"isFavorite"`
	IsWatched  *bool `json:"isWatched"`
}

// Update merges the request flags into the user's status row for a movie,
// creating the row on first write.
func (h *MovieStatusHandler) Update(c echo.Context) error {
	userID, ok2 := currentUserID(c)
	if !ok2 {
		return fail(c, http.StatusUnauthorized, "missing identity")
	}
	movieID, err := parseID(c, "movieId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid movie id")
	}
	var req statusUpdateRequest
	if done, err := bindAndValidate(c, &req); !done {
		return err
	}

	ctx := c.Request().Context()
	m, err := h.movies.GetByID(ctx, movieID)
	if err != nil {
		return respondError(c, err)
	}

	cur, err := h.statuses.Get(ctx, userID, movieID)
	if err != nil {
		if !errors.Is(err, repository.ErrStatusNotFound) {
			return respondError(c, err)
		}
		cur = &model.MovieUserStatus{UserID: userID, MovieID: movieID}
	}
	if req.IsFavorite != nil {
		cur.IsFavorite = *req.IsFavorite
	}
	if req.IsWatched != nil {
		cur.IsWatched = *req.IsWatched
	}
	if err := h.statuses.Upsert(ctx, cur); err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, "movie status updated", statusResponse{
		MovieID:    movieID,
		MovieTitle: m.Title,
		IsFavorite: cur.IsFavorite,
		IsWatched:  cur.IsWatched,
	})
}

// Get returns the user's status for a movie. A user who never touched the
// movie reads both flags as false; no row is written for such a read.
func (h *MovieStatusHandler) Get(c echo.Context) error {
	userID, ok2 := currentUserID(c)
	if !ok2 {
		return fail(c, http.StatusUnauthorized, "missing identity")
	}
	movieID, err := parseID(c, "movieId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid movie id")
	}

	ctx := c.Request().Context()
	m, err := h.movies.GetByID(ctx, movieID)
	if err != nil {
		return respondError(c, err)
	}

	out := statusResponse{MovieID: movieID, MovieTitle: m.Title}
	cur, err := h.statuses.Get(ctx, userID, movieID)
	switch {
	case err == nil:
		out.IsFavorite = cur.IsFavorite
		out.IsWatched = cur.IsWatched
	case errors.Is(err, repository.ErrStatusNotFound):
		// default synthesis: both flags false
	default:
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, "movie status", out)
}

func (h *MovieStatusHandler) listBy(c echo.Context, filter, message string) error {
	userID, ok2 := currentUserID(c)
	if !ok2 {
		return fail(c, http.StatusUnauthorized, "missing identity")
	}
	entries, err := h.statuses.ListByUser(c.Request().Context(), userID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, message, toStatusResponses(entries))
}

// MyMovies lists every movie the user has a status row for.
func (h *MovieStatusHandler) MyMovies(c echo.Context) error {
	return h.listBy(c, repository.FilterAll, "my movies")
}

// MyFavorites lists the user's favorite movies.
func (h *MovieStatusHandler) MyFavorites(c echo.Context) error {
	return h.listBy(c, repository.FilterFavorites, "my favorite movies")
}

// MyWatched lists the user's watched movies.
func (h *MovieStatusHandler) MyWatched(c echo.Context) error {
	return h.listBy(c, repository.FilterWatched, "my watched movies")
}
