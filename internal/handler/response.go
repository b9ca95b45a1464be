// Package handler contains the HTTP boundary: request DTOs, response shaping
// and the translation of storage errors into statuses. Handlers depend on
// small store interfaces so tests can swap in in-memory implementations.
package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinecore/catalog/internal/repository"
)

// Response is the envelope every endpoint returns, success or failure.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Payload any    `json:"payload"`
}

// PagedResponse wraps a page of results with its paging metadata.
type PagedResponse struct {
	Content       any   `json:"content"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Last          bool  `json:"last"`
}

// NewPagedResponse computes the derived page fields from the total row count.
func NewPagedResponse(content any, page, size int, total int64) PagedResponse {
	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	return PagedResponse{
		Content:       content,
		PageNumber:    page,
		PageSize:      size,
		TotalElements: total,
		TotalPages:    pages,
		Last:          page >= pages-1,
	}
}

func ok(c echo.Context, code int, message string, payload any) error {
	return c.JSON(code, Response{Status: true, Message: message, Payload: payload})
}

func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, Response{Status: false, Message: message, Payload: nil})
}

// respondError maps repository sentinel errors onto HTTP statuses. Anything
// unrecognized is a 500; its detail goes to the server log, not the client.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrMovieNotFound),
		errors.Is(err, repository.ErrCategoryNotFound),
		errors.Is(err, repository.ErrLinkNotFound),
		errors.Is(err, repository.ErrStatusNotFound):
		return fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrEmailExists),
		errors.Is(err, repository.ErrDuplicateName),
		errors.Is(err, repository.ErrAlreadyLinked):
		return fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrTokenInvalid):
		return fail(c, http.StatusUnauthorized, err.Error())
	default:
		log.Printf("handler: %s %s: %v", c.Request().Method, c.Path(), err)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
}
