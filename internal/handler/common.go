package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cinecore/catalog/internal/middleware"
)

// Paging defaults. Size is capped so a single request cannot drag an
// arbitrarily large result set through the wire.
const (
	defaultPage = 0
	defaultSize = 5
	maxSize     = 100
)

// currentUserID returns the authenticated user's id stored by the JWT
// middleware. ok is false on routes that skipped authentication.
func currentUserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(middleware.CtxUserID).(uint64)
	return id, ok
}

// parseID reads a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(400)
	}
	return id, nil
}

// parsePagination reads ?page= and ?size=, falling back to defaults for
// missing or malformed values and clamping size to the cap.
func parsePagination(c echo.Context) (page, size int) {
	page, size = defaultPage, defaultSize
	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			page = n
		}
	}
	if v := c.QueryParam("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			size = n
		}
	}
	if size > maxSize {
		size = maxSize
	}
	return page, size
}
