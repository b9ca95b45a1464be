package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports liveness.
func Health(c echo.Context) error {
	return ok(c, http.StatusOK, "ok", echo.Map{"alive": true})
}
