package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func (h *PlaygroundHandler) GetAgeStats(c echo.Context) error {
	stats, err := h.Users.ActiveAgeStats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// GetTopActive handles GET /stats/top?limit=
func (h *PlaygroundHandler) GetTopActive(c echo.Context) error {
	limit := int64(3)
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 || n > 100 {
			return badRequest(c, "limit must be between 1 and 100")
		}
		limit = n
	}

	users, err := h.Users.TopActiveByAge(c.Request().Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *PlaygroundHandler) GetDepartmentStats(c echo.Context) error {
	stats, err := h.Users.DepartmentStats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// PostBulkArchive handles POST /users/bulk/archive
func (h *PlaygroundHandler) PostBulkArchive(c echo.Context) error {
	res, err := h.Users.BulkArchiveAndAge(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
