package handler

import (
	"net/http"
	"strconv"
	"strings"

	"mongoplay/internal/playground/model"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
)

func (h *PlaygroundHandler) GetIndexes(c echo.Context) error {
	indexes, err := h.Indexes.ListIndexes(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, indexes)
}

// PostEnsureIndexes handles POST /indexes and creates every playground index.
func (h *PlaygroundHandler) PostEnsureIndexes(c echo.Context) error {
	names, err := h.Indexes.EnsureIndexes(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string][]string{"indexes": names})
}

func (h *PlaygroundHandler) GetIndexStats(c echo.Context) error {
	stats, err := h.Indexes.IndexStats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// GetExplain handles GET /indexes/explain?email=
func (h *PlaygroundHandler) GetExplain(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.QueryParam("email")))
	if email == "" {
		return badRequest(c, "email is required")
	}
	plan, err := h.Indexes.Explain(c.Request().Context(), bson.D{{Key: model.FieldEmail, Value: email}})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, plan)
}

func (h *PlaygroundHandler) DeleteIndex(c echo.Context) error {
	if err := h.Indexes.DropIndex(c.Request().Context(), c.Param("name")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

func (h *PlaygroundHandler) GetDatabaseStats(c echo.Context) error {
	stats, err := h.Admin.DatabaseStats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// GetCollectionStats handles GET /admin/collections/:name/stats?index_details=
func (h *PlaygroundHandler) GetCollectionStats(c echo.Context) error {
	details, _ := strconv.ParseBool(c.QueryParam("index_details"))
	stats, err := h.Admin.CollectionStats(c.Request().Context(), c.Param("name"), details)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// GetValidateCollection handles GET /admin/collections/:name/validate?full=
func (h *PlaygroundHandler) GetValidateCollection(c echo.Context) error {
	full, _ := strconv.ParseBool(c.QueryParam("full"))
	res, err := h.Admin.ValidateCollection(c.Request().Context(), c.Param("name"), full)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *PlaygroundHandler) GetCollections(c echo.Context) error {
	names, err := h.Admin.CollectionNames(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, names)
}

func (h *PlaygroundHandler) GetDBUsers(c echo.Context) error {
	users, err := h.Admin.ListUsers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// PostDBUser handles POST /admin/users
func (h *PlaygroundHandler) PostDBUser(c echo.Context) error {
	var req model.CreateDBUserReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid body")
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	if err := h.Admin.CreateUser(c.Request().Context(), req.User, req.Password, req.Roles); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"user": req.User})
}

func (h *PlaygroundHandler) DeleteDBUser(c echo.Context) error {
	if err := h.Admin.DropUser(c.Request().Context(), c.Param("user")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

func (h *PlaygroundHandler) GetProfiling(c echo.Context) error {
	status, err := h.Admin.ProfilingLevel(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, status)
}

// PutProfiling handles PUT /admin/profiling
func (h *PlaygroundHandler) PutProfiling(c echo.Context) error {
	var req model.SetProfilingReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid body")
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	status, err := h.Admin.SetProfilingLevel(c.Request().Context(), req.Level, req.SlowMS)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, status)
}

// GetProfileEntries handles GET /admin/profiling/entries?min_ms=
func (h *PlaygroundHandler) GetProfileEntries(c echo.Context) error {
	minMS := 50
	if raw := c.QueryParam("min_ms"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return badRequest(c, "min_ms must be a non-negative integer")
		}
		minMS = n
	}
	entries, err := h.Admin.ProfileEntries(c.Request().Context(), minMS)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

// GetCurrentOp handles GET /admin/current-op?slow_ms=
func (h *PlaygroundHandler) GetCurrentOp(c echo.Context) error {
	var filter bson.D
	if raw := c.QueryParam("slow_ms"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return badRequest(c, "slow_ms must be a non-negative integer")
		}
		filter = bson.D{{Key: "millis", Value: bson.D{{Key: "$gt", Value: n}}}}
	}
	ops, err := h.Admin.CurrentOp(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ops)
}

func (h *PlaygroundHandler) GetServerStatus(c echo.Context) error {
	ctx := c.Request().Context()
	status, err := h.Admin.ServerStatus(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, status)
}

func (h *PlaygroundHandler) GetServerVersion(c echo.Context) error {
	version, err := h.Admin.ServerVersion(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"database": h.Admin.DatabaseName(), "version": version})
}
