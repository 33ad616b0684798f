package handler

import (
	"net/http"
	"strings"
	"time"

	"mongoplay/internal/playground/model"

	"github.com/labstack/echo/v4"
)

// PostUser handles POST /users
func (h *PlaygroundHandler) PostUser(c echo.Context) error {
	var req model.CreateUserReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid body")
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	user := req.ToUser(time.Now())
	id, err := h.Users.InsertOne(c.Request().Context(), &user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"id": id})
}

// PostSeedUsers handles POST /users/seed and inserts the playground's sample users.
func (h *PlaygroundHandler) PostSeedUsers(c echo.Context) error {
	ctx := c.Request().Context()
	first := model.SeedFirstUser()
	id, err := h.Users.InsertOne(ctx, &first)
	if err != nil {
		return respondError(c, err)
	}
	ids, err := h.Users.InsertMany(ctx, model.SeedBatchUsers())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string][]string{"ids": append([]string{id}, ids...)})
}

// GetUsers handles GET /users
func (h *PlaygroundHandler) GetUsers(c echo.Context) error {
	var req model.QueryUsersReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid parameters")
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	docs, err := h.Users.FindUsers(c.Request().Context(), req.ToQuery())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, docs)
}

// GetUsersSearch handles GET /users/search?q=
func (h *PlaygroundHandler) GetUsersSearch(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return badRequest(c, "q is required")
	}
	users, err := h.Users.TextSearch(c.Request().Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// GetUsersCount handles GET /users/count
func (h *PlaygroundHandler) GetUsersCount(c echo.Context) error {
	ctx := c.Request().Context()
	status := strings.ToLower(strings.TrimSpace(c.QueryParam("status")))

	var (
		n   int64
		err error
	)
	if status == "" {
		n, err = h.Users.Count(ctx)
	} else {
		if !model.IsValidStatus(status) {
			return badRequest(c, "invalid status: "+status)
		}
		n, err = h.Users.CountByStatus(ctx, status)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": n})
}

// GetUser handles GET /users/:name
func (h *PlaygroundHandler) GetUser(c echo.Context) error {
	user, err := h.Users.FindOneByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// PatchUser handles PATCH /users/:name
func (h *PlaygroundHandler) PatchUser(c echo.Context) error {
	var req model.UpdateUserReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid body")
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	res, err := h.Users.UpdateUser(c.Request().Context(), c.Param("name"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// PutUser handles PUT /users/:name and replaces the whole document.
func (h *PlaygroundHandler) PutUser(c echo.Context) error {
	var req model.CreateUserReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid body")
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	user := req.ToUser(time.Now())
	res, err := h.Users.Replace(c.Request().Context(), c.Param("name"), &user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// DeleteUser handles DELETE /users/:name
func (h *PlaygroundHandler) DeleteUser(c echo.Context) error {
	res, err := h.Users.DeleteByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// DeleteUsers handles DELETE /users?status=
func (h *PlaygroundHandler) DeleteUsers(c echo.Context) error {
	var req model.DeleteUsersReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid parameters")
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	res, err := h.Users.DeleteByStatus(c.Request().Context(), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
