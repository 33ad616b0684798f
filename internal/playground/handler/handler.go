package handler

import (
	"log/slog"
	"mongoplay/internal/playground/repository"
	"mongoplay/internal/playground/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type PlaygroundHandler struct {
	Users   repository.UserRepository
	Indexes repository.IndexRepository
	Admin   repository.AdminRepository
	Runner  service.PlaygroundService
	// Opts carries the same gates the runner applies to its steps.
	Opts   service.Options
	Logger *slog.Logger
}

func NewPlaygroundHandler(users repository.UserRepository, indexes repository.IndexRepository, admin repository.AdminRepository, runner service.PlaygroundService, opts service.Options, logger *slog.Logger) *PlaygroundHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaygroundHandler{Users: users, Indexes: indexes, Admin: admin, Runner: runner, Opts: opts, Logger: logger}
}

// RequireDestructive rejects routes that drop, overwrite or reconfigure data
// unless ALLOW_DESTRUCTIVE is set.
func (h *PlaygroundHandler) RequireDestructive(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !h.Opts.AllowDestructive {
			return respondError(c, ErrDestructiveDisabled)
		}
		return next(c)
	}
}

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
