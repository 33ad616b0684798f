package handler

import (
	"net/http"

	"mongoplay/internal/playground/model"

	"github.com/labstack/echo/v4"
)

func (h *PlaygroundHandler) GetSections(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"sections": h.Runner.Sections()})
}

// PostRun handles POST /playground/run. An empty section list runs everything.
func (h *PlaygroundHandler) PostRun(c echo.Context) error {
	var req model.RunPlaygroundReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid body")
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	report, err := h.Runner.Run(c.Request().Context(), req.Sections...)
	if err != nil {
		return respondError(c, err)
	}
	h.Logger.Info("playground run via api",
		"run_id", report.RunID,
		"request_id", requestID(c),
		"failed", report.Count(model.StepFailed),
	)
	return c.JSON(http.StatusOK, report)
}
