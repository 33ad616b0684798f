package handler

import (
	"errors"
	"mongoplay/internal/playground/model"
	"mongoplay/internal/playground/repository"
	"mongoplay/internal/playground/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

var ErrDestructiveDisabled = errors.New("destructive operations are disabled; set ALLOW_DESTRUCTIVE=true")

// Helper to map errors to HTTP status and body
func httpError(err error) (int, model.ErrorResponse) {
	var code string
	var msg string
	var status int

	var detail *model.ErrorDetail
	switch {
	case errors.As(err, &detail):
		status = http.StatusBadRequest
		code = detail.Code
		msg = detail.Message
	case errors.Is(err, ErrDestructiveDisabled):
		status = http.StatusForbidden
		code = "forbidden"
		msg = err.Error()
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
		code = "not_found"
		msg = "Record not found"
	case errors.Is(err, repository.ErrDuplicate):
		status = http.StatusConflict
		code = "conflict"
		msg = "Record already exists"
	case errors.Is(err, service.ErrUnknownSection):
		status = http.StatusBadRequest
		code = "bad_request"
		msg = err.Error()
	default:
		status = http.StatusInternalServerError
		code = "internal_error"
		msg = err.Error()
	}

	return status, model.ErrorResponse{
		Error: model.ErrorDetail{Code: code, Message: msg},
	}
}

func respondError(c echo.Context, err error) error {
	status, body := httpError(err)
	body.Error.RequestID = requestID(c)
	return c.JSON(status, body)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, model.ErrorResponse{
		Error: model.ErrorDetail{Code: "bad_request", Message: msg, RequestID: requestID(c)},
	})
}
