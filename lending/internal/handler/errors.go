package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/book-circle/lending/internal/errs"
)

// httpError maps the lending error taxonomy onto status codes.
func (h *Handler) httpError(err error) *echo.HTTPError {
	resp := errs.ErrorResponse{Message: err.Error()}
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrNotFound):
		code, resp.Code = http.StatusNotFound, "not_found"
	case errors.Is(err, errs.ErrForbidden):
		code, resp.Code = http.StatusForbidden, "forbidden"
	case errors.Is(err, errs.ErrMemberID):
		code, resp.Code = http.StatusUnauthorized, "member_id"
	case errors.Is(err, errs.ErrSameParty):
		code, resp.Code = http.StatusBadRequest, "same_party"
	case errors.Is(err, errs.ErrInvalidState):
		code, resp.Code = http.StatusUnprocessableEntity, "invalid_state"
	case errs.Retryable(err):
		code, resp.Code, resp.Retryable = http.StatusConflict, "conflict", true
	case errs.InProgress(err):
		code, resp.Code = http.StatusConflict, "already_in_progress"
	default:
		resp.Code = "internal"
		h.log.Error("internal", zap.Error(err))
	}
	return echo.NewHTTPError(code, resp)
}
