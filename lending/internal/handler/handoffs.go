package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/book-circle/lending/internal/errs"
	"github.com/Astemirdum/book-circle/lending/internal/model"
)

// HandoffStatus is polled by both parties while they wait for each other.
// @Summary Handoff status for one of its parties
// @Tags handoffs
// @Produce json
// @Param X-Member-Id header string true "acting member"
// @Param handoffId path string true "handoff id"
// @Success 200 {object} model.HandoffStatus
// @Failure 403 {object} errs.ErrorResponse
// @Router /handoffs/{handoffId} [get]
func (h *Handler) HandoffStatus(c echo.Context) error {
	viewer, err := memberID(c)
	if err != nil {
		return err
	}
	st, err := h.lendingSvc.HandoffStatus(c.Request().Context(), c.Param("handoffId"), viewer)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, st)
}

// ConfirmHandoff godoc
// @Summary Confirm the physical exchange as giver or receiver
// @Tags handoffs
// @Accept json
// @Produce json
// @Param X-Member-Id header string true "acting member"
// @Param handoffId path string true "handoff id"
// @Param input body model.ConfirmHandoffRequest true "role"
// @Success 200 {object} model.Handoff
// @Failure 409 {object} errs.ErrorResponse
// @Router /handoffs/{handoffId}/confirm [post]
func (h *Handler) ConfirmHandoff(c echo.Context) error {
	member, err := memberID(c)
	if err != nil {
		return err
	}
	var req model.ConfirmHandoffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ho, err := h.lendingSvc.ConfirmHandoff(c.Request().Context(), c.Param("handoffId"), member, req.Role)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, ho)
}

// CancelHandoff godoc
// @Summary Cancel a handoff that has not completed
// @Tags handoffs
// @Produce json
// @Param X-Member-Id header string true "acting member"
// @Param handoffId path string true "handoff id"
// @Success 200 {object} model.Handoff
// @Failure 422 {object} errs.ErrorResponse
// @Router /handoffs/{handoffId}/cancel [post]
func (h *Handler) CancelHandoff(c echo.Context) error {
	member, err := memberID(c)
	if err != nil {
		return err
	}
	ho, err := h.lendingSvc.CancelHandoff(c.Request().Context(), c.Param("handoffId"), member)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, ho)
}

func (h *Handler) FinalizeHandoff(c echo.Context) error {
	ho, err := h.lendingSvc.FinalizeHandoff(c.Request().Context(), c.Param("handoffId"))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, ho)
}

func (h *Handler) MemberHandoffs(c echo.Context) error {
	member, err := memberID(c)
	if err != nil {
		return err
	}
	if member != c.Param("memberId") {
		return h.httpError(errs.ErrForbidden)
	}
	items, err := h.lendingSvc.ActiveHandoffs(c.Request().Context(), member)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}
