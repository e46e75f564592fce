package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/book-circle/lending/internal/errs"
	"github.com/Astemirdum/book-circle/lending/internal/model"
	mw "github.com/Astemirdum/book-circle/pkg/middleware"
)

func memberID(c echo.Context) (string, error) {
	id, err := mw.GetMemberID(c)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	return id, nil
}

// RegisterBook godoc
// @Summary Register a book owned by the caller
// @Tags books
// @Accept json
// @Produce json
// @Param X-Member-Id header string true "acting member"
// @Param input body model.RegisterBookRequest true "book"
// @Success 201 {object} model.Book
// @Failure 400 {object} errs.ErrorResponse
// @Router /books [post]
func (h *Handler) RegisterBook(c echo.Context) error {
	var req model.RegisterBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	owner, err := memberID(c)
	if err != nil {
		return err
	}
	req.OwnerID = owner
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.lendingSvc.RegisterBook(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, book)
}

// GetBook godoc
// @Summary Get a book
// @Tags books
// @Produce json
// @Param X-Member-Id header string true "acting member"
// @Param bookId path string true "book id"
// @Success 200 {object} model.Book
// @Failure 404 {object} errs.ErrorResponse
// @Router /books/{bookId} [get]
func (h *Handler) GetBook(c echo.Context) error {
	book, err := h.lendingSvc.GetBook(c.Request().Context(), c.Param("bookId"))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) RemoveBook(c echo.Context) error {
	owner, err := memberID(c)
	if err != nil {
		return err
	}
	if err := h.lendingSvc.RemoveBook(c.Request().Context(), c.Param("bookId"), owner); err != nil {
		return h.httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RequestBorrow godoc
// @Summary Ask for a book; opens a handoff or joins the queue
// @Tags lending
// @Produce json
// @Param X-Member-Id header string true "acting member"
// @Param bookId path string true "book id"
// @Success 200 {object} model.BorrowResult
// @Failure 409 {object} errs.ErrorResponse
// @Failure 422 {object} errs.ErrorResponse
// @Router /books/{bookId}/borrow [post]
func (h *Handler) RequestBorrow(c echo.Context) error {
	member, err := memberID(c)
	if err != nil {
		return err
	}
	res, err := h.lendingSvc.RequestBorrow(c.Request().Context(), c.Param("bookId"), member)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// MarkDoneReading godoc
// @Summary Holder finished reading; offers the book to the queue head
// @Tags lending
// @Produce json
// @Param X-Member-Id header string true "acting member"
// @Param bookId path string true "book id"
// @Success 200 {object} model.DoneReadingResult
// @Failure 403 {object} errs.ErrorResponse
// @Router /books/{bookId}/done [post]
func (h *Handler) MarkDoneReading(c echo.Context) error {
	holder, err := memberID(c)
	if err != nil {
		return err
	}
	res, err := h.lendingSvc.MarkDoneReading(c.Request().Context(), c.Param("bookId"), holder)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// GetQueue godoc
// @Summary Waiting list in order
// @Tags queue
// @Produce json
// @Param X-Member-Id header string true "acting member"
// @Param bookId path string true "book id"
// @Success 200 {object} model.QueueSnapshot
// @Router /books/{bookId}/queue [get]
func (h *Handler) GetQueue(c echo.Context) error {
	snap, err := h.lendingSvc.Queue(c.Request().Context(), c.Param("bookId"))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, snap)
}

// JoinQueue godoc
// @Summary Join the waiting list
// @Tags queue
// @Produce json
// @Param X-Member-Id header string true "acting member"
// @Param bookId path string true "book id"
// @Success 201 {object} model.QueueEntry
// @Failure 409 {object} errs.ErrorResponse
// @Router /books/{bookId}/queue [post]
func (h *Handler) JoinQueue(c echo.Context) error {
	member, err := memberID(c)
	if err != nil {
		return err
	}
	entry, err := h.lendingSvc.JoinQueue(c.Request().Context(), c.Param("bookId"), member)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *Handler) LeaveQueue(c echo.Context) error {
	member, err := memberID(c)
	if err != nil {
		return err
	}
	if err := h.lendingSvc.LeaveQueue(c.Request().Context(), c.Param("bookId"), member); err != nil {
		return h.httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MemberBooks lists the books a member holds, or owns with ?role=owner.
func (h *Handler) MemberBooks(c echo.Context) error {
	ctx := c.Request().Context()
	var (
		books model.ListBooks
		err   error
	)
	switch c.QueryParam("role") {
	case "", "holder":
		books, err = h.lendingSvc.BooksHeldBy(ctx, c.Param("memberId"))
	case "owner":
		books, err = h.lendingSvc.BooksOwnedBy(ctx, c.Param("memberId"))
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "role must be holder or owner")
	}
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) UpsertMember(c echo.Context) error {
	member, err := memberID(c)
	if err != nil {
		return err
	}
	if member != c.Param("memberId") {
		return h.httpError(errs.ErrForbidden)
	}
	var req model.UpsertMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m := model.Member{ID: member, DisplayName: req.DisplayName}
	if err := h.lendingSvc.UpsertMember(c.Request().Context(), m); err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, m)
}
