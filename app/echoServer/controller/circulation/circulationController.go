package circulation

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	cs "github.com/usrinivasan240-cpu/e-libaray.cto/service/circulation"
)

type Controller struct {
	Svc cs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Issue a book to a user
// @Summary      Issue book
// @Description  Lend an available book to a user; records the issue and marks the book ISSUED
// @Tags         circulation
// @Accept       json
// @Produce      json
// @Param        payload  body  IssueBookReq  true  "Issue payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any "book or user not found"
// @Failure      409  {object}  map[string]any "book not available"
// @Security     BearerAuth
// @Router       /v1/issues [post]
func (h *Controller) Issue(c echo.Context) error {
	var req IssueBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	is, err := h.Svc.IssueBook(c.Request().Context(), req.BookID, req.UserID, req.DueDate)
	if err != nil {
		h.Log.Error("issue book", "err", err, "book_id", req.BookID)
		switch cs.Code(err) {
		case cs.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case cs.ErrUserNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		case cs.ErrNotAvailable:
			return c.JSON(http.StatusConflict, echo.Map{"message": "book not available"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"issue": is})
}

// Return a book
// @Summary      Return book
// @Description  Close the most recent open issue matching issue_id and/or book_id and free the book
// @Tags         circulation
// @Accept       json
// @Produce      json
// @Param        payload  body  ReturnBookReq  true  "Return payload (at least one selector)"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any "no selector given"
// @Failure      404  {object}  map[string]any "no open issue matches"
// @Security     BearerAuth
// @Router       /v1/issues/return [post]
func (h *Controller) Return(c echo.Context) error {
	var req ReturnBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}

	is, err := h.Svc.ReturnBook(c.Request().Context(), req.IssueID, req.BookID)
	if err != nil {
		h.Log.Error("return book", "err", err, "issue_id", req.IssueID, "book_id", req.BookID)
		switch cs.Code(err) {
		case cs.ErrNoSelector:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "issue_id or book_id required"})
		case cs.ErrNoOpenIssue:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "no open issue found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "returned", "issue": is})
}

// List open issues
// @Summary      List issued books
// @Description  All open issues with book and borrower summaries, most recent first
// @Tags         circulation
// @Produce      json
// @Success      200  {object}  map[string]any
// @Security     BearerAuth
// @Router       /v1/issues [get]
func (h *Controller) ListIssued(c echo.Context) error {
	rows, err := h.Svc.ListIssued(c.Request().Context())
	if err != nil {
		h.Log.Error("list issued", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// Book with active issue
// @Summary      Book detail with open issue
// @Tags         circulation
// @Produce      json
// @Param        id  path  int  true  "Book ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Security     BearerAuth
// @Router       /v1/books/{id}/issue [get]
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	d, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		if cs.Code(err) == cs.ErrBookNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		}
		h.Log.Error("book detail", "err", err, "book_id", id)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, d)
}
