package payment

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/usrinivasan240-cpu/e-libaray.cto/app/echoServer/jwtx"
	"github.com/usrinivasan240-cpu/e-libaray.cto/model"
	ps "github.com/usrinivasan240-cpu/e-libaray.cto/service/payment"
)

type Controller struct {
	Svc ps.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Initiate a payment for a print job
// @Summary      Initiate payment
// @Description  Create a PENDING payment attempt for the caller's print job and return the UPI collect URI
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        payload  body  InitiatePaymentReq  true  "Initiate payload"
// @Success      201  {object}  map[string]any
// @Failure      403  {object}  map[string]any "not the job owner"
// @Failure      404  {object}  map[string]any
// @Failure      409  {object}  map[string]any "job already paid"
// @Security     BearerAuth
// @Router       /v1/payments/initiate [post]
func (h *Controller) Initiate(c echo.Context) error {
	var req InitiatePaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	out, err := h.Svc.Initiate(c.Request().Context(), req.PrintID, req.Method, uid)
	if err != nil {
		h.Log.Error("payment initiate", "err", err, "print_id", req.PrintID)
		switch ps.Code(err) {
		case ps.ErrJobNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "print job not found"})
		case ps.ErrNotOwner:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		case ps.ErrAlreadyPaid:
			return c.JSON(http.StatusConflict, echo.Map{"message": "already paid"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, out)
}

// Verify a payment outcome
// @Summary      Verify payment
// @Description  Record the asserted outcome for a payment attempt and propagate it to the print job
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id       path  int               true  "Payment ID"
// @Param        payload  body  VerifyPaymentReq  true  "Verify payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Security     BearerAuth
// @Router       /v1/payments/{id}/verify [post]
func (h *Controller) Verify(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	var req VerifyPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	p, err := h.Svc.Verify(c.Request().Context(), id, req.TransactionID, model.PaymentStatus(req.Status), uid)
	if err != nil {
		h.Log.Error("payment verify", "err", err, "payment_id", id)
		switch ps.Code(err) {
		case ps.ErrPaymentNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "payment not found"})
		case ps.ErrNotOwner:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		case ps.ErrBadOutcome:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "payment_status must be SUCCESS or FAILED"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"payment": p})
}

// Payment status
// @Summary      Payment status
// @Description  Payment plus a minimal print-job summary; owner or admins only
// @Tags         payments
// @Produce      json
// @Param        id  path  int  true  "Payment ID"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Security     BearerAuth
// @Router       /v1/payments/{id} [get]
func (h *Controller) Status(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	role, err := jwtx.RoleFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	out, err := h.Svc.Status(c.Request().Context(), id, uid, role)
	if err != nil {
		switch ps.Code(err) {
		case ps.ErrPaymentNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "payment not found"})
		case ps.ErrNotOwner:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		default:
			h.Log.Error("payment status", "err", err, "payment_id", id)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusOK, out)
}
