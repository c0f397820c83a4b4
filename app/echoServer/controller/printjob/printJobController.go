package printjob

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/usrinivasan240-cpu/e-libaray.cto/app/echoServer/jwtx"
	printjobsvc "github.com/usrinivasan240-cpu/e-libaray.cto/service/printjob"
)

type Controller struct {
	Svc printjobsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/print-jobs
func (h *Controller) Create(c echo.Context) error {
	var req printjobsvc.CreateJobReq
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

	j, err := h.Svc.Create(c.Request().Context(), uid, req)
	if err != nil {
		h.Log.Error("print job create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"print_job": j})
}

// GET /v1/print-jobs/my
func (h *Controller) ListMine(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	jobs, err := h.Svc.ListForUser(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("print job list", "err", err, "user_id", uid)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": jobs})
}

// GET /v1/print-jobs (admin)
func (h *Controller) ListAll(c echo.Context) error {
	jobs, err := h.Svc.ListAll(c.Request().Context())
	if err != nil {
		h.Log.Error("print job list all", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": jobs})
}
