package user

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/usrinivasan240-cpu/e-libaray.cto/model"
	userrepo "github.com/usrinivasan240-cpu/e-libaray.cto/repository/user"
)

// Controller covers the SUPER_ADMIN user-management surface. These are
// thin reads and single-row updates, so they talk to the repository
// directly.
type Controller struct {
	Repo userrepo.Repo
	Log  *slog.Logger
}

type setRoleReq struct {
	Role model.Role `json:"role"`
}

// GET /v1/users
func (h *Controller) List(c echo.Context) error {
	users, err := h.Repo.List(c.Request().Context())
	if err != nil {
		h.Log.Error("user list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": users})
}

// PUT /v1/users/:id/role
func (h *Controller) SetRole(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	var req setRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if !model.ValidRole(req.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown role"})
	}

	if err := h.Repo.UpdateRole(c.Request().Context(), id, req.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		h.Log.Error("user set role", "err", err, "user_id", id)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "role updated"})
}
