// app/echoServer/jwtx/user.go
package jwtx

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/usrinivasan240-cpu/e-libaray.cto/model"
)

// UserIDFromContext reads the user id set by the auth middleware.
func UserIDFromContext(c echo.Context) (int64, error) {
	if id, ok := c.Get("user_id").(int64); ok && id > 0 {
		return id, nil
	}
	return 0, errors.New("no user id in context")
}

// RoleFromContext reads the role set by the auth middleware.
func RoleFromContext(c echo.Context) (model.Role, error) {
	if r, ok := c.Get("role").(model.Role); ok && model.ValidRole(r) {
		return r, nil
	}
	return "", errors.New("no role in context")
}
