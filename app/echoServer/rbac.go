// app/echoServer/rbac.go
package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/usrinivasan240-cpu/e-libaray.cto/model"
)

// AuthContext pulls user id and role out of the verified token and puts
// them on the request context. A token with an unknown role is rejected
// outright.
func AuthContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tok, ok := c.Get("user").(*jwt.Token)
			if !ok || tok == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
			}

			sub, ok := claims["sub"].(float64)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
			}
			roleStr, _ := claims["role"].(string)
			role := model.Role(roleStr)
			if !model.ValidRole(role) {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
			}

			c.Set("user_id", int64(sub))
			c.Set("role", role)
			return next(c)
		}
	}
}

// RequireRoles allows the request through only when the caller's role
// is in the given set. Roles are checked as an enumerated set; no role
// implies another.
func RequireRoles(allowed ...model.Role) echo.MiddlewareFunc {
	set := make(map[model.Role]struct{}, len(allowed))
	for _, r := range allowed {
		set[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(model.Role)
			if _, ok := set[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
