package echoServer

import (
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	authctrl "github.com/usrinivasan240-cpu/e-libaray.cto/app/echoServer/controller/auth"
	bookctrl "github.com/usrinivasan240-cpu/e-libaray.cto/app/echoServer/controller/book"
	circctrl "github.com/usrinivasan240-cpu/e-libaray.cto/app/echoServer/controller/circulation"
	paymentctrl "github.com/usrinivasan240-cpu/e-libaray.cto/app/echoServer/controller/payment"
	printctrl "github.com/usrinivasan240-cpu/e-libaray.cto/app/echoServer/controller/printjob"
	userctrl "github.com/usrinivasan240-cpu/e-libaray.cto/app/echoServer/controller/user"
	"github.com/usrinivasan240-cpu/e-libaray.cto/model"
)

type C struct {
	Auth        *authctrl.Controller
	Book        *bookctrl.Controller
	Circulation *circctrl.Controller
	PrintJob    *printctrl.Controller
	Payment     *paymentctrl.Controller
	User        *userctrl.Controller

	JWTSecret string
}

// Register declares the full route table. Every protected route names
// the exact role set allowed on it; no role inherits another.
func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// Authenticated
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	auth.Use(AuthContext())

	anyRole := RequireRoles(model.RoleUser, model.RoleLibraryAdmin, model.RoleSuperAdmin)
	admins := RequireRoles(model.RoleLibraryAdmin, model.RoleSuperAdmin)
	superOnly := RequireRoles(model.RoleSuperAdmin)

	// Catalog
	auth.GET("/books", c.Book.List, anyRole)
	auth.GET("/books/:id", c.Book.Get, anyRole)
	auth.POST("/books", c.Book.Create, admins)
	auth.PUT("/books/:id", c.Book.Update, admins)
	auth.DELETE("/books/:id", c.Book.Delete, admins)

	// Circulation
	auth.POST("/issues", c.Circulation.Issue, admins)
	auth.POST("/issues/return", c.Circulation.Return, admins)
	auth.GET("/issues", c.Circulation.ListIssued, admins)
	auth.GET("/books/:id/issue", c.Circulation.Detail, admins)

	// Print jobs
	auth.POST("/print-jobs", c.PrintJob.Create, anyRole)
	auth.GET("/print-jobs/my", c.PrintJob.ListMine, anyRole)
	auth.GET("/print-jobs", c.PrintJob.ListAll, admins)

	// Payments: ownership is enforced in the service, so any
	// authenticated role may call these
	auth.POST("/payments/initiate", c.Payment.Initiate, anyRole)
	auth.POST("/payments/:id/verify", c.Payment.Verify, anyRole)
	auth.GET("/payments/:id", c.Payment.Status, anyRole)

	// User administration
	auth.GET("/users", c.User.List, superOnly)
	auth.PUT("/users/:id/role", c.User.SetRole, superOnly)
}
