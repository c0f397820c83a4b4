// Package main e-library API.
//
// @title           e-library API
// @version         1.0
// @description     Library circulation and print-shop payment service (books, issues, print jobs, UPI payments).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/usrinivasan240-cpu/e-libaray.cto/app/echoServer"
	authctrl "github.com/usrinivasan240-cpu/e-libaray.cto/app/echoServer/controller/auth"
	bookctrl "github.com/usrinivasan240-cpu/e-libaray.cto/app/echoServer/controller/book"
	circctrl "github.com/usrinivasan240-cpu/e-libaray.cto/app/echoServer/controller/circulation"
	paymentctrl "github.com/usrinivasan240-cpu/e-libaray.cto/app/echoServer/controller/payment"
	printctrl "github.com/usrinivasan240-cpu/e-libaray.cto/app/echoServer/controller/printjob"
	userctrl "github.com/usrinivasan240-cpu/e-libaray.cto/app/echoServer/controller/user"
	"github.com/usrinivasan240-cpu/e-libaray.cto/app/echoServer/validation"
	"github.com/usrinivasan240-cpu/e-libaray.cto/config"
	bookrepo "github.com/usrinivasan240-cpu/e-libaray.cto/repository/book"
	circulationrepo "github.com/usrinivasan240-cpu/e-libaray.cto/repository/circulation"
	paymentrepo "github.com/usrinivasan240-cpu/e-libaray.cto/repository/payment"
	printjobrepo "github.com/usrinivasan240-cpu/e-libaray.cto/repository/printjob"
	userrepo "github.com/usrinivasan240-cpu/e-libaray.cto/repository/user"
	authsvc "github.com/usrinivasan240-cpu/e-libaray.cto/service/auth"
	booksvc "github.com/usrinivasan240-cpu/e-libaray.cto/service/book"
	circulationsvc "github.com/usrinivasan240-cpu/e-libaray.cto/service/circulation"
	paymentsvc "github.com/usrinivasan240-cpu/e-libaray.cto/service/payment"
	printjobsvc "github.com/usrinivasan240-cpu/e-libaray.cto/service/printjob"
	"github.com/usrinivasan240-cpu/e-libaray.cto/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	br := bookrepo.New(db)
	cr := circulationrepo.New(db)
	jr := printjobrepo.New(db)
	pr := paymentrepo.New(db)

	// services
	as := authsvc.New(ur, cfg.JWTSecret, cfg.JWTTTLHours)
	bs := booksvc.New(br)
	cs := circulationsvc.New(cr)
	js := printjobsvc.New(jr)
	ps := paymentsvc.New(pr, paymentsvc.Config{
		PayeeVPA:  cfg.UPIPayeeVPA,
		PayeeName: cfg.UPIPayeeName,
	})

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	circC := &circctrl.Controller{Svc: cs, V: v, Log: log}
	printC := &printctrl.Controller{Svc: js, V: v, Log: log}
	paymentC := &paymentctrl.Controller{Svc: ps, V: v, Log: log}
	userC := &userctrl.Controller{Repo: ur, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:        authC,
		Book:        bookC,
		Circulation: circC,
		PrintJob:    printC,
		Payment:     paymentC,
		User:        userC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
