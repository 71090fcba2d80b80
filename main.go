// Package main game rental API.
//
// @title           Game Rental API
// @version         1.0
// @description     rental-management service (catalog, subscribers, rentals).
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

	"gamerental/app/echoServer"
	authctrl "gamerental/app/echoServer/controller/auth"
	gamectrl "gamerental/app/echoServer/controller/game"
	rentalctrl "gamerental/app/echoServer/controller/rental"
	userctrl "gamerental/app/echoServer/controller/user"
	"gamerental/app/echoServer/httperr"
	"gamerental/app/echoServer/validation"
	"gamerental/config"
	gamerepo "gamerental/repository/game"
	rentalrepo "gamerental/repository/rental"
	userrepo "gamerental/repository/user"
	authsvc "gamerental/service/auth"
	gamesvc "gamerental/service/game"
	rentalsvc "gamerental/service/rental"
	usersvc "gamerental/service/user"
	"gamerental/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	gr := gamerepo.New(db.DB)
	ur := userrepo.New(db.DB)
	rr := rentalrepo.New(db.DB)

	// services
	gs := gamesvc.New(gr)
	us := usersvc.New(ur)
	as := authsvc.New(us, cfg.JWTSecret, cfg.JWTTTLHours)
	rs := rentalsvc.New(db, gs, us, rr)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	gameC := &gamectrl.Controller{Svc: gs, V: v, Log: log}
	userC := &userctrl.Controller{Svc: us, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log}

	// echo
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httperr.Handler(log)
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{"status": "ok"})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:      authC,
		Game:      gameC,
		User:      userC,
		Rental:    rentalC,
		JWTSecret: cfg.JWTSecret,
	})

	// daily late-rental sweep at midnight
	rentalsvc.NewSweeper(rs, log).Start(ctx)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)
	e.Logger.Fatal(e.Start(":" + port))
}
