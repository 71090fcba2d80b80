package echoServer

import (
	"gamerental/app/echoServer/controller/auth"
	"gamerental/app/echoServer/controller/game"
	"gamerental/app/echoServer/controller/rental"
	"gamerental/app/echoServer/controller/user"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth      *auth.Controller
	Game      *game.Controller
	User      *user.Controller
	Rental    *rental.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	e.POST("/auth/register", c.Auth.Register)
	e.POST("/auth/login", c.Auth.Login)

	authn := echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	})
	admin := RequireAdmin()

	// Games: reads open to any authenticated user, mutations ADMIN only.
	games := e.Group("/games", authn)
	games.GET("", c.Game.List)
	games.GET("/:id", c.Game.ByID)
	games.POST("", c.Game.Create, admin)
	games.PATCH("/:id", c.Game.Update, admin)
	games.DELETE("/:id", c.Game.Delete, admin)

	// Users: ADMIN only.
	users := e.Group("/users", authn, admin)
	users.POST("", c.User.Create)
	users.PATCH("/:id", c.User.Update)
	users.DELETE("/:id", c.User.Delete)
	users.GET("", c.User.List)
	users.GET("/:id", c.User.ByID)

	// Rentals: ADMIN only.
	rentals := e.Group("/rentals", authn, admin)
	rentals.POST("", c.Rental.Create)
	rentals.PATCH("/:id", c.Rental.Update)
	rentals.DELETE("/:id", c.Rental.Delete)
	rentals.PUT("/return/:id", c.Rental.Return)
	rentals.PUT("/renew/:id", c.Rental.Renew)
	rentals.PUT("/cancel/:id", c.Rental.Cancel)
	rentals.GET("", c.Rental.List)
	rentals.GET("/game-id/:id", c.Rental.ListByGameID)
	rentals.GET("/user-id/:id", c.Rental.ListByUserID)
	rentals.GET("/:id", c.Rental.ByID)
}
