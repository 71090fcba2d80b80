// app/echoServer/controller/auth/authController.go
package auth

import (
	"log/slog"
	"net/http"

	"gamerental/app/echoServer/httperr"
	"gamerental/model"
	authsvc "gamerental/service/auth"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc authsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Register a new subscriber
// @Summary      Register user
// @Description  Create a subscriber account with a subscription plan
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.RegisterReq  true  "Register payload"
// @Success      201  {object}  model.User
// @Failure      400  {object}  httperr.Response
// @Failure      409  {object}  httperr.Response "email already registered"
// @Router       /auth/register [post]
func (ct *Controller) Register(c echo.Context) error {
	var req model.RegisterReq
	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return httperr.JSON(c, http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		ct.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return httperr.JSON(c, http.StatusBadRequest, "validation error: "+err.Error())
	}

	u, err := ct.Svc.Register(c.Request().Context(), req)
	if err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrEmailTaken:
			return httperr.JSON(c, http.StatusConflict, "email already registered")
		case authsvc.ErrBadInput:
			return httperr.JSON(c, http.StatusBadRequest, "bad input")
		default:
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("register failed", "err", err, "req_id", rid, "path", c.Path())
			return httperr.JSON(c, http.StatusInternalServerError, "register failed")
		}
	}

	return c.JSON(http.StatusCreated, u)
}

// Login
// @Summary      Login
// @Description  Login with email + password, returns JWT
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.LoginReq  true  "Login payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  httperr.Response
// @Failure      401  {object}  httperr.Response
// @Router       /auth/login [post]
func (ct *Controller) Login(c echo.Context) error {
	var req model.LoginReq
	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return httperr.JSON(c, http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		ct.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return httperr.JSON(c, http.StatusBadRequest, "validation error: "+err.Error())
	}

	_, token, err := ct.Svc.Login(c.Request().Context(), req)
	if err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrInvalidCreds:
			return httperr.JSON(c, http.StatusUnauthorized, "invalid email or password")
		default:
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("login failed", "err", err, "req_id", rid, "path", c.Path())
			return httperr.JSON(c, http.StatusInternalServerError, "login failed")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token})
}
