package user

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"gamerental/app/echoServer/httperr"
	"gamerental/model"
	usersvc "gamerental/service/user"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc usersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /users
func (h *Controller) Create(c echo.Context) error {
	var req CreateUserReq
	if err := c.Bind(&req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "invalid JSON")
	}
	if err := h.V.Struct(req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "validation error: "+err.Error())
	}

	plan, ok := model.ParsePlan(req.Plan)
	if !ok {
		return httperr.JSON(c, http.StatusBadRequest,
			fmt.Sprintf("invalid plan: '%s'. accepted: NOOB, PRO, LEGEND", req.Plan))
	}

	u, err := h.Svc.Create(c.Request().Context(), usersvc.CreateUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Plan:     plan,
	})
	if err != nil {
		return h.fail(c, err, "user create")
	}
	return c.JSON(http.StatusCreated, u)
}

// PATCH /users/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "invalid id")
	}

	var req UpdateUserReq
	if err := c.Bind(&req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "invalid JSON")
	}
	if err := h.V.Struct(req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "validation error: "+err.Error())
	}

	in := usersvc.UpdateUser{Name: req.Name, Email: req.Email, Password: req.Password}
	if req.Role != nil {
		role, ok := model.ParseRole(*req.Role)
		if !ok {
			return httperr.JSON(c, http.StatusBadRequest,
				fmt.Sprintf("invalid role: '%s'. accepted: ADMIN, USER", *req.Role))
		}
		in.Role = &role
	}
	if req.Plan != nil {
		plan, ok := model.ParsePlan(*req.Plan)
		if !ok {
			return httperr.JSON(c, http.StatusBadRequest,
				fmt.Sprintf("invalid plan: '%s'. accepted: NOOB, PRO, LEGEND", *req.Plan))
		}
		in.Plan = &plan
	}

	u, err := h.Svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return h.fail(c, err, "user update")
	}
	return c.JSON(http.StatusOK, u)
}

// DELETE /users/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, err, "user delete")
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /users/:id
func (h *Controller) ByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "invalid id")
	}
	u, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "user by id")
	}
	return c.JSON(http.StatusOK, u)
}

// GET /users
// Filters: ?name=, ?email= (substrings), ?role=, ?plan=
func (h *Controller) List(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		users []model.User
		err   error
	)
	switch {
	case c.QueryParam("name") != "":
		users, err = h.Svc.ListByName(ctx, c.QueryParam("name"))
	case c.QueryParam("email") != "":
		users, err = h.Svc.ListByEmail(ctx, c.QueryParam("email"))
	case c.QueryParam("role") != "":
		role, ok := model.ParseRole(c.QueryParam("role"))
		if !ok {
			return httperr.JSON(c, http.StatusBadRequest,
				fmt.Sprintf("invalid role: '%s'. accepted: ADMIN, USER", c.QueryParam("role")))
		}
		users, err = h.Svc.ListByRole(ctx, role)
	case c.QueryParam("plan") != "":
		plan, ok := model.ParsePlan(c.QueryParam("plan"))
		if !ok {
			return httperr.JSON(c, http.StatusBadRequest,
				fmt.Sprintf("invalid plan: '%s'. accepted: NOOB, PRO, LEGEND", c.QueryParam("plan")))
		}
		users, err = h.Svc.ListByPlan(ctx, plan)
	default:
		users, err = h.Svc.List(ctx)
	}
	if err != nil {
		return h.fail(c, err, "user list")
	}
	return c.JSON(http.StatusOK, users)
}

func (h *Controller) fail(c echo.Context, err error, op string) error {
	switch usersvc.Code(err) {
	case usersvc.ErrNotFound:
		return httperr.JSON(c, http.StatusNotFound, "user not found")
	case usersvc.ErrEmailTaken:
		return httperr.JSON(c, http.StatusConflict, "email already registered")
	case usersvc.ErrBadInput:
		return httperr.JSON(c, http.StatusBadRequest, "bad input")
	default:
		h.Log.Error(op, "err", err)
		return httperr.JSON(c, http.StatusInternalServerError, "internal error")
	}
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id")
	}
	return id, nil
}
