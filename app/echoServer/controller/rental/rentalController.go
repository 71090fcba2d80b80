package rental

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"gamerental/app/echoServer/httperr"
	"gamerental/model"
	rentalsvc "gamerental/service/rental"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc rentalsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /rentals
func (h *Controller) Create(c echo.Context) error {
	var req CreateRentalReq
	if err := c.Bind(&req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "invalid JSON")
	}
	if err := h.V.Struct(req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "validation error: "+err.Error())
	}

	r, err := h.Svc.Create(c.Request().Context(), req.GameID, req.UserID)
	if err != nil {
		return h.fail(c, err, "rental create")
	}
	return c.JSON(http.StatusCreated, toResp(r))
}

// PATCH /rentals/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "invalid id")
	}

	var req UpdateRentalReq
	if err := c.Bind(&req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "invalid JSON")
	}
	if err := h.V.Struct(req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "validation error: "+err.Error())
	}

	r, err := h.Svc.Update(c.Request().Context(), id, rentalsvc.UpdateRental{
		GameID: req.GameID,
		UserID: req.UserID,
	})
	if err != nil {
		return h.fail(c, err, "rental update")
	}
	return c.JSON(http.StatusOK, toResp(r))
}

// DELETE /rentals/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, err, "rental delete")
	}
	return c.NoContent(http.StatusNoContent)
}

// PUT /rentals/return/:id
func (h *Controller) Return(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "invalid id")
	}
	r, err := h.Svc.Return(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "rental return")
	}
	return c.JSON(http.StatusOK, toResp(r))
}

// PUT /rentals/renew/:id
func (h *Controller) Renew(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "invalid id")
	}
	r, err := h.Svc.Renew(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "rental renew")
	}
	return c.JSON(http.StatusOK, toResp(r))
}

// PUT /rentals/cancel/:id
func (h *Controller) Cancel(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "invalid id")
	}
	r, err := h.Svc.Cancel(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "rental cancel")
	}
	return c.JSON(http.StatusOK, toResp(r))
}

// GET /rentals/:id
func (h *Controller) ByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "invalid id")
	}
	r, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "rental by id")
	}
	return c.JSON(http.StatusOK, toResp(r))
}

// GET /rentals/game-id/:id
func (h *Controller) ListByGameID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "invalid id")
	}
	rs, err := h.Svc.ListByGameID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "rental list by game")
	}
	return c.JSON(http.StatusOK, toRespList(rs))
}

// GET /rentals/user-id/:id
func (h *Controller) ListByUserID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "invalid id")
	}
	rs, err := h.Svc.ListByUserID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "rental list by user")
	}
	return c.JSON(http.StatusOK, toRespList(rs))
}

// GET /rentals
// Filters: ?status=, ?rental-date=, ?end-date= (yyyy-mm-dd),
// ?username= (substring), ?title= (substring)
func (h *Controller) List(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		rs  []model.Rental
		err error
	)
	switch {
	case c.QueryParam("status") != "":
		status, ok := model.ParseRentalStatus(c.QueryParam("status"))
		if !ok {
			return httperr.JSON(c, http.StatusBadRequest,
				fmt.Sprintf("invalid status: '%s'. accepted: ACTIVE, RETURNED, LATE, CANCELLED",
					c.QueryParam("status")))
		}
		rs, err = h.Svc.ListByStatus(ctx, status)
	case c.QueryParam("rental-date") != "":
		date, perr := time.Parse(time.DateOnly, c.QueryParam("rental-date"))
		if perr != nil {
			return httperr.JSON(c, http.StatusBadRequest, "invalid rental-date, expected yyyy-mm-dd")
		}
		rs, err = h.Svc.ListByRentalDate(ctx, date)
	case c.QueryParam("end-date") != "":
		date, perr := time.Parse(time.DateOnly, c.QueryParam("end-date"))
		if perr != nil {
			return httperr.JSON(c, http.StatusBadRequest, "invalid end-date, expected yyyy-mm-dd")
		}
		rs, err = h.Svc.ListByEndDate(ctx, date)
	case c.QueryParam("username") != "":
		rs, err = h.Svc.ListByUserName(ctx, c.QueryParam("username"))
	case c.QueryParam("title") != "":
		rs, err = h.Svc.ListByGameTitle(ctx, c.QueryParam("title"))
	default:
		rs, err = h.Svc.List(ctx)
	}
	if err != nil {
		return h.fail(c, err, "rental list")
	}
	return c.JSON(http.StatusOK, toRespList(rs))
}

func (h *Controller) fail(c echo.Context, err error, op string) error {
	switch rentalsvc.Code(err) {
	case rentalsvc.ErrNotFound:
		return httperr.JSON(c, http.StatusNotFound, "rental not found")
	case rentalsvc.ErrGameNotFound:
		return httperr.JSON(c, http.StatusNotFound, "game not found")
	case rentalsvc.ErrUserNotFound:
		return httperr.JSON(c, http.StatusNotFound, "user not found")
	case rentalsvc.ErrGameNotAvailable:
		return httperr.JSON(c, http.StatusConflict, "game not available")
	case rentalsvc.ErrAlreadyClosed:
		return httperr.JSON(c, http.StatusConflict, "rental already closed")
	case rentalsvc.ErrNotActive:
		return httperr.JSON(c, http.StatusConflict, "rental not active")
	case rentalsvc.ErrPlanLimit:
		return httperr.JSON(c, http.StatusUnprocessableEntity, "plan rental limit exceeded")
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
