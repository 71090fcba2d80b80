package game

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"gamerental/app/echoServer/httperr"
	"gamerental/model"
	gamesvc "gamerental/service/game"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc gamesvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /games
func (h *Controller) Create(c echo.Context) error {
	var req CreateGameReq
	if err := c.Bind(&req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "invalid JSON")
	}
	if err := h.V.Struct(req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "validation error: "+err.Error())
	}

	genre, ok := model.ParseGenre(req.Genre)
	if !ok {
		return httperr.JSON(c, http.StatusBadRequest, badGenre(req.Genre))
	}
	platforms, err := parsePlatforms(req.Platforms)
	if err != nil {
		return httperr.JSON(c, http.StatusBadRequest, err.Error())
	}

	g, err := h.Svc.Create(c.Request().Context(), gamesvc.CreateGame{
		Title:     req.Title,
		Genre:     genre,
		Platforms: platforms,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return h.fail(c, err, "game create")
	}
	return c.JSON(http.StatusCreated, g)
}

// PATCH /games/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "invalid id")
	}

	var req UpdateGameReq
	if err := c.Bind(&req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "invalid JSON")
	}
	if err := h.V.Struct(req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "validation error: "+err.Error())
	}

	in := gamesvc.UpdateGame{Title: req.Title, Quantity: req.Quantity}
	if req.Genre != nil {
		genre, ok := model.ParseGenre(*req.Genre)
		if !ok {
			return httperr.JSON(c, http.StatusBadRequest, badGenre(*req.Genre))
		}
		in.Genre = &genre
	}
	if req.Platforms != nil {
		platforms, err := parsePlatforms(req.Platforms)
		if err != nil {
			return httperr.JSON(c, http.StatusBadRequest, err.Error())
		}
		in.Platforms = platforms
	}

	g, err := h.Svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return h.fail(c, err, "game update")
	}
	return c.JSON(http.StatusOK, g)
}

// DELETE /games/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, err, "game delete")
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /games/:id
func (h *Controller) ByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "invalid id")
	}
	g, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "game by id")
	}
	return c.JSON(http.StatusOK, g)
}

// GET /games
// Filters: ?title= (substring), ?genre=, ?available=true
func (h *Controller) List(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		games []model.Game
		err   error
	)
	switch {
	case c.QueryParam("title") != "":
		games, err = h.Svc.ListByTitle(ctx, c.QueryParam("title"))
	case c.QueryParam("genre") != "":
		genre, ok := model.ParseGenre(c.QueryParam("genre"))
		if !ok {
			return httperr.JSON(c, http.StatusBadRequest, badGenre(c.QueryParam("genre")))
		}
		games, err = h.Svc.ListByGenre(ctx, genre)
	case c.QueryParam("available") != "":
		if c.QueryParam("available") != "true" {
			return httperr.JSON(c, http.StatusBadRequest,
				fmt.Sprintf("invalid available: '%s'. accepted: true", c.QueryParam("available")))
		}
		games, err = h.Svc.ListAvailable(ctx)
	default:
		games, err = h.Svc.List(ctx)
	}
	if err != nil {
		return h.fail(c, err, "game list")
	}
	return c.JSON(http.StatusOK, games)
}

func (h *Controller) fail(c echo.Context, err error, op string) error {
	switch gamesvc.Code(err) {
	case gamesvc.ErrNotFound:
		return httperr.JSON(c, http.StatusNotFound, "game not found")
	case gamesvc.ErrNotAvailable:
		return httperr.JSON(c, http.StatusConflict, "game not available")
	case gamesvc.ErrBadInput:
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

func badGenre(v string) string {
	accepted := make([]string, 0, len(model.Genres()))
	for _, g := range model.Genres() {
		accepted = append(accepted, string(g))
	}
	return fmt.Sprintf("invalid genre: '%s'. accepted: %s", v, strings.Join(accepted, ", "))
}

func parsePlatforms(in []string) ([]model.Platform, error) {
	out := make([]model.Platform, 0, len(in))
	for _, s := range in {
		p, ok := model.ParsePlatform(s)
		if !ok {
			accepted := make([]string, 0, len(model.Platforms()))
			for _, ap := range model.Platforms() {
				accepted = append(accepted, string(ap))
			}
			return nil, fmt.Errorf("invalid platform: '%s'. accepted: %s", s, strings.Join(accepted, ", "))
		}
		out = append(out, p)
	}
	return out, nil
}
