package game_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	gamectrl "gamerental/app/echoServer/controller/game"
	"gamerental/model"
	gamesvc "gamerental/service/game"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type svcMock struct {
	listFn          func(ctx context.Context) ([]model.Game, error)
	listAvailableFn func(ctx context.Context) ([]model.Game, error)
}

func (m *svcMock) Create(ctx context.Context, in gamesvc.CreateGame) (*model.Game, error) {
	return nil, nil
}
func (m *svcMock) Update(ctx context.Context, id int64, in gamesvc.UpdateGame) (*model.Game, error) {
	return nil, nil
}
func (m *svcMock) Delete(ctx context.Context, id int64) error               { return nil }
func (m *svcMock) ByID(ctx context.Context, id int64) (*model.Game, error)  { return nil, nil }
func (m *svcMock) List(ctx context.Context) ([]model.Game, error)           { return m.listFn(ctx) }
func (m *svcMock) ListByTitle(ctx context.Context, title string) ([]model.Game, error) {
	return nil, nil
}
func (m *svcMock) ListByGenre(ctx context.Context, genre model.Genre) ([]model.Game, error) {
	return nil, nil
}
func (m *svcMock) ListAvailable(ctx context.Context) ([]model.Game, error) {
	return m.listAvailableFn(ctx)
}
func (m *svcMock) ValidateAvailability(g *model.Game) error { return nil }
func (m *svcMock) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Game, error) {
	return nil, nil
}
func (m *svcMock) AdjustQuantity(ctx context.Context, tx *sql.Tx, id int64, delta int) error {
	return nil
}

func newController(m *svcMock) *gamectrl.Controller {
	return &gamectrl.Controller{
		Svc: m,
		V:   validator.New(),
		Log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func listRequest(t *testing.T, h *gamectrl.Controller, query string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/games"+query, nil)
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("list: %v", err)
	}
	return rec
}

func TestList_AvailableTrue(t *testing.T) {
	called := false
	h := newController(&svcMock{
		listAvailableFn: func(ctx context.Context) ([]model.Game, error) {
			called = true
			return []model.Game{{ID: 1, Quantity: 2, Available: true}}, nil
		},
	})

	rec := listRequest(t, h, "?available=true")
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d; want 200", rec.Code)
	}
	if !called {
		t.Fatal("available filter did not reach the service")
	}
}

func TestList_AvailableRejectsOtherValues(t *testing.T) {
	h := newController(&svcMock{
		listFn: func(ctx context.Context) ([]model.Game, error) {
			t.Fatal("bad filter value must not fall through to the unfiltered list")
			return nil, nil
		},
	})

	for _, v := range []string{"false", "1", "yes"} {
		rec := listRequest(t, h, "?available="+v)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("available=%s: got %d; want 400", v, rec.Code)
		}
	}
}
