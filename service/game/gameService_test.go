// service/game/game_service_test.go
package gamesvc_test

import (
	"context"
	"database/sql"
	"testing"

	"gamerental/model"
	gamesvc "gamerental/service/game"
)

type repoMock struct {
	createFn        func(ctx context.Context, g *model.Game) error
	updateFn        func(ctx context.Context, g *model.Game) error
	deleteFn        func(ctx context.Context, id int64) error
	byIDFn          func(ctx context.Context, id int64) (*model.Game, error)
	listFn          func(ctx context.Context) ([]model.Game, error)
	listByTitleFn   func(ctx context.Context, title string) ([]model.Game, error)
	listByGenreFn   func(ctx context.Context, genre model.Genre) ([]model.Game, error)
	listAvailableFn func(ctx context.Context) ([]model.Game, error)
	adjustFn        func(ctx context.Context, tx *sql.Tx, id int64, delta int) error
}

func (m *repoMock) Create(ctx context.Context, g *model.Game) error { return m.createFn(ctx, g) }
func (m *repoMock) Update(ctx context.Context, g *model.Game) error { return m.updateFn(ctx, g) }
func (m *repoMock) Delete(ctx context.Context, id int64) error      { return m.deleteFn(ctx, id) }
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.Game, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) List(ctx context.Context) ([]model.Game, error) { return m.listFn(ctx) }
func (m *repoMock) ListByTitle(ctx context.Context, title string) ([]model.Game, error) {
	return m.listByTitleFn(ctx, title)
}
func (m *repoMock) ListByGenre(ctx context.Context, genre model.Genre) ([]model.Game, error) {
	return m.listByGenreFn(ctx, genre)
}
func (m *repoMock) ListAvailable(ctx context.Context) ([]model.Game, error) {
	return m.listAvailableFn(ctx)
}
func (m *repoMock) ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Game, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) AdjustQuantity(ctx context.Context, tx *sql.Tx, id int64, delta int) error {
	return m.adjustFn(ctx, tx, id, delta)
}

func TestCreate_Validation(t *testing.T) {
	s := gamesvc.New(&repoMock{})
	ctx := context.Background()

	cases := []gamesvc.CreateGame{
		{Title: "", Genre: model.GenreRPG, Platforms: []model.Platform{model.PlatformPC}, Quantity: 1},
		{Title: "Elden Ring", Genre: "", Platforms: []model.Platform{model.PlatformPC}, Quantity: 1},
		{Title: "Elden Ring", Genre: model.GenreSoulslike, Platforms: nil, Quantity: 1},
		{Title: "Elden Ring", Genre: model.GenreSoulslike, Platforms: []model.Platform{model.PlatformPC}, Quantity: 0},
	}
	for i, in := range cases {
		if _, err := s.Create(ctx, in); gamesvc.Code(err) != gamesvc.ErrBadInput {
			t.Fatalf("case %d: got %v; want BAD_INPUT", i, err)
		}
	}
}

func TestCreate_Success(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, g *model.Game) error {
			g.ID = 42
			return nil
		},
	}
	s := gamesvc.New(m)

	g, err := s.Create(context.Background(), gamesvc.CreateGame{
		Title:     "Hades",
		Genre:     model.GenreRoguelike,
		Platforms: []model.Platform{model.PlatformPC, model.PlatformNintendo},
		Quantity:  3,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if g.ID != 42 || !g.Available || g.Quantity != 3 {
		t.Fatalf("got %+v; want id=42 available=true quantity=3", g)
	}
}

func TestUpdate_MergesAndRecomputesAvailability(t *testing.T) {
	stored := &model.Game{
		ID: 7, Title: "Hades", Genre: model.GenreRoguelike,
		Platforms: []model.Platform{model.PlatformPC}, Quantity: 3, Available: true,
	}
	m := &repoMock{
		byIDFn:   func(ctx context.Context, id int64) (*model.Game, error) { return stored, nil },
		updateFn: func(ctx context.Context, g *model.Game) error { return nil },
	}
	s := gamesvc.New(m)

	title := "Hades II"
	qty := 0
	g, err := s.Update(context.Background(), 7, gamesvc.UpdateGame{Title: &title, Quantity: &qty})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if g.Title != "Hades II" || g.Quantity != 0 || g.Available {
		t.Fatalf("got %+v; want title merged, quantity=0, available=false", g)
	}
	if g.Genre != model.GenreRoguelike {
		t.Fatalf("untouched field changed: %v", g.Genre)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Game, error) { return nil, sql.ErrNoRows },
	}
	s := gamesvc.New(m)
	if _, err := s.Update(context.Background(), 99, gamesvc.UpdateGame{}); gamesvc.Code(err) != gamesvc.ErrNotFound {
		t.Fatalf("got %v; want GAME_NOT_FOUND", err)
	}
}

func TestValidateAvailability(t *testing.T) {
	s := gamesvc.New(&repoMock{})

	if err := s.ValidateAvailability(&model.Game{Quantity: 1}); err != nil {
		t.Fatalf("available game rejected: %v", err)
	}
	err := s.ValidateAvailability(&model.Game{Quantity: 0})
	if gamesvc.Code(err) != gamesvc.ErrNotAvailable {
		t.Fatalf("got %v; want GAME_NOT_AVAILABLE", err)
	}
}

func TestList_EmptyIsNotFound(t *testing.T) {
	m := &repoMock{
		listFn: func(ctx context.Context) ([]model.Game, error) { return nil, nil },
	}
	s := gamesvc.New(m)
	if _, err := s.List(context.Background()); gamesvc.Code(err) != gamesvc.ErrNotFound {
		t.Fatalf("got %v; want GAME_NOT_FOUND", err)
	}
}
