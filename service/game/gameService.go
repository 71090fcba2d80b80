package gamesvc

import (
	"context"
	"database/sql"
	"errors"

	"gamerental/model"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound     ErrCode = "GAME_NOT_FOUND"
	ErrNotAvailable ErrCode = "GAME_NOT_AVAILABLE"
	ErrBadInput     ErrCode = "BAD_INPUT"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// dto

type CreateGame struct {
	Title     string
	Genre     model.Genre
	Platforms []model.Platform
	Quantity  int
}

type UpdateGame struct {
	Title     *string
	Genre     *model.Genre
	Platforms []model.Platform
	Quantity  *int
}

type Repo interface {
	Create(ctx context.Context, g *model.Game) error
	Update(ctx context.Context, g *model.Game) error
	Delete(ctx context.Context, id int64) error
	ByID(ctx context.Context, id int64) (*model.Game, error)
	List(ctx context.Context) ([]model.Game, error)
	ListByTitle(ctx context.Context, title string) ([]model.Game, error)
	ListByGenre(ctx context.Context, genre model.Genre) ([]model.Game, error)
	ListAvailable(ctx context.Context) ([]model.Game, error)
	ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Game, error)
	AdjustQuantity(ctx context.Context, tx *sql.Tx, id int64, delta int) error
}

type Service interface {
	Create(ctx context.Context, in CreateGame) (*model.Game, error)
	Update(ctx context.Context, id int64, in UpdateGame) (*model.Game, error)
	Delete(ctx context.Context, id int64) error
	ByID(ctx context.Context, id int64) (*model.Game, error)
	List(ctx context.Context) ([]model.Game, error)
	ListByTitle(ctx context.Context, title string) ([]model.Game, error)
	ListByGenre(ctx context.Context, genre model.Genre) ([]model.Game, error)
	ListAvailable(ctx context.Context) ([]model.Game, error)

	// ValidateAvailability fails when the game has no copies left.
	ValidateAvailability(g *model.Game) error

	// Tx-scoped operations consumed by the rental service. Errors pass
	// through from the store (sql.ErrNoRows on a missing row).
	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Game, error)
	AdjustQuantity(ctx context.Context, tx *sql.Tx, id int64, delta int) error
}

// ----- Service implementation -----

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

// Create adds a game to the catalog. A new game always ships with at
// least one copy, so it starts out available.
func (s *service) Create(ctx context.Context, in CreateGame) (*model.Game, error) {
	if in.Title == "" || in.Genre == "" || len(in.Platforms) == 0 || in.Quantity < 1 {
		return nil, makeErr(ErrBadInput)
	}
	g := &model.Game{
		Title:     in.Title,
		Genre:     in.Genre,
		Platforms: in.Platforms,
		Quantity:  in.Quantity,
		Available: true,
	}
	if err := s.r.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Update merges the non-nil fields into the stored game.
func (s *service) Update(ctx context.Context, id int64, in UpdateGame) (*model.Game, error) {
	g, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if in.Title != nil {
		g.Title = *in.Title
	}
	if in.Genre != nil {
		g.Genre = *in.Genre
	}
	if in.Platforms != nil {
		g.Platforms = in.Platforms
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, makeErr(ErrBadInput)
		}
		g.Quantity = *in.Quantity
	}
	g.Available = g.Quantity > 0

	if err := s.r.Update(ctx, g); err != nil {
		return nil, mapNotFound(err)
	}
	return g, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.r.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	return nil
}

func (s *service) ByID(ctx context.Context, id int64) (*model.Game, error) {
	g, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return g, nil
}

func (s *service) List(ctx context.Context) ([]model.Game, error) {
	return nonEmpty(s.r.List(ctx))
}

func (s *service) ListByTitle(ctx context.Context, title string) ([]model.Game, error) {
	return nonEmpty(s.r.ListByTitle(ctx, title))
}

func (s *service) ListByGenre(ctx context.Context, genre model.Genre) ([]model.Game, error) {
	return nonEmpty(s.r.ListByGenre(ctx, genre))
}

func (s *service) ListAvailable(ctx context.Context) ([]model.Game, error) {
	return nonEmpty(s.r.ListAvailable(ctx))
}

func (s *service) ValidateAvailability(g *model.Game) error {
	if g.Quantity <= 0 {
		return makeErr(ErrNotAvailable)
	}
	return nil
}

func (s *service) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Game, error) {
	return s.r.ByIDForUpdate(ctx, tx, id)
}

func (s *service) AdjustQuantity(ctx context.Context, tx *sql.Tx, id int64, delta int) error {
	return s.r.AdjustQuantity(ctx, tx, id, delta)
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return makeErr(ErrNotFound)
	}
	return err
}

// Empty filter results surface as not-found, matching the API contract.
func nonEmpty(games []model.Game, err error) ([]model.Game, error) {
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, makeErr(ErrNotFound)
	}
	return games, nil
}
