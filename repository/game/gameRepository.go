// repository/game/gameRepository.go
package gamerepo

import (
	"context"
	"database/sql"
	"strings"

	"gamerental/model"
)

type Repo interface {
	Create(ctx context.Context, g *model.Game) error
	Update(ctx context.Context, g *model.Game) error
	Delete(ctx context.Context, id int64) error
	ByID(ctx context.Context, id int64) (*model.Game, error)
	List(ctx context.Context) ([]model.Game, error)
	ListByTitle(ctx context.Context, title string) ([]model.Game, error)
	ListByGenre(ctx context.Context, genre model.Genre) ([]model.Game, error)
	ListAvailable(ctx context.Context) ([]model.Game, error)

	// Tx-scoped operations used by the rental service.
	ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Game, error)
	AdjustQuantity(ctx context.Context, tx *sql.Tx, id int64, delta int) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

// Availability is derived from quantity, never stored.
const selectGame = `
	SELECT id, title, genre, platforms, quantity, quantity > 0 AS available
	FROM games`

func (r *repo) Create(ctx context.Context, g *model.Game) error {
	const q = `
		INSERT INTO games (title, genre, platforms, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		g.Title, g.Genre, joinPlatforms(g.Platforms), g.Quantity,
	).Scan(&g.ID)
}

func (r *repo) Update(ctx context.Context, g *model.Game) error {
	const q = `
		UPDATE games
		SET title = $2, genre = $3, platforms = $4, quantity = $5
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q,
		g.ID, g.Title, g.Genre, joinPlatforms(g.Platforms), g.Quantity)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Game, error) {
	return scanGame(r.db.QueryRowContext(ctx, selectGame+` WHERE id = $1`, id))
}

func (r *repo) List(ctx context.Context) ([]model.Game, error) {
	return r.list(ctx, selectGame+` ORDER BY id`)
}

func (r *repo) ListByTitle(ctx context.Context, title string) ([]model.Game, error) {
	return r.list(ctx, selectGame+` WHERE title ILIKE '%' || $1 || '%' ORDER BY id`, title)
}

func (r *repo) ListByGenre(ctx context.Context, genre model.Genre) ([]model.Game, error) {
	return r.list(ctx, selectGame+` WHERE genre = $1 ORDER BY id`, string(genre))
}

func (r *repo) ListAvailable(ctx context.Context) ([]model.Game, error) {
	return r.list(ctx, selectGame+` WHERE quantity > 0 ORDER BY id`)
}

func (r *repo) ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Game, error) {
	return scanGame(tx.QueryRowContext(ctx, selectGame+` WHERE id = $1 FOR UPDATE`, id))
}

func (r *repo) AdjustQuantity(ctx context.Context, tx *sql.Tx, id int64, delta int) error {
	const q = `
		UPDATE games
		SET quantity = quantity + $2
		WHERE id = $1`
	res, err := tx.ExecContext(ctx, q, id, delta)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) list(ctx context.Context, q string, args ...any) ([]model.Game, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Game
	for rows.Next() {
		var g model.Game
		var platforms string
		if err := rows.Scan(&g.ID, &g.Title, &g.Genre, &platforms, &g.Quantity, &g.Available); err != nil {
			return nil, err
		}
		g.Platforms = splitPlatforms(platforms)
		out = append(out, g)
	}
	return out, rows.Err()
}

func scanGame(row *sql.Row) (*model.Game, error) {
	g := &model.Game{}
	var platforms string
	if err := row.Scan(&g.ID, &g.Title, &g.Genre, &platforms, &g.Quantity, &g.Available); err != nil {
		return nil, err
	}
	g.Platforms = splitPlatforms(platforms)
	return g, nil
}

// Platforms are a small closed set, stored as a comma-joined text column.
func joinPlatforms(ps []model.Platform) string {
	ss := make([]string, len(ps))
	for i, p := range ps {
		ss[i] = string(p)
	}
	return strings.Join(ss, ",")
}

func splitPlatforms(s string) []model.Platform {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]model.Platform, len(parts))
	for i, p := range parts {
		out[i] = model.Platform(p)
	}
	return out
}
