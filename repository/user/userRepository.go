// repository/user/userRepository.go
package userrepo

import (
	"context"
	"database/sql"

	"gamerental/model"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id int64) error
	ByID(ctx context.Context, id int64) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	ListByName(ctx context.Context, name string) ([]model.User, error)
	ListByEmail(ctx context.Context, email string) ([]model.User, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
	ListByPlan(ctx context.Context, plan model.Plan) ([]model.User, error)

	// Tx-scoped operations used by the rental service.
	ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.User, error)
	AdjustActiveRentals(ctx context.Context, tx *sql.Tx, id int64, delta int) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const selectUser = `
	SELECT id, name, email, password_hash, role, plan, active_rentals, created_at
	FROM users`

func (r *repo) Create(ctx context.Context, u *model.User) error {
	const q = `
		INSERT INTO users (name, email, password_hash, role, plan, active_rentals)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		u.Name, u.Email, u.PasswordHash, u.Role, u.Plan, u.ActiveRentals,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *repo) Update(ctx context.Context, u *model.User) error {
	const q = `
		UPDATE users
		SET name = $2, email = $3, password_hash = $4, role = $5, plan = $6
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.Plan)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE id = $1`, id))
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		selectUser+` WHERE lower(email) = lower($1)`, email))
}

func (r *repo) List(ctx context.Context) ([]model.User, error) {
	return r.list(ctx, selectUser+` ORDER BY id`)
}

func (r *repo) ListByName(ctx context.Context, name string) ([]model.User, error) {
	return r.list(ctx, selectUser+` WHERE name ILIKE '%' || $1 || '%' ORDER BY id`, name)
}

func (r *repo) ListByEmail(ctx context.Context, email string) ([]model.User, error) {
	return r.list(ctx, selectUser+` WHERE email ILIKE '%' || $1 || '%' ORDER BY id`, email)
}

func (r *repo) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	return r.list(ctx, selectUser+` WHERE role = $1 ORDER BY id`, string(role))
}

func (r *repo) ListByPlan(ctx context.Context, plan model.Plan) ([]model.User, error) {
	return r.list(ctx, selectUser+` WHERE plan = $1 ORDER BY id`, string(plan))
}

func (r *repo) ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.User, error) {
	return scanUser(tx.QueryRowContext(ctx, selectUser+` WHERE id = $1 FOR UPDATE`, id))
}

func (r *repo) AdjustActiveRentals(ctx context.Context, tx *sql.Tx, id int64, delta int) error {
	const q = `
		UPDATE users
		SET active_rentals = active_rentals + $2
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

func (r *repo) list(ctx context.Context, q string, args ...any) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash,
			&u.Role, &u.Plan, &u.ActiveRentals, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func scanUser(row *sql.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&u.Role, &u.Plan, &u.ActiveRentals, &u.CreatedAt); err != nil {
		return nil, err
	}
	return u, nil
}
