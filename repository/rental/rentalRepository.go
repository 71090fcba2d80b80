// repository/rental/rentalRepository.go
package rentalrepo

import (
	"context"
	"database/sql"
	"time"

	"gamerental/model"
)

type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, r *model.Rental) error
	Update(ctx context.Context, tx *sql.Tx, r *model.Rental) error
	Delete(ctx context.Context, id int64) error
	ByID(ctx context.Context, id int64) (*model.Rental, error)
	ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Rental, error)

	List(ctx context.Context) ([]model.Rental, error)
	ListByGameID(ctx context.Context, gameID int64) ([]model.Rental, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Rental, error)
	ListByRentalDate(ctx context.Context, date time.Time) ([]model.Rental, error)
	ListByEndDate(ctx context.Context, date time.Time) ([]model.Rental, error)
	ListByStatus(ctx context.Context, status model.RentalStatus) ([]model.Rental, error)
	ListByUserName(ctx context.Context, name string) ([]model.Rental, error)
	ListByGameTitle(ctx context.Context, title string) ([]model.Rental, error)

	// MarkLate flips every ACTIVE rental whose term expired before asOf
	// to LATE. Set-based and guarded by status, so a concurrent return
	// or cancel cannot be clobbered and re-running it is a no-op.
	MarkLate(ctx context.Context, asOf time.Time, termDays int) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const selectRental = `
	SELECT id, game_id, user_id, rental_date, end_date, status
	FROM rentals`

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, m *model.Rental) error {
	const q = `
		INSERT INTO rentals (game_id, user_id, rental_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return tx.QueryRowContext(ctx, q,
		m.GameID, m.UserID, m.RentalDate, m.EndDate, m.Status,
	).Scan(&m.ID)
}

func (r *repo) Update(ctx context.Context, tx *sql.Tx, m *model.Rental) error {
	const q = `
		UPDATE rentals
		SET game_id = $2, user_id = $3, end_date = $4, status = $5
		WHERE id = $1`
	res, err := tx.ExecContext(ctx, q, m.ID, m.GameID, m.UserID, m.EndDate, m.Status)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Rental, error) {
	return scanRental(r.db.QueryRowContext(ctx, selectRental+` WHERE id = $1`, id))
}

func (r *repo) ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Rental, error) {
	return scanRental(tx.QueryRowContext(ctx, selectRental+` WHERE id = $1 FOR UPDATE`, id))
}

func (r *repo) List(ctx context.Context) ([]model.Rental, error) {
	return r.list(ctx, selectRental+` ORDER BY id`)
}

func (r *repo) ListByGameID(ctx context.Context, gameID int64) ([]model.Rental, error) {
	return r.list(ctx, selectRental+` WHERE game_id = $1 ORDER BY id`, gameID)
}

func (r *repo) ListByUserID(ctx context.Context, userID int64) ([]model.Rental, error) {
	return r.list(ctx, selectRental+` WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *repo) ListByRentalDate(ctx context.Context, date time.Time) ([]model.Rental, error) {
	return r.list(ctx, selectRental+` WHERE rental_date = $1::date ORDER BY id`, date)
}

func (r *repo) ListByEndDate(ctx context.Context, date time.Time) ([]model.Rental, error) {
	return r.list(ctx, selectRental+` WHERE end_date = $1::date ORDER BY id`, date)
}

func (r *repo) ListByStatus(ctx context.Context, status model.RentalStatus) ([]model.Rental, error) {
	return r.list(ctx, selectRental+` WHERE status = $1 ORDER BY id`, string(status))
}

func (r *repo) ListByUserName(ctx context.Context, name string) ([]model.Rental, error) {
	const q = `
		SELECT r.id, r.game_id, r.user_id, r.rental_date, r.end_date, r.status
		FROM rentals r
		JOIN users u ON u.id = r.user_id
		WHERE u.name ILIKE '%' || $1 || '%'
		ORDER BY r.id`
	return r.list(ctx, q, name)
}

func (r *repo) ListByGameTitle(ctx context.Context, title string) ([]model.Rental, error) {
	const q = `
		SELECT r.id, r.game_id, r.user_id, r.rental_date, r.end_date, r.status
		FROM rentals r
		JOIN games g ON g.id = r.game_id
		WHERE g.title ILIKE '%' || $1 || '%'
		ORDER BY r.id`
	return r.list(ctx, q, title)
}

// The term parameter carries an explicit cast: Postgres cannot resolve
// `date + unknown` (date+integer and date+interval are both candidates).
const markLateQuery = `
	UPDATE rentals
	SET status = 'LATE'
	WHERE status = 'ACTIVE'
	AND rental_date + ($2::int) < $1::date`

func (r *repo) MarkLate(ctx context.Context, asOf time.Time, termDays int) (int64, error) {
	res, err := r.db.ExecContext(ctx, markLateQuery, asOf, termDays)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repo) list(ctx context.Context, q string, args ...any) ([]model.Rental, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Rental
	for rows.Next() {
		var m model.Rental
		if err := rows.Scan(&m.ID, &m.GameID, &m.UserID, &m.RentalDate, &m.EndDate, &m.Status); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanRental(row *sql.Row) (*model.Rental, error) {
	m := &model.Rental{}
	if err := row.Scan(&m.ID, &m.GameID, &m.UserID, &m.RentalDate, &m.EndDate, &m.Status); err != nil {
		return nil, err
	}
	return m, nil
}
