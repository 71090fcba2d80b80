package rentalsvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gamerental/model"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound         ErrCode = "RENTAL_NOT_FOUND"
	ErrGameNotFound     ErrCode = "GAME_NOT_FOUND"
	ErrUserNotFound     ErrCode = "USER_NOT_FOUND"
	ErrGameNotAvailable ErrCode = "GAME_NOT_AVAILABLE"
	ErrPlanLimit        ErrCode = "PLAN_LIMIT_EXCEEDED"
	ErrAlreadyClosed    ErrCode = "RENTAL_ALREADY_CLOSED"
	ErrNotActive        ErrCode = "RENTAL_NOT_ACTIVE"
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

type UpdateRental struct {
	GameID *int64
	UserID *int64
}

// Tx runs a function inside a database transaction.
type Tx interface {
	InTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// Games is the slice of the catalog service the lifecycle needs.
type Games interface {
	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Game, error)
	ValidateAvailability(g *model.Game) error
	AdjustQuantity(ctx context.Context, tx *sql.Tx, id int64, delta int) error
}

// Users is the slice of the subscriber service the lifecycle needs.
type Users interface {
	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.User, error)
	ValidateRentalLimit(u *model.User) error
	AdjustActiveRentals(ctx context.Context, tx *sql.Tx, id int64, delta int) error
}

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
	MarkLate(ctx context.Context, asOf time.Time, termDays int) (int64, error)
}

type Service interface {
	// Create opens a rental: availability and plan-limit checks, the
	// stock decrement, the counter increment and the insert happen in
	// one transaction with both rows locked.
	Create(ctx context.Context, gameID, userID int64) (*model.Rental, error)

	// Update reassigns the game and/or user of an open rental. It is a
	// correction, not a transition: counters are untouched.
	Update(ctx context.Context, id int64, in UpdateRental) (*model.Rental, error)

	// Delete removes the rental row. Counters are not reversed.
	Delete(ctx context.Context, id int64) error

	// Return closes an open (ACTIVE or LATE) rental and gives the copy
	// back to the catalog.
	Return(ctx context.Context, id int64) (*model.Rental, error)

	// Renew extends an ACTIVE rental by seven days.
	Renew(ctx context.Context, id int64) (*model.Rental, error)

	// Cancel closes an open rental with the same counter effects as a
	// return.
	Cancel(ctx context.Context, id int64) (*model.Rental, error)

	// MarkRentalsLate flips overdue ACTIVE rentals to LATE and reports
	// how many changed. Counters are untouched: a late copy is still
	// out.
	MarkRentalsLate(ctx context.Context) (int64, error)

	ByID(ctx context.Context, id int64) (*model.Rental, error)
	List(ctx context.Context) ([]model.Rental, error)
	ListByGameID(ctx context.Context, gameID int64) ([]model.Rental, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Rental, error)
	ListByRentalDate(ctx context.Context, date time.Time) ([]model.Rental, error)
	ListByEndDate(ctx context.Context, date time.Time) ([]model.Rental, error)
	ListByStatus(ctx context.Context, status model.RentalStatus) ([]model.Rental, error)
	ListByUserName(ctx context.Context, name string) ([]model.Rental, error)
	ListByGameTitle(ctx context.Context, title string) ([]model.Rental, error)
}

// ----- Service implementation -----

type service struct {
	tx    Tx
	games Games
	users Users
	r     Repo
}

func New(tx Tx, games Games, users Users, r Repo) Service {
	return &service{tx: tx, games: games, users: users, r: r}
}

func (s *service) Create(ctx context.Context, gameID, userID int64) (*model.Rental, error) {
	var out *model.Rental
	err := s.tx.InTx(ctx, func(tx *sql.Tx) error {
		game, err := s.games.GetForUpdate(ctx, tx, gameID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrGameNotFound)
			}
			return err
		}
		user, err := s.users.GetForUpdate(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrUserNotFound)
			}
			return err
		}

		if err := s.games.ValidateAvailability(game); err != nil {
			return makeErr(ErrGameNotAvailable)
		}
		if err := s.users.ValidateRentalLimit(user); err != nil {
			return makeErr(ErrPlanLimit)
		}

		day := today()
		r := &model.Rental{
			GameID:     game.ID,
			UserID:     user.ID,
			RentalDate: day,
			EndDate:    day.AddDate(0, 0, model.RentalTermDays),
			Status:     model.RentalActive,
		}
		if err := s.games.AdjustQuantity(ctx, tx, game.ID, -1); err != nil {
			return err
		}
		if err := s.users.AdjustActiveRentals(ctx, tx, user.ID, +1); err != nil {
			return err
		}
		if err := s.r.Insert(ctx, tx, r); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id int64, in UpdateRental) (*model.Rental, error) {
	var out *model.Rental
	err := s.tx.InTx(ctx, func(tx *sql.Tx) error {
		r, err := s.r.ByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrNotFound)
			}
			return err
		}
		if r.Status.Closed() {
			return makeErr(ErrAlreadyClosed)
		}

		if in.GameID != nil {
			if _, err := s.games.GetForUpdate(ctx, tx, *in.GameID); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return makeErr(ErrGameNotFound)
				}
				return err
			}
			r.GameID = *in.GameID
		}
		if in.UserID != nil {
			if _, err := s.users.GetForUpdate(ctx, tx, *in.UserID); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return makeErr(ErrUserNotFound)
				}
				return err
			}
			r.UserID = *in.UserID
		}

		if err := s.r.Update(ctx, tx, r); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.r.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *service) Return(ctx context.Context, id int64) (*model.Rental, error) {
	return s.close(ctx, id, model.RentalReturned)
}

func (s *service) Cancel(ctx context.Context, id int64) (*model.Rental, error) {
	return s.close(ctx, id, model.RentalCancelled)
}

// close ends an open rental: the copy goes back to the catalog and the
// user's open-rental count drops. LATE rentals close the same way as
// ACTIVE ones since the copy was still out.
func (s *service) close(ctx context.Context, id int64, final model.RentalStatus) (*model.Rental, error) {
	var out *model.Rental
	err := s.tx.InTx(ctx, func(tx *sql.Tx) error {
		r, err := s.r.ByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrNotFound)
			}
			return err
		}
		if r.Status.Closed() {
			return makeErr(ErrAlreadyClosed)
		}

		r.Status = final
		r.EndDate = today()

		if err := s.games.AdjustQuantity(ctx, tx, r.GameID, +1); err != nil {
			return err
		}
		if err := s.users.AdjustActiveRentals(ctx, tx, r.UserID, -1); err != nil {
			return err
		}
		if err := s.r.Update(ctx, tx, r); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Renew(ctx context.Context, id int64) (*model.Rental, error) {
	var out *model.Rental
	err := s.tx.InTx(ctx, func(tx *sql.Tx) error {
		r, err := s.r.ByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrNotFound)
			}
			return err
		}
		// Only ACTIVE rentals renew; a LATE one must be returned first.
		if r.Status.Closed() {
			return makeErr(ErrAlreadyClosed)
		}
		if r.Status != model.RentalActive {
			return makeErr(ErrNotActive)
		}

		r.EndDate = r.EndDate.AddDate(0, 0, model.RenewalDays)
		if err := s.r.Update(ctx, tx, r); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) MarkRentalsLate(ctx context.Context) (int64, error) {
	return s.r.MarkLate(ctx, today(), model.RentalTermDays)
}

func (s *service) ByID(ctx context.Context, id int64) (*model.Rental, error) {
	r, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return r, nil
}

func (s *service) List(ctx context.Context) ([]model.Rental, error) {
	return nonEmpty(s.r.List(ctx))
}

func (s *service) ListByGameID(ctx context.Context, gameID int64) ([]model.Rental, error) {
	return nonEmpty(s.r.ListByGameID(ctx, gameID))
}

func (s *service) ListByUserID(ctx context.Context, userID int64) ([]model.Rental, error) {
	return nonEmpty(s.r.ListByUserID(ctx, userID))
}

func (s *service) ListByRentalDate(ctx context.Context, date time.Time) ([]model.Rental, error) {
	return nonEmpty(s.r.ListByRentalDate(ctx, date))
}

func (s *service) ListByEndDate(ctx context.Context, date time.Time) ([]model.Rental, error) {
	return nonEmpty(s.r.ListByEndDate(ctx, date))
}

func (s *service) ListByStatus(ctx context.Context, status model.RentalStatus) ([]model.Rental, error) {
	return nonEmpty(s.r.ListByStatus(ctx, status))
}

func (s *service) ListByUserName(ctx context.Context, name string) ([]model.Rental, error) {
	return nonEmpty(s.r.ListByUserName(ctx, name))
}

func (s *service) ListByGameTitle(ctx context.Context, title string) ([]model.Rental, error) {
	return nonEmpty(s.r.ListByGameTitle(ctx, title))
}

func nonEmpty(rentals []model.Rental, err error) ([]model.Rental, error) {
	if err != nil {
		return nil, err
	}
	if len(rentals) == 0 {
		return nil, makeErr(ErrNotFound)
	}
	return rentals, nil
}

func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
