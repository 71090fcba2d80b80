package usersvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"gamerental/model"
	"gamerental/util/hash"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound   ErrCode = "USER_NOT_FOUND"
	ErrEmailTaken ErrCode = "EMAIL_TAKEN"
	ErrBadInput   ErrCode = "BAD_INPUT"
	ErrPlanLimit  ErrCode = "PLAN_LIMIT_EXCEEDED"
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

type CreateUser struct {
	Name     string
	Email    string
	Password string
	Plan     model.Plan
}

type UpdateUser struct {
	Name     *string
	Email    *string
	Password *string
	Role     *model.Role
	Plan     *model.Plan
}

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
	ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.User, error)
	AdjustActiveRentals(ctx context.Context, tx *sql.Tx, id int64, delta int) error
}

type Service interface {
	Create(ctx context.Context, in CreateUser) (*model.User, error)
	Update(ctx context.Context, id int64, in UpdateUser) (*model.User, error)
	Delete(ctx context.Context, id int64) error
	ByID(ctx context.Context, id int64) (*model.User, error)
	// ByEmail is the credential lookup used by the auth service.
	ByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	ListByName(ctx context.Context, name string) ([]model.User, error)
	ListByEmail(ctx context.Context, email string) ([]model.User, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
	ListByPlan(ctx context.Context, plan model.Plan) ([]model.User, error)

	// ValidateRentalLimit fails when the user is at their plan's cap.
	ValidateRentalLimit(u *model.User) error

	// Tx-scoped operations consumed by the rental service. Errors pass
	// through from the store (sql.ErrNoRows on a missing row).
	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.User, error)
	AdjustActiveRentals(ctx context.Context, tx *sql.Tx, id int64, delta int) error
}

// ----- Service implementation -----

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

// Create registers a subscriber. New accounts always start as USER
// with no open rentals.
func (s *service) Create(ctx context.Context, in CreateUser) (*model.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Plan == "" {
		return nil, makeErr(ErrBadInput)
	}

	hashed, err := hash.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Name:          in.Name,
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash:  hashed,
		Role:          model.RoleUser,
		Plan:          in.Plan,
		ActiveRentals: 0,
	}
	if err := s.r.Create(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Update(ctx context.Context, id int64, in UpdateUser) (*model.User, error) {
	u, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Password != nil {
		hashed, err := hash.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hashed
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.Plan != nil {
		u.Plan = *in.Plan
	}

	if err := s.r.Update(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, derr
		}
		return nil, mapNotFound(err)
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.r.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	return nil
}

func (s *service) ByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return u, nil
}

func (s *service) ByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := s.r.ByEmail(ctx, email)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return u, nil
}

func (s *service) List(ctx context.Context) ([]model.User, error) {
	return nonEmpty(s.r.List(ctx))
}

func (s *service) ListByName(ctx context.Context, name string) ([]model.User, error) {
	return nonEmpty(s.r.ListByName(ctx, name))
}

func (s *service) ListByEmail(ctx context.Context, email string) ([]model.User, error) {
	return nonEmpty(s.r.ListByEmail(ctx, email))
}

func (s *service) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	return nonEmpty(s.r.ListByRole(ctx, role))
}

func (s *service) ListByPlan(ctx context.Context, plan model.Plan) ([]model.User, error) {
	return nonEmpty(s.r.ListByPlan(ctx, plan))
}

// ValidateRentalLimit checks the plan cap against the user's open
// rentals. LATE rentals were never decremented, so they still count.
func (s *service) ValidateRentalLimit(u *model.User) error {
	if u.ActiveRentals >= u.Plan.MaxActiveRentals() {
		return makeErr(ErrPlanLimit)
	}
	return nil
}

func (s *service) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.User, error) {
	return s.r.ByIDForUpdate(ctx, tx, id)
}

func (s *service) AdjustActiveRentals(ctx context.Context, tx *sql.Tx, id int64, delta int) error {
	return s.r.AdjustActiveRentals(ctx, tx, id, delta)
}

func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return makeErr(ErrEmailTaken)
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return makeErr(ErrNotFound)
	}
	return err
}

func nonEmpty(users []model.User, err error) ([]model.User, error) {
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, makeErr(ErrNotFound)
	}
	return users, nil
}
