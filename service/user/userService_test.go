// service/user/user_service_test.go
package usersvc_test

import (
	"context"
	"database/sql"
	"testing"

	"gamerental/model"
	usersvc "gamerental/service/user"
	"gamerental/util/hash"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type repoMock struct {
	createFn      func(ctx context.Context, u *model.User) error
	updateFn      func(ctx context.Context, u *model.User) error
	deleteFn      func(ctx context.Context, id int64) error
	byIDFn        func(ctx context.Context, id int64) (*model.User, error)
	byEmailFn     func(ctx context.Context, email string) (*model.User, error)
	listFn        func(ctx context.Context) ([]model.User, error)
	listByNameFn  func(ctx context.Context, name string) ([]model.User, error)
	listByEmailFn func(ctx context.Context, email string) ([]model.User, error)
	listByRoleFn  func(ctx context.Context, role model.Role) ([]model.User, error)
	listByPlanFn  func(ctx context.Context, plan model.Plan) ([]model.User, error)
	adjustFn      func(ctx context.Context, tx *sql.Tx, id int64, delta int) error
}

func (m *repoMock) Create(ctx context.Context, u *model.User) error { return m.createFn(ctx, u) }
func (m *repoMock) Update(ctx context.Context, u *model.User) error { return m.updateFn(ctx, u) }
func (m *repoMock) Delete(ctx context.Context, id int64) error      { return m.deleteFn(ctx, id) }
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.User, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.byEmailFn(ctx, email)
}
func (m *repoMock) List(ctx context.Context) ([]model.User, error) { return m.listFn(ctx) }
func (m *repoMock) ListByName(ctx context.Context, name string) ([]model.User, error) {
	return m.listByNameFn(ctx, name)
}
func (m *repoMock) ListByEmail(ctx context.Context, email string) ([]model.User, error) {
	return m.listByEmailFn(ctx, email)
}
func (m *repoMock) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	return m.listByRoleFn(ctx, role)
}
func (m *repoMock) ListByPlan(ctx context.Context, plan model.Plan) ([]model.User, error) {
	return m.listByPlanFn(ctx, plan)
}
func (m *repoMock) ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.User, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) AdjustActiveRentals(ctx context.Context, tx *sql.Tx, id int64, delta int) error {
	return m.adjustFn(ctx, tx, id, delta)
}

func TestCreate_Defaults(t *testing.T) {
	var saved *model.User
	m := &repoMock{
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = 1
			saved = u
			return nil
		},
	}
	s := usersvc.New(m)

	u, err := s.Create(context.Background(), usersvc.CreateUser{
		Name:     "Dina",
		Email:    "  Dina@Mail.COM ",
		Password: "secret123",
		Plan:     model.PlanPro,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), u.ID)
	require.Equal(t, model.RoleUser, u.Role)
	require.Equal(t, 0, u.ActiveRentals)
	require.Equal(t, "dina@mail.com", u.Email)
	require.NotEqual(t, "secret123", saved.PasswordHash)
	require.True(t, hash.Check(saved.PasswordHash, "secret123"))
}

func TestCreate_BadInput(t *testing.T) {
	s := usersvc.New(&repoMock{})
	_, err := s.Create(context.Background(), usersvc.CreateUser{Name: "x", Email: "x@y.z"})
	require.Equal(t, usersvc.ErrBadInput, usersvc.Code(err))
}

func TestCreate_DuplicateEmail(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"}
		},
	}
	s := usersvc.New(m)

	_, err := s.Create(context.Background(), usersvc.CreateUser{
		Name: "Dina", Email: "dina@mail.com", Password: "secret123", Plan: model.PlanNoob,
	})
	require.Equal(t, usersvc.ErrEmailTaken, usersvc.Code(err))
}

func TestUpdate_RehashesPassword(t *testing.T) {
	stored := &model.User{ID: 3, Name: "Dina", Email: "dina@mail.com", PasswordHash: "old", Role: model.RoleUser, Plan: model.PlanNoob}
	m := &repoMock{
		byIDFn:   func(ctx context.Context, id int64) (*model.User, error) { return stored, nil },
		updateFn: func(ctx context.Context, u *model.User) error { return nil },
	}
	s := usersvc.New(m)

	pw := "newsecret"
	plan := model.PlanLegend
	u, err := s.Update(context.Background(), 3, usersvc.UpdateUser{Password: &pw, Plan: &plan})
	require.NoError(t, err)
	require.True(t, hash.Check(u.PasswordHash, "newsecret"))
	require.Equal(t, model.PlanLegend, u.Plan)
	require.Equal(t, "Dina", u.Name)
}

func TestUpdate_NotFound(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) { return nil, sql.ErrNoRows },
	}
	s := usersvc.New(m)
	_, err := s.Update(context.Background(), 404, usersvc.UpdateUser{})
	require.Equal(t, usersvc.ErrNotFound, usersvc.Code(err))
}

func TestValidateRentalLimit(t *testing.T) {
	s := usersvc.New(&repoMock{})

	cases := []struct {
		plan   model.Plan
		active int
		wantOK bool
	}{
		{model.PlanNoob, 0, true},
		{model.PlanNoob, 1, false},
		{model.PlanPro, 2, true},
		{model.PlanPro, 3, false},
		{model.PlanLegend, 4, true},
		{model.PlanLegend, 5, false},
	}
	for _, tc := range cases {
		err := s.ValidateRentalLimit(&model.User{Plan: tc.plan, ActiveRentals: tc.active})
		if tc.wantOK {
			require.NoError(t, err, "%s with %d active", tc.plan, tc.active)
		} else {
			require.Equal(t, usersvc.ErrPlanLimit, usersvc.Code(err), "%s with %d active", tc.plan, tc.active)
		}
	}
}

func TestList_EmptyIsNotFound(t *testing.T) {
	m := &repoMock{
		listByPlanFn: func(ctx context.Context, plan model.Plan) ([]model.User, error) { return nil, nil },
	}
	s := usersvc.New(m)
	_, err := s.ListByPlan(context.Background(), model.PlanPro)
	require.Equal(t, usersvc.ErrNotFound, usersvc.Code(err))
}
