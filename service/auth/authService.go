package authsvc

import (
	"context"
	"errors"

	"gamerental/model"
	usersvc "gamerental/service/user"
	"gamerental/util/hash"
	jwtutil "gamerental/util/jwt"
)

// errors used by controllers

type ErrCode string

const (
	ErrEmailTaken   ErrCode = "EMAIL_TAKEN"
	ErrBadInput     ErrCode = "BAD_INPUT"
	ErrInvalidCreds ErrCode = "INVALID_CREDENTIALS"
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

// Users is the slice of the subscriber service auth needs.
type Users interface {
	Create(ctx context.Context, in usersvc.CreateUser) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
}

type Service interface {
	// Register creates a subscriber account (role USER).
	Register(ctx context.Context, req model.RegisterReq) (*model.User, error)

	// Login checks credentials and returns a bearer token.
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)
}

type service struct {
	users    Users
	secret   string
	ttlHours int
}

func New(users Users, secret string, ttlHours int) Service {
	return &service{users: users, secret: secret, ttlHours: ttlHours}
}

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, error) {
	plan, ok := model.ParsePlan(req.Plan)
	if !ok {
		return nil, makeErr(ErrBadInput)
	}

	u, err := s.users.Create(ctx, usersvc.CreateUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Plan:     plan,
	})
	if err != nil {
		switch usersvc.Code(err) {
		case usersvc.ErrEmailTaken:
			return nil, makeErr(ErrEmailTaken)
		case usersvc.ErrBadInput:
			return nil, makeErr(ErrBadInput)
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	u, err := s.users.ByEmail(ctx, req.Email)
	if err != nil {
		// Do not leak whether the account exists.
		return nil, "", makeErr(ErrInvalidCreds)
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", makeErr(ErrInvalidCreds)
	}

	token, err := jwtutil.Issue(s.secret, u.ID, string(u.Role), s.ttlHours)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}
