package auth

import (
	"context"
	"errors"
	"fmt"

	"evently-client/internal/graphql"
	"evently-client/internal/session"
	"evently-client/internal/shared/validation"
	"evently-client/pkg/logger"
)

// SignupMessage is shown inline after a successful signup
const SignupMessage = "User created successfully. You can now log in."

// InvalidCredentialsMessage is shown inline for any failed login
const InvalidCredentialsMessage = "User does not exist or incorrect credentials."

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service interface {
	Login(ctx context.Context, email, password string) (session.Credential, error)
	Signup(ctx context.Context, email, password string) (*User, error)
	Logout()
}

type service struct {
	client   graphql.Executor
	sessions *session.Store
	log      *logger.Logger
}

func NewService(client graphql.Executor, sessions *session.Store, log *logger.Logger) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{
		client:   client,
		sessions: sessions,
		log:      log.WithComponent("auth"),
	}
}

// Login authenticates and, on success, replaces the store's credential.
// Blank input fails validation without a network call.
func (s *service) Login(ctx context.Context, email, password string) (session.Credential, error) {
	if err := validation.Struct(Credentials{Email: email, Password: password}); err != nil {
		return session.Credential{}, err
	}

	res, err := s.client.Execute(ctx, loginQuery, graphql.Variables{
		"email":    email,
		"password": password,
	}, nil)
	if err != nil {
		s.log.LogAuthFailure(ctx, err.Error(), "login")
		return session.Credential{}, fmt.Errorf("%w (%w)", ErrInvalidCredentials, err)
	}

	var data AuthData
	if err := res.Decode("login", &data); err != nil {
		s.log.LogAuthFailure(ctx, err.Error(), "login")
		return session.Credential{}, fmt.Errorf("%w (%w)", ErrInvalidCredentials, err)
	}
	if data.Token == "" {
		s.log.LogAuthFailure(ctx, "empty token", "login")
		return session.Credential{}, ErrInvalidCredentials
	}

	cred := s.sessions.Login(data.Token, data.UserID)
	s.log.LogAuthSuccess(ctx, data.UserID, "password")
	return cred, nil
}

// Signup creates an account. It does not log in.
func (s *service) Signup(ctx context.Context, email, password string) (*User, error) {
	if err := validation.Struct(Credentials{Email: email, Password: password}); err != nil {
		return nil, err
	}

	res, err := s.client.Execute(ctx, createUserMutation, graphql.Variables{
		"email":    email,
		"password": password,
	}, nil)
	if err != nil {
		s.log.LogAuthFailure(ctx, err.Error(), "signup")
		return nil, fmt.Errorf("create user: %w", err)
	}

	var user User
	if err := res.Decode("createUser", &user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func (s *service) Logout() {
	s.sessions.Logout()
}
