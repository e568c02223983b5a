// Package services contains application services for the EcoSync client.
// This file defines the authentication service: signup, login, logout, and
// inspection of the cached session.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ecosync/ecosync-cli/internal/client/api"
	"github.com/ecosync/ecosync-cli/internal/client/models"
	"github.com/ecosync/ecosync-cli/internal/client/session"
)

// ErrNotSignedIn is returned by Current when no session is cached.
var ErrNotSignedIn = errors.New("not signed in")

// AuthService defines authentication operations for the client.
//
// Contract:
//   - Signup/Login: authenticate against the server and persist the returned
//     session in the local store.
//   - Logout: clear the persisted session unconditionally.
//   - Current: return the cached session, or ErrNotSignedIn.
type AuthService interface {
	Signup(ctx context.Context, email, username, password string) (*models.Session, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*models.Session, error)
}

type authService struct {
	client   api.Client
	sessions session.Repository
}

// NewAuthService constructs an AuthService bound to the given gateway client
// and session repository.
func NewAuthService(client api.Client, sessions session.Repository) AuthService {
	return &authService{client: client, sessions: sessions}
}

func (a *authService) Signup(ctx context.Context, email, username, password string) (*models.Session, error) {
	user, err := a.client.Signup(ctx, email, username, password)
	if err != nil {
		return nil, fmt.Errorf("signup error: %w", err)
	}
	return a.persist(ctx, user)
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	user, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	return a.persist(ctx, user)
}

func (a *authService) persist(ctx context.Context, user *models.AuthUser) (*models.Session, error) {
	sess := user.Session()
	if err := a.sessions.Write(ctx, sess); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return sess, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.sessions.Clear(ctx)
}

func (a *authService) Current(ctx context.Context) (*models.Session, error) {
	sess, err := a.sessions.Read(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNotSignedIn
	}
	return sess, nil
}

// TokenExpiresAt extracts the expiry claim from a bearer token without
// verifying the signature (the backend is trusted to validate tokens; the
// client only uses the claim for display and expiry warnings). Returns the
// zero time when the token carries no expiry.
func TokenExpiresAt(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("parse token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("token expiry claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}
