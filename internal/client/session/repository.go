// Package session owns the persisted user session: a single durable slot
// holding the signed-in user's record and bearer token, plus the first-run
// notice flag. Writes are last-write-wins with no versioning; concurrent
// writers may race.
package session

import (
	"context"
	"encoding/json"

	"github.com/ecosync/ecosync-cli/internal/client/models"
	"github.com/ecosync/ecosync-cli/internal/client/repositories/localstate"
)

// Durable keys used in the local state store.
const (
	sessionKey = "session"
	noticeKey  = "notice_dismissed"
)

// Repository provides access to the persisted session record.
//
// Contract:
//   - Read: returns the cached session, or (nil, nil) when absent; a
//     malformed persisted payload is treated as absent, never an error.
//   - GetOrCreate: returns the existing session if present. No anonymous
//     identity is provisioned; the create path is reserved and currently
//     behaves as a plain Read.
//   - Write: overwrites any prior value.
//   - Clear: removes the persisted session unconditionally.
type Repository interface {
	Read(ctx context.Context) (*models.Session, error)
	GetOrCreate(ctx context.Context) (*models.Session, error)
	Write(ctx context.Context, s *models.Session) error
	Clear(ctx context.Context) error

	NoticeDismissed(ctx context.Context) (bool, error)
	DismissNotice(ctx context.Context) error
}

// LocalRepository persists the session in the local state store.
type LocalRepository struct {
	state localstate.Repository
}

func NewLocalRepository(state localstate.Repository) *LocalRepository {
	return &LocalRepository{state: state}
}

func (r *LocalRepository) Read(ctx context.Context) (*models.Session, error) {
	data, err := r.state.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil {
		// Malformed persisted data is indistinguishable from "not signed in".
		return nil, nil
	}
	return &s, nil
}

func (r *LocalRepository) GetOrCreate(ctx context.Context) (*models.Session, error) {
	return r.Read(ctx)
}

func (r *LocalRepository) Write(ctx context.Context, s *models.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.state.Set(ctx, sessionKey, data)
}

func (r *LocalRepository) Clear(ctx context.Context) error {
	return r.state.Delete(ctx, sessionKey)
}

func (r *LocalRepository) NoticeDismissed(ctx context.Context) (bool, error) {
	data, err := r.state.Get(ctx, noticeKey)
	if err != nil {
		return false, err
	}
	return string(data) == "1", nil
}

func (r *LocalRepository) DismissNotice(ctx context.Context) error {
	return r.state.Set(ctx, noticeKey, []byte("1"))
}

// TokenProvider yields the bearer token of the currently cached session, or
// an empty string when no session (or no token) exists at call time.
type TokenProvider struct {
	Repo Repository
}

func (p TokenProvider) Token(ctx context.Context) string {
	s, err := p.Repo.Read(ctx)
	if err != nil || s == nil {
		return ""
	}
	return s.Token
}
