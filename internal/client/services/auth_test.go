package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/ecosync/ecosync-cli/internal/client/api"
	"github.com/ecosync/ecosync-cli/internal/client/models"
	"github.com/ecosync/ecosync-cli/internal/client/session"
)

// memState is an in-memory localstate.Repository.
type memState struct {
	data map[string][]byte
}

func newMemState() *memState { return &memState{data: map[string][]byte{}} }

func (m *memState) Get(ctx context.Context, key string) ([]byte, error) { return m.data[key], nil }

func (m *memState) Set(ctx context.Context, key string, value []byte) error {
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memState) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memState) Clear(ctx context.Context) error {
	m.data = map[string][]byte{}
	return nil
}

// newStubBackend wires a real HTTP gateway client against a stub server and
// a real session repository over in-memory state.
func newStubBackend(t *testing.T, handler http.HandlerFunc) (AuthService, session.Repository, api.Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sessions := session.NewLocalRepository(newMemState())
	client := api.NewHTTPClient(srv.URL, 5*time.Second, session.TokenProvider{Repo: sessions})
	return NewAuthService(client, sessions), sessions, client
}

func TestAuthService_LoginPersistsSessionAndAuthenticatesNextCall(t *testing.T) {
	var creditsAuth string
	handler := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			require.Empty(t, r.Header.Get("Authorization"), "login is unauthenticated")
			_ = json.NewEncoder(w).Encode(models.AuthUser{
				ID: "u1", Email: "a@x.com", Username: "u1", Role: "user", Token: "t1",
			})
		case "/rewards/users/u1":
			creditsAuth = r.Header.Get("Authorization")
			_ = json.NewEncoder(w).Encode(models.UserCredits{UserID: "u1", Credits: 50})
		default:
			http.NotFound(w, r)
		}
	}

	auth, sessions, client := newStubBackend(t, handler)
	ctx := context.Background()

	sess, err := auth.Login(ctx, "a@x.com", "p")
	require.NoError(t, err)
	require.Equal(t, &models.Session{UID: "u1", Email: "a@x.com", Username: "u1", Role: "user", Token: "t1"}, sess)

	persisted, err := sessions.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, sess, persisted)

	// a subsequent authenticated call carries the persisted token
	credits, err := client.GetCredits(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 50, credits)
	require.Equal(t, "Bearer t1", creditsAuth)
}

func TestAuthService_LoginFailureSurfacesServerMessage(t *testing.T) {
	auth, sessions, _ := newStubBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
	})
	ctx := context.Background()

	_, err := auth.Login(ctx, "a@x.com", "wrong")
	require.ErrorContains(t, err, "Invalid credentials")

	// nothing persisted after a failed login
	persisted, err := sessions.Read(ctx)
	require.NoError(t, err)
	require.Nil(t, persisted)
}

func TestAuthService_SignupPersistsSession(t *testing.T) {
	auth, sessions, _ := newStubBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/signup", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.AuthUser{
			ID: "u2", Email: "b@x.com", Username: "b", Role: "user", Token: "t2",
		})
	})
	ctx := context.Background()

	sess, err := auth.Signup(ctx, "b@x.com", "b", "p")
	require.NoError(t, err)
	require.Equal(t, "u2", sess.UID)

	persisted, err := sessions.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, sess, persisted)
}

func TestAuthService_LogoutClearsSession(t *testing.T) {
	sessions := session.NewLocalRepository(newMemState())
	auth := NewAuthService(nil, sessions)
	ctx := context.Background()

	require.NoError(t, sessions.Write(ctx, &models.Session{UID: "u1", Token: "t1"}))
	require.NoError(t, auth.Logout(ctx))

	_, err := auth.Current(ctx)
	require.ErrorIs(t, err, ErrNotSignedIn)
}

func TestTokenExpiresAt(t *testing.T) {
	exp := time.Now().Add(12 * time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "a@x.com",
		"role": "user",
		"exp":  exp.Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	got, err := TokenExpiresAt(signed)
	require.NoError(t, err)
	require.True(t, got.Equal(exp))
}

func TestTokenExpiresAt_Malformed(t *testing.T) {
	_, err := TokenExpiresAt("not-a-token")
	require.Error(t, err)
}
