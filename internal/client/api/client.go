package api

import (
	"context"

	"github.com/ecosync/ecosync-cli/internal/client/models"
)

// TokenSource yields the bearer token to attach to authenticated requests,
// or an empty string when no signed-in session exists at call time.
type TokenSource interface {
	Token(ctx context.Context) string
}

// Client is the typed gateway to the EcoSync API. One method per remote
// operation; every method returns the parsed response or an error
// (*RequestError for non-2xx responses).
type Client interface {
	Ping(ctx context.Context) error

	// auth (unauthenticated)
	Signup(ctx context.Context, email, username, password string) (*models.AuthUser, error)
	Login(ctx context.Context, email, password string) (*models.AuthUser, error)
	// admin
	ListUsers(ctx context.Context) ([]models.User, error)

	// posts
	ListPosts(ctx context.Context, limit int) ([]models.Post, error)
	CreatePost(ctx context.Context, p models.PostCreate) (*models.Post, error)
	DeletePost(ctx context.Context, id string) error
	ApprovePost(ctx context.Context, id string, credits int, reviewNotes string) (*models.Post, error)
	RejectPost(ctx context.Context, id string, reason string) (*models.Post, error)

	// lost & found
	ListLostItems(ctx context.Context, limit int) ([]models.LostItem, error)
	CreateLostItem(ctx context.Context, item models.LostItemCreate) (*models.LostItem, error)
	UpdateLostItemStatus(ctx context.Context, id, status string) (*models.LostItem, error)
	DeleteLostItem(ctx context.Context, id string) error

	// settings
	GetSettings(ctx context.Context, userID string) (*models.Settings, error)
	UpdateSettings(ctx context.Context, userID string, s models.SettingsUpdate) (*models.Settings, error)

	// rewards
	GetCredits(ctx context.Context, userID string) (int, error)
	Redeem(ctx context.Context, userID string, amount int, note string) (*models.RedeemResult, error)

	// ai (unauthenticated)
	RequestTip(ctx context.Context, prompt, tipContext string) (*models.Tip, error)
}
