package models

import "time"

// Post statuses as reported by the server. Transitions are
// server-authoritative; the client only ever re-fetches.
const (
	PostStatusPending  = "pending"
	PostStatusVerified = "verified"
	PostStatusRejected = "rejected"
)

// Media types accepted for cleanup submissions.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Post is a cleanup submission.
type Post struct {
	ID             string     `json:"id" validate:"required"`
	UserID         string     `json:"user_id"`
	UserEmail      string     `json:"user_email"`
	Username       string     `json:"username"`
	Caption        string     `json:"caption"`
	Location       string     `json:"location"`
	MediaType      string     `json:"media_type"`
	MediaMIME      string     `json:"media_mime"`
	MediaURL       string     `json:"media_url"`
	MediaBase64    string     `json:"media_base64"`
	AISummary      string     `json:"ai_summary"`
	Status         string     `json:"status"`
	Verified       bool       `json:"verified"`
	CreditsAwarded int        `json:"credits_awarded"`
	ReviewNotes    string     `json:"review_notes"`
	CreatedAt      *time.Time `json:"created_at"`
}

// PostCreate is the payload for a new cleanup submission. Media travels as a
// base64 transport string produced by the capture pipeline.
type PostCreate struct {
	UserID      string `json:"user_id"`
	UserEmail   string `json:"user_email"`
	Username    string `json:"username,omitempty"`
	Caption     string `json:"caption"`
	MediaBase64 string `json:"media_base64"`
	MediaMIME   string `json:"media_mime"`
	MediaType   string `json:"media_type"`
	Location    string `json:"location,omitempty"`
	AISummary   string `json:"ai_summary,omitempty"`
}

// PostList is the paginated envelope for GET /posts.
type PostList struct {
	Items []Post `json:"items" validate:"dive"`
	Count int    `json:"count"`
}

// LostItem is a lost-and-found report. Same lifecycle shape as Post,
// without credits.
type LostItem struct {
	ID             string     `json:"id" validate:"required"`
	UserID         string     `json:"user_id"`
	UserEmail      string     `json:"user_email"`
	Username       string     `json:"username"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Location       string     `json:"location"`
	Contact        string     `json:"contact"`
	ImageURL       string     `json:"image_url"`
	Status         string     `json:"status"`
	CreditsAwarded int        `json:"credits_awarded"`
	CreatedAt      *time.Time `json:"created_at"`
}

// LostItemCreate is the payload for a new lost-and-found report.
type LostItemCreate struct {
	UserID      string `json:"user_id"`
	UserEmail   string `json:"user_email"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Contact     string `json:"contact"`
	ImageURL    string `json:"image_url,omitempty"`
}

// LostItemList is the paginated envelope for GET /lost-found.
type LostItemList struct {
	Items []LostItem `json:"items" validate:"dive"`
	Count int        `json:"count"`
}

// Settings holds the per-user preferences stored server-side. The server is
// authoritative for Username; a non-empty fetched value overwrites the
// cached session.
type Settings struct {
	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username"`
	Theme    string `json:"theme"`
}

// SettingsUpdate is the payload for PUT /users/{id}/settings.
type SettingsUpdate struct {
	Username string `json:"username"`
	Theme    string `json:"theme"`
}

// UserCredits is the response of GET /rewards/users/{id}.
type UserCredits struct {
	UserID  string `json:"user_id" validate:"required"`
	Credits int    `json:"credits" validate:"gte=0"`
}

// RedeemRequest is the payload for POST /rewards/redeem.
type RedeemRequest struct {
	UserID string `json:"user_id"`
	Amount int    `json:"amount"`
	Note   string `json:"note,omitempty"`
}

// RedeemResult reports the server-side balance after a redemption.
type RedeemResult struct {
	UserID           string `json:"user_id" validate:"required"`
	Amount           int    `json:"amount"`
	RemainingCredits int    `json:"remaining_credits" validate:"gte=0"`
	Note             string `json:"note"`
}

// User is the public user record returned by admin listings.
type User struct {
	ID       string `json:"id" validate:"required"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// UserList is the envelope for GET /auth/users.
type UserList struct {
	Items []User `json:"items" validate:"dive"`
}

// AuthUser is the signup/login response: a user record plus bearer token.
type AuthUser struct {
	ID       string `json:"id" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Token    string `json:"token" validate:"required"`
}

// Session converts the auth response into the locally cached session record.
func (u *AuthUser) Session() *Session {
	return &Session{
		UID:      u.ID,
		Email:    u.Email,
		Username: u.Username,
		Role:     u.Role,
		Token:    u.Token,
	}
}

// TipRequest asks the platform for an AI sustainability tip.
type TipRequest struct {
	Prompt  string `json:"prompt"`
	Context string `json:"context,omitempty"`
}

// Tip is the AI tip response.
type Tip struct {
	Output string `json:"output" validate:"required"`
	Model  string `json:"model"`
}
