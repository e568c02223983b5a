package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ecosync/ecosync-cli/internal/client/models"
)

// defaultListLimit matches the server default for list endpoints.
const defaultListLimit = 25

// HTTPClient is the JSON-over-HTTP implementation of Client.
//
// Response bodies are decoded into the explicit schemas in models and
// validated before being handed to callers; a response that does not match
// its schema is rejected rather than trusted.
type HTTPClient struct {
	baseURL  string
	http     *http.Client
	tokens   TokenSource
	validate *validator.Validate
}

// NewHTTPClient builds a gateway client for the given base URL. tokens may
// be nil for a client that never authenticates.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource) *HTTPClient {
	return &HTTPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		tokens:   tokens,
		validate: validator.New(),
	}
}

// do performs one round trip: build the URL, attach headers, send, and
// decode. out may be nil for delete-style operations with no body.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.requestError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if err := c.validate.Struct(out); err != nil {
		return fmt.Errorf("invalid response shape: %w", err)
	}
	return nil
}

// requestError turns a non-2xx response into a *RequestError, extracting the
// server detail from a FastAPI-style {"detail": "..."} body when present.
func (c *HTTPClient) requestError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	msg := strings.TrimSpace(string(data))
	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &detail); err == nil && detail.Detail != "" {
		msg = detail.Detail
	}
	if msg == "" {
		msg = genericMessage(resp.StatusCode)
	}

	return &RequestError{Status: resp.StatusCode, Message: msg}
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var health struct {
		Status string `json:"status"`
	}
	return c.do(ctx, http.MethodGet, "/health", nil, nil, &health)
}

func (c *HTTPClient) Signup(ctx context.Context, email, username, password string) (*models.AuthUser, error) {
	body := map[string]string{"email": email, "username": username, "password": password}
	var user models.AuthUser
	if err := c.do(ctx, http.MethodPost, "/auth/signup", nil, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthUser, error) {
	body := map[string]string{"email": email, "password": password}
	var user models.AuthUser
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var list models.UserList
	if err := c.do(ctx, http.MethodGet, "/auth/users", nil, nil, &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}

func (c *HTTPClient) ListPosts(ctx context.Context, limit int) ([]models.Post, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	var list models.PostList
	if err := c.do(ctx, http.MethodGet, "/posts", query, nil, &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}

func (c *HTTPClient) CreatePost(ctx context.Context, p models.PostCreate) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodPost, "/posts", nil, p, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *HTTPClient) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id), nil, nil, nil)
}

func (c *HTTPClient) ApprovePost(ctx context.Context, id string, credits int, reviewNotes string) (*models.Post, error) {
	query := url.Values{"credits": {strconv.Itoa(credits)}}
	if reviewNotes != "" {
		query.Set("review_notes", reviewNotes)
	}
	var post models.Post
	if err := c.do(ctx, http.MethodPost, "/posts/"+url.PathEscape(id)+"/approve", query, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *HTTPClient) RejectPost(ctx context.Context, id string, reason string) (*models.Post, error) {
	query := url.Values{}
	if reason != "" {
		query.Set("reason", reason)
	}
	var post models.Post
	if err := c.do(ctx, http.MethodPost, "/posts/"+url.PathEscape(id)+"/reject", query, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *HTTPClient) ListLostItems(ctx context.Context, limit int) ([]models.LostItem, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	var list models.LostItemList
	if err := c.do(ctx, http.MethodGet, "/lost-found", query, nil, &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}

func (c *HTTPClient) CreateLostItem(ctx context.Context, item models.LostItemCreate) (*models.LostItem, error) {
	var created models.LostItem
	if err := c.do(ctx, http.MethodPost, "/lost-found", nil, item, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) UpdateLostItemStatus(ctx context.Context, id, status string) (*models.LostItem, error) {
	path := "/lost-found/" + url.PathEscape(id) + "/status/" + url.PathEscape(status)
	var updated models.LostItem
	if err := c.do(ctx, http.MethodPatch, path, nil, nil, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *HTTPClient) DeleteLostItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/lost-found/"+url.PathEscape(id), nil, nil, nil)
}

func (c *HTTPClient) GetSettings(ctx context.Context, userID string) (*models.Settings, error) {
	var settings models.Settings
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/settings", nil, nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (c *HTTPClient) UpdateSettings(ctx context.Context, userID string, s models.SettingsUpdate) (*models.Settings, error) {
	var saved models.Settings
	if err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(userID)+"/settings", nil, s, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *HTTPClient) GetCredits(ctx context.Context, userID string) (int, error) {
	var credits models.UserCredits
	if err := c.do(ctx, http.MethodGet, "/rewards/users/"+url.PathEscape(userID), nil, nil, &credits); err != nil {
		return 0, err
	}
	return credits.Credits, nil
}

func (c *HTTPClient) Redeem(ctx context.Context, userID string, amount int, note string) (*models.RedeemResult, error) {
	body := models.RedeemRequest{UserID: userID, Amount: amount, Note: note}
	var result models.RedeemResult
	if err := c.do(ctx, http.MethodPost, "/rewards/redeem", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) RequestTip(ctx context.Context, prompt, tipContext string) (*models.Tip, error) {
	body := models.TipRequest{Prompt: prompt, Context: tipContext}
	var tip models.Tip
	if err := c.do(ctx, http.MethodPost, "/ai/tips", nil, body, &tip); err != nil {
		return nil, err
	}
	return &tip, nil
}
