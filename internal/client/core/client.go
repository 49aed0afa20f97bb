package core

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/meetly/sync-client/internal/client/rest"
	"github.com/meetly/sync-client/internal/models"
)

// SessionStore persists the authenticated session: the bearer token and the
// cached profile of the logged-in user. Both are cleared together on logout.
type SessionStore interface {
	SaveToken(token string) error
	Token() (string, error)
	SaveProfile(user models.User) error
	Profile() (*models.User, error)
	Clear() error
}

// Client is the gateway to the primary backend. Every method performs
// exactly one HTTP call (two, sequentially, for Login) and returns fully
// mapped view models, never raw backend JSON. Methods do not touch client
// state; collection updates belong to the sync service.
type Client struct {
	api      *rest.Client
	sessions SessionStore
	seq      atomic.Int64
}

func NewClient(api *rest.Client, sessions SessionStore) *Client {
	return &Client{api: api, sessions: sessions}
}

func ok(status int) bool {
	return status >= 200 && status < 300
}

// domainFailure converts a non-2xx response into a DomainError carrying the
// backend's detail message, or a generic error when no detail is present.
func domainFailure(op string, status int, body []byte) error {
	if detail := errorDetail(body, ""); detail != "" {
		return &DomainError{Detail: detail}
	}
	return fmt.Errorf("%s: api error status %d", op, status)
}

// Login posts credentials, persists the returned bearer token and then
// fetches the authenticated profile. The profile is cached in the session
// store so the app can resume without re-login.
func (c *Client) Login(ctx context.Context, username, password string) (models.User, error) {
	body, status, err := c.api.JSON(ctx, http.MethodPost, "/users/login", nil, loginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return models.User{}, fmt.Errorf("login: %w", err)
	}
	if !ok(status) {
		return models.User{}, &AuthError{Detail: errorDetail(body, "invalid username or password")}
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return models.User{}, fmt.Errorf("parse login response: %w", err)
	}
	if err := c.sessions.SaveToken(tok.AccessToken); err != nil {
		return models.User{}, fmt.Errorf("persist session token: %w", err)
	}

	user, err := c.CurrentUser(ctx)
	if err != nil {
		return models.User{}, err
	}
	if err := c.sessions.SaveProfile(user); err != nil {
		return models.User{}, fmt.Errorf("persist user profile: %w", err)
	}
	return user, nil
}

// Register creates an account. It does not log the user in.
func (c *Client) Register(ctx context.Context, name, username, email, password string) (models.User, error) {
	body, status, err := c.api.JSON(ctx, http.MethodPost, "/users/register", nil, registerRequest{
		Name:     name,
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return models.User{}, fmt.Errorf("register: %w", err)
	}
	if !ok(status) {
		return models.User{}, domainFailure("register", status, body)
	}

	var p userPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return models.User{}, fmt.Errorf("parse register response: %w", err)
	}
	return mapUser(p), nil
}

// CurrentUser fetches the profile behind the stored token.
func (c *Client) CurrentUser(ctx context.Context) (models.User, error) {
	body, status, err := c.api.JSON(ctx, http.MethodGet, "/users/me", nil, nil)
	if err != nil {
		return models.User{}, fmt.Errorf("get current user: %w", err)
	}
	if !ok(status) {
		return models.User{}, domainFailure("get current user", status, body)
	}

	var p userPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return models.User{}, fmt.Errorf("parse current user: %w", err)
	}
	return mapUser(p), nil
}

// UpdateUserSettings has no backend endpoint yet and always reports that,
// rather than echoing the input back as a fake success.
func (c *Client) UpdateUserSettings(ctx context.Context, userID string, settings models.UserSettings) (models.User, error) {
	return models.User{}, ErrSettingsUpdateUnsupported
}

// UploadAvatar uploads an image under the backend's single "file" form
// field and returns the served URL.
func (c *Client) UploadAvatar(ctx context.Context, filename string, file io.Reader) (string, error) {
	body, status, err := c.api.Multipart(ctx, "/users/me/avatar", "file", filename, file)
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	if !ok(status) {
		return "", domainFailure("upload avatar", status, body)
	}

	var resp avatarUploadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parse avatar response: %w", err)
	}
	return resp.URL, nil
}
