package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"adminconsole/internal/domain/models"
)

// AuthService handles session lifecycle.
type AuthService struct{ c *Client }

// Auth returns the authentication service.
func (c *Client) Auth() AuthService { return AuthService{c: c} }

// SessionStatus is the /auth/status payload.
type SessionStatus struct {
	LoggedIn bool         `json:"logged_in"`
	User     *models.User `json:"user"`
}

type credentials struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Login authenticates with a username or email and stores the session
// token on the client for subsequent requests.
func (s AuthService) Login(ctx context.Context, identifier, password string) (models.User, error) {
	return s.establishSession(ctx, "/auth/login", credentials{Identifier: identifier, Password: password})
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and logs it in.
func (s AuthService) Register(ctx context.Context, req RegisterRequest) (models.User, error) {
	return s.establishSession(ctx, "/auth/register", req)
}

// establishSession posts credentials and captures the session cookie.
func (s AuthService) establishSession(ctx context.Context, path string, payload any) (models.User, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return models.User{}, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return models.User{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.c.UserAgent != "" {
		req.Header.Set("User-Agent", s.c.UserAgent)
	}

	res, err := s.c.HTTPClient.Do(req)
	if err != nil {
		return models.User{}, fmt.Errorf("POST %s: %w", path, err)
	}
	defer res.Body.Close()
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return models.User{}, err
	}
	if res.StatusCode/100 != 2 {
		return models.User{}, parseAPIError(res.StatusCode, resBody)
	}

	for _, cookie := range res.Cookies() {
		if cookie.Name == "session" {
			s.c.SessionToken = cookie.Value
		}
	}

	var out struct {
		User models.User `json:"user"`
	}
	if err := json.Unmarshal(resBody, &out); err != nil {
		return models.User{}, fmt.Errorf("decode response: %w", err)
	}
	return out.User, nil
}

// Logout ends the session and clears the stored token and cache.
func (s AuthService) Logout(ctx context.Context) error {
	err := s.c.doJSON(ctx, http.MethodPost, "/auth/logout", "", nil, nil, false)
	if err != nil {
		return err
	}
	s.c.SessionToken = ""
	s.c.Invalidate("/app")
	return nil
}

// Status reports whether the client currently holds a valid session.
func (s AuthService) Status(ctx context.Context) (SessionStatus, error) {
	var out SessionStatus
	err := s.c.doJSON(ctx, http.MethodGet, "/auth/status", "", nil, &out, true)
	return out, err
}
