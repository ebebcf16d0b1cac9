// Package client is the Go client for the stress-support API: a thin HTTP
// client plus a session gateway mirroring the web app's auth flow.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mindtrack/stress-api/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// User is the public profile returned by the API.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// RegisterInput carries the four registration fields.
type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// AuthResult is the server's auth envelope on success.
type AuthResult struct {
	Message string
	User    *User
	Token   string
}

// APIError is a non-success response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// APIClient talks to the stress-support API over JSON/HTTP with a bounded
// timeout per call.
type APIClient struct {
	baseURL string
	http    *http.Client
}

// NewAPIClient builds a client for the API at baseURL.
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

type authEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    *User  `json:"user"`
	Token   string `json:"token"`
}

// Register creates an account and returns the issued token.
func (c *APIClient) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	var env authEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", in, "", &env); err != nil {
		return nil, err
	}
	return &AuthResult{Message: env.Message, User: env.User, Token: env.Token}, nil
}

// Login authenticates and returns the issued token.
func (c *APIClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var env authEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, "", &env); err != nil {
		return nil, err
	}
	return &AuthResult{Message: env.Message, User: env.User, Token: env.Token}, nil
}

// Me resolves token to the current user's profile.
func (c *APIClient) Me(ctx context.Context, token string) (*User, error) {
	var env authEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, token, &env); err != nil {
		return nil, err
	}
	if env.User == nil {
		return nil, &APIError{Status: http.StatusOK, Message: "empty user in response"}
	}
	return env.User, nil
}

// Predict submits the questionnaire and returns the upstream body verbatim.
// token may be empty; when set, the server records the result in the
// caller's history.
func (c *APIClient) Predict(ctx context.Context, in domain.QuestionnaireInput, token string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/api/predict", in, token, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// HistoryItem is a stored prediction as returned by the API.
type HistoryItem struct {
	ID          string                    `json:"id"`
	Inputs      domain.QuestionnaireInput `json:"inputs"`
	StressLevel float64                   `json:"stress_level"`
	Category    string                    `json:"stress_category"`
	CreatedAt   time.Time                 `json:"created_at"`
}

// History lists the caller's stored predictions.
func (c *APIClient) History(ctx context.Context, token string) ([]HistoryItem, error) {
	var env struct {
		Success     bool          `json:"success"`
		Predictions []HistoryItem `json:"predictions"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/predictions", nil, token, &env); err != nil {
		return nil, err
	}
	return env.Predictions, nil
}

// do executes one request/response cycle. Non-2xx responses are decoded into
// APIError carrying the server's message.
func (c *APIClient) do(ctx context.Context, method, path string, body any, token string, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var serverErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &serverErr) == nil && serverErr.Message != "" {
			apiErr.Message = serverErr.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
