package client

import (
	"context"
	"sync"
)

// API is the slice of APIClient the gateway needs.
type API interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Me(ctx context.Context, token string) (*User, error)
}

// Session is a snapshot of the gateway's state.
type Session struct {
	User    *User
	Token   string
	Loading bool
	Error   string
}

// Result is the non-throwing outcome of a gateway operation.
type Result struct {
	Success bool
	Message string
}

// Gateway owns the client-side session: it persists the token, restores the
// session at startup, and exposes login/register/logout. State changes only
// through these operations; concurrent calls are serialized per mutation and
// resolve last-writer-wins.
type Gateway struct {
	api   API
	store TokenStore

	mu      sync.Mutex
	user    *User
	token   string
	loading bool
	lastErr string
}

// NewGateway builds a Gateway. The session reports Loading until Bootstrap
// has completed; callers must not treat a loading session as unauthenticated.
func NewGateway(api API, store TokenStore) *Gateway {
	return &Gateway{api: api, store: store, loading: true}
}

// Bootstrap restores a persisted session. A stored token is validated with an
// identity lookup; any failure discards the token and leaves the gateway
// unauthenticated. Loading is cleared whichever way it ends.
func (g *Gateway) Bootstrap(ctx context.Context) {
	defer func() {
		g.mu.Lock()
		g.loading = false
		g.mu.Unlock()
	}()

	token, err := g.store.Load()
	if err != nil || token == "" {
		return
	}

	user, err := g.api.Me(ctx, token)
	if err != nil {
		_ = g.store.Clear()
		return
	}

	g.mu.Lock()
	g.user = user
	g.token = token
	g.mu.Unlock()
}

// Login authenticates and adopts the session. Failures never panic; they are
// returned as a Result and recorded as the session error.
func (g *Gateway) Login(ctx context.Context, email, password string) Result {
	g.setError("")

	res, err := g.api.Login(ctx, email, password)
	if err != nil {
		return g.fail(err)
	}

	return g.adopt(res)
}

// Register creates an account and adopts the session, symmetric to Login.
func (g *Gateway) Register(ctx context.Context, in RegisterInput) Result {
	g.setError("")

	res, err := g.api.Register(ctx, in)
	if err != nil {
		return g.fail(err)
	}

	return g.adopt(res)
}

// Logout clears the persisted token and the in-memory session synchronously.
// No server call is made; the token stays valid upstream until expiry.
func (g *Gateway) Logout() {
	_ = g.store.Clear()

	g.mu.Lock()
	g.user = nil
	g.token = ""
	g.lastErr = ""
	g.mu.Unlock()
}

// IsAuthenticated is derived, never stored: a token without a resolved user
// (mid-bootstrap, post-logout race) does not count.
func (g *Gateway) IsAuthenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token != "" && g.user != nil
}

// Session returns a snapshot of the current state.
func (g *Gateway) Session() Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Session{
		User:    g.user,
		Token:   g.token,
		Loading: g.loading,
		Error:   g.lastErr,
	}
}

// Token returns the current session token, empty when unauthenticated.
func (g *Gateway) Token() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token
}

func (g *Gateway) adopt(res *AuthResult) Result {
	if err := g.store.Save(res.Token); err != nil {
		return g.fail(err)
	}

	g.mu.Lock()
	g.user = res.User
	g.token = res.Token
	g.lastErr = ""
	g.mu.Unlock()

	return Result{Success: true, Message: res.Message}
}

func (g *Gateway) fail(err error) Result {
	msg := err.Error()
	if apiErr, ok := err.(*APIError); ok {
		msg = apiErr.Message
	}
	g.setError(msg)
	return Result{Success: false, Message: msg}
}

func (g *Gateway) setError(msg string) {
	g.mu.Lock()
	g.lastErr = msg
	g.mu.Unlock()
}
