package session

import (
	"context"
	"encoding/json"
	"fmt"

	"icc-dashboard/internal/models"

	"github.com/google/uuid"
)

// AuthContext is the authentication state of one browser session, loaded
// from the store at the start of a request.
type AuthContext struct {
	SessionID    string
	User         *models.User
	AccessToken  string
	RefreshToken string
	PendingEmail string
	UserType     string
}

// Authenticated reports whether an access token is present.
func (a *AuthContext) Authenticated() bool {
	return a != nil && a.AccessToken != ""
}

// Role returns the cached user's role, or "" when no user is cached.
func (a *AuthContext) Role() string {
	if a == nil || a.User == nil {
		return ""
	}
	return a.User.Role
}

// Manager owns the lifecycle of AuthContexts: load, login, logout.
type Manager struct {
	store  Store
	broker *Broker
}

func NewManager(store Store, broker *Broker) *Manager {
	return &Manager{store: store, broker: broker}
}

func (m *Manager) Broker() *Broker {
	return m.broker
}

// NewSessionID returns a fresh random session id.
func NewSessionID() string {
	return uuid.NewString()
}

// Load reads the persisted session. A missing session yields an empty,
// unauthenticated context rather than an error.
func (m *Manager) Load(ctx context.Context, sid string) (*AuthContext, error) {
	values, err := m.store.GetAll(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	ac := &AuthContext{
		SessionID:    sid,
		AccessToken:  values[KeyAccessToken],
		RefreshToken: values[KeyRefreshToken],
		PendingEmail: values[KeyPendingEmail],
		UserType:     values[KeyUserType],
	}
	if raw := values[KeyCurrentUser]; raw != "" {
		var u models.User
		if err := json.Unmarshal([]byte(raw), &u); err == nil {
			ac.User = &u
		}
	}
	return ac, nil
}

// SaveLogin persists the user and both tokens and notifies open views.
func (m *Manager) SaveLogin(ctx context.Context, sid string, data *models.LoginData) error {
	raw, err := json.Marshal(data.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	err = m.store.Set(ctx, sid, map[string]string{
		KeyCurrentUser:  string(raw),
		KeyAccessToken:  data.AccessToken,
		KeyRefreshToken: data.RefreshToken,
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	user := data.User
	m.broker.Publish(Event{Type: EventLogin, SessionID: sid, User: &user})
	return nil
}

// StartLogin saves data under a fresh session id and retires previousSID, so
// a cookie handed out before sign-in never becomes an authenticated one.
// Views still listening on previousSID get the login event and reload with
// the new cookie.
func (m *Manager) StartLogin(ctx context.Context, previousSID string, data *models.LoginData) (string, error) {
	sid := NewSessionID()
	if err := m.SaveLogin(ctx, sid, data); err != nil {
		return "", err
	}
	if previousSID == "" || previousSID == sid {
		return sid, nil
	}
	if err := m.store.Clear(ctx, previousSID); err != nil {
		return "", fmt.Errorf("retire session: %w", err)
	}
	user := data.User
	m.broker.Publish(Event{Type: EventLogin, SessionID: previousSID, User: &user})
	return sid, nil
}

// UpdateUser replaces the cached user (after a profile edit).
func (m *Manager) UpdateUser(ctx context.Context, sid string, user *models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := m.store.Set(ctx, sid, map[string]string{KeyCurrentUser: string(raw)}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	m.broker.Publish(Event{Type: EventUser, SessionID: sid, User: user})
	return nil
}

// UpdateAccessToken stores a refreshed access token.
func (m *Manager) UpdateAccessToken(ctx context.Context, sid, token string) error {
	if err := m.store.Set(ctx, sid, map[string]string{KeyAccessToken: token}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// SetPendingVerification remembers who is mid-registration.
func (m *Manager) SetPendingVerification(ctx context.Context, sid, email, userType string) error {
	return m.store.Set(ctx, sid, map[string]string{
		KeyPendingEmail: email,
		KeyUserType:     userType,
	})
}

// ClearPendingVerification drops the registration keys once verified.
func (m *Manager) ClearPendingVerification(ctx context.Context, sid string) error {
	return m.store.Delete(ctx, sid, KeyPendingEmail, KeyUserType)
}

// Clear tears the session down and tells every open view it is gone.
func (m *Manager) Clear(ctx context.Context, sid, reason string) error {
	if err := m.store.Clear(ctx, sid); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	m.broker.Publish(Event{Type: EventLogout, SessionID: sid, Reason: reason})
	return nil
}

type ctxKey struct{}

// WithAuth stores the request's AuthContext in ctx.
func WithAuth(ctx context.Context, ac *AuthContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, ac)
}

// FromContext returns the AuthContext stored by WithAuth, if any.
func FromContext(ctx context.Context) (*AuthContext, bool) {
	ac, ok := ctx.Value(ctxKey{}).(*AuthContext)
	return ac, ok && ac != nil
}
