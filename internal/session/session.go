// Package session holds the client's authentication state: the current user
// identity and bearer token as one atomic pair. All reads and writes go
// through the Manager, which persists the pair through a backing store and
// notifies subscribers on change.
package session

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tubecli/internal/api"
	"github.com/desertthunder/tubecli/internal/models"
	"github.com/desertthunder/tubecli/internal/shared"
)

// Store persists the session pair. Implemented by repositories.SessionRepository.
type Store interface {
	Create(session *models.Session) error
	Latest() (*models.Session, error)
	Purge() error
}

// Change describes a session transition delivered to subscribers.
type Change struct {
	User          api.User
	Authenticated bool
}

// Manager is the single read/write choke point for the user and token pair.
// The pair is replaced or cleared atomically; no caller can observe a user
// without its token or vice versa.
type Manager struct {
	mu     sync.RWMutex
	user   api.User
	token  string
	store  Store
	subs   []chan Change
	logger *log.Logger
}

// NewManager creates a manager backed by the given store.
func NewManager(store Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Manager{store: store, logger: logger}
}

// Load restores the most recently persisted session, if any. A missing
// session is not an error; the manager simply starts unauthenticated.
func (m *Manager) Load() error {
	if m.store == nil {
		return nil
	}

	saved, err := m.store.Latest()
	if errors.Is(err, shared.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.user = api.User{
		UserID:   saved.UserID(),
		Username: saved.Username(),
		Avatar:   saved.Avatar(),
	}
	m.token = saved.Token()
	m.mu.Unlock()

	m.logger.Debug("restored session", "user", saved.Username())
	m.notify()
	return nil
}

// Current returns the signed-in user, or false when unauthenticated.
func (m *Manager) Current() (api.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user, m.token != ""
}

// Token returns the bearer token, or false when unauthenticated.
func (m *Manager) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.token != ""
}

// Authenticated reports whether a session pair is present.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token != ""
}

// Set replaces the session pair and persists it. Any previously stored
// session is purged first so the new pair is the only live row.
func (m *Manager) Set(user api.User, token string) error {
	if m.store != nil {
		if err := m.store.Purge(); err != nil {
			return err
		}
		record := models.NewSession(0, user.UserID, user.Username, user.Avatar, token)
		if err := m.store.Create(record); err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.user = user
	m.token = token
	m.mu.Unlock()

	m.logger.Debug("session set", "user", user.Username)
	m.notify()
	return nil
}

// Clear drops the pair from memory and from the store.
func (m *Manager) Clear() error {
	if m.store != nil {
		if err := m.store.Purge(); err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.user = api.User{}
	m.token = ""
	m.mu.Unlock()

	m.logger.Debug("session cleared")
	m.notify()
	return nil
}

// Subscribe returns a channel that receives a Change after every Set, Clear,
// or successful Load. The channel is buffered; a slow subscriber drops
// intermediate changes rather than blocking writers.
func (m *Manager) Subscribe() <-chan Change {
	ch := make(chan Change, 4)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()
	return ch
}

// TokenSource adapts the manager for the API client.
func (m *Manager) TokenSource() api.TokenSource {
	return func() string {
		token, _ := m.Token()
		return token
	}
}

func (m *Manager) notify() {
	m.mu.RLock()
	change := Change{User: m.user, Authenticated: m.token != ""}
	subs := m.subs
	m.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- change:
		default:
		}
	}
}
