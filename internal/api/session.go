package api

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/existflow/tempo/internal/logger"
)

// Session is the explicit authentication context handed to every component
// that talks to the backend. It has an explicit lifecycle: Begin on login,
// End on logout. Nothing here is ambient or global.
type Session struct {
	ServerURL string `json:"server_url"`
	Token     string `json:"token"`
	UserID    string `json:"user_id"`

	path      string
	mu        sync.Mutex
	onExpired []func()
}

// LoadSession reads the persisted session from ~/.tempo/session.json,
// falling back to a logged-out session pointed at the given server URL.
func LoadSession(serverURL string) (*Session, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	s := &Session{
		ServerURL: serverURL,
		path:      filepath.Join(home, ".tempo", "session.json"),
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return s, nil
	}
	if err := json.Unmarshal(data, s); err != nil {
		logger.Warn("Ignoring unreadable session file", logger.F("error", err))
		return s, nil
	}
	if serverURL != "" {
		s.ServerURL = serverURL
	}
	return s, nil
}

func (s *Session) save() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// LoggedIn returns true if the session carries a token
func (s *Session) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Token != ""
}

// Begin stores credentials after a successful login
func (s *Session) Begin(token, userID string) error {
	s.mu.Lock()
	s.Token = token
	s.UserID = userID
	s.mu.Unlock()
	return s.save()
}

// End tears the session down on logout
func (s *Session) End() error {
	s.mu.Lock()
	s.Token = ""
	s.UserID = ""
	s.mu.Unlock()
	return s.save()
}

// OnExpired registers an observer notified when the backend rejects the
// session's credentials. The HTTP layer publishes to these observers in
// place of a global logout event.
func (s *Session) OnExpired(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpired = append(s.onExpired, fn)
}

// expire clears credentials and notifies observers
func (s *Session) expire() {
	s.mu.Lock()
	s.Token = ""
	s.UserID = ""
	observers := append([]func(){}, s.onExpired...)
	s.mu.Unlock()

	logger.Info("Session expired, notifying observers", logger.F("observers", len(observers)))
	_ = s.save()
	for _, fn := range observers {
		fn()
	}
}

// token returns the current token under the lock
func (s *Session) token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Token
}
