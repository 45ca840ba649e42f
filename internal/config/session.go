package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Session is the narrow the sidebar restores on the next launch.
type Session struct {
	// StreamName is the stream that was narrowed to.
	StreamName string `yaml:"stream,omitempty"`
	// TopicName is the topic that was narrowed to, if any.
	TopicName string `yaml:"topic,omitempty"`
	// UpdatedAt is when the session was last modified.
	UpdatedAt time.Time `yaml:"updated_at,omitempty"`
}

// IsEmpty returns true if no narrow is remembered.
func (s *Session) IsEmpty() bool {
	return s.StreamName == ""
}

// SetNarrow remembers a stream and optional topic.
func (s *Session) SetNarrow(stream, topic string) {
	s.StreamName = stream
	s.TopicName = topic
	s.UpdatedAt = time.Now()
}

// Clear forgets the narrow.
func (s *Session) Clear() {
	s.StreamName = ""
	s.TopicName = ""
	s.UpdatedAt = time.Now()
}

// String returns a human-readable representation of the session.
func (s *Session) String() string {
	if s.IsEmpty() {
		return "(no narrow)"
	}
	if s.TopicName == "" {
		return fmt.Sprintf("stream:%s", s.StreamName)
	}
	return fmt.Sprintf("stream:%s topic:%s", s.StreamName, s.TopicName)
}

// SessionStore manages loading and saving the session file.
type SessionStore struct {
	path string
	mu   sync.RWMutex
}

// NewSessionStore creates a new session store.
// If path is empty, uses ~/.config/streambar/session.yaml.
func NewSessionStore(path string) *SessionStore {
	if path == "" {
		homeDir, _ := os.UserHomeDir()
		path = filepath.Join(homeDir, ".config", "streambar", "session.yaml")
	}
	return &SessionStore{path: path}
}

// SessionStore returns the store rooted in the configured config directory.
func (c *Config) SessionStore() *SessionStore {
	if c.Global.ConfigDir == "" {
		return NewSessionStore("")
	}
	return NewSessionStore(filepath.Join(c.Global.ConfigDir, "session.yaml"))
}

// Path returns the session file path.
func (s *SessionStore) Path() string {
	return s.path
}

// Load reads the session from disk.
// Returns an empty session if the file doesn't exist.
func (s *SessionStore) Load() (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session := &Session{}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return session, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	if err := yaml.Unmarshal(data, session); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	return session, nil
}

// Save writes the session to disk.
func (s *SessionStore) Save(session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := yaml.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Clear removes the session file.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
