// Package session tracks per-user dashboard sessions. Each session
// carries its own working directory, replacing the process-wide
// current-directory state a shared UI would otherwise fight over.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/filedash/filedash/internal/fs"
	"github.com/filedash/filedash/internal/infrastructure/monitoring"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a session ID is unknown.
var ErrNotFound = errors.New("session not found")

// Filesystem is the slice of the fs service the manager needs to
// validate working directories.
type Filesystem interface {
	Stat(path string) (*fs.Info, error)
}

// Session is one user's dashboard state. Sessions live in memory only;
// the filesystem itself is the only persistent store.
type Session struct {
	ID         string    `json:"id"`
	WorkingDir string    `json:"working_dir"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
}

// Manager creates and tracks sessions.
type Manager struct {
	filesystem Filesystem
	defaultDir string
	metrics    *monitoring.Metrics

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a session manager whose sessions start in
// defaultDir.
func NewManager(filesystem Filesystem, defaultDir string) *Manager {
	return &Manager{
		filesystem: filesystem,
		defaultDir: defaultDir,
		sessions:   make(map[string]*Session),
	}
}

// WithMetrics attaches a metrics collector.
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Create starts a new session rooted at the default directory.
func (m *Manager) Create() *Session {
	now := time.Now()
	s := &Session{
		ID:         uuid.NewString(),
		WorkingDir: m.defaultDir,
		CreatedAt:  now,
		LastActive: now,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	count := len(m.sessions)
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.IncSessionsCreated()
		m.metrics.SetSessionsActive(count)
	}
	return s
}

// Get returns a copy of the session with the given ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s
	return &copied, nil
}

// SetWorkingDir changes a session's working directory after verifying
// the path is a listable directory.
func (m *Manager) SetWorkingDir(id, dir string) (*Session, error) {
	info, err := m.filesystem.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir {
		return nil, &fs.AccessError{Path: dir, Err: errors.New("not a directory")}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.WorkingDir = info.Path
	s.LastActive = time.Now()
	copied := *s
	return &copied, nil
}

// Delete removes a session. It reports whether the session existed.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	count := len(m.sessions)
	m.mu.Unlock()

	if ok && m.metrics != nil {
		m.metrics.SetSessionsActive(count)
	}
	return ok
}

// Stats returns manager statistics.
func (m *Manager) Stats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"active_sessions": len(m.sessions),
		"default_dir":     m.defaultDir,
	}
}
