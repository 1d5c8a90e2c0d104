// Package live provides the WebSocket channel for driving interviews
// interactively.
package live

import (
	"log/slog"
	"sync"

	"github.com/coder/websocket"
)

// Manager tracks the active WebSocket connection per interview session.
type Manager struct {
	mu     sync.RWMutex
	active map[string]*websocket.Conn
}

// NewManager creates a new connection manager.
func NewManager() *Manager {
	return &Manager{
		active: make(map[string]*websocket.Conn),
	}
}

// GetActive returns the active connection for a session.
func (m *Manager) GetActive(sessionID string) *websocket.Conn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active[sessionID]
}

// Register adds a new WebSocket connection for a session. A session holds at
// most one connection; registering a second one closes the first.
func (m *Manager) Register(sessionID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, exists := m.active[sessionID]; exists && existing != conn {
		_ = existing.Close(websocket.StatusNormalClosure, "connection replaced")
	}

	m.active[sessionID] = conn
	slog.Info("Live connection registered", "session_id", sessionID)
}

// Unregister removes a WebSocket connection for a session. A connection that
// was already replaced is left alone.
func (m *Manager) Unregister(sessionID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if current, exists := m.active[sessionID]; exists && current == conn {
		delete(m.active, sessionID)
		slog.Info("Live connection unregistered", "session_id", sessionID)
	}
}

// CloseSession forcefully terminates the active connection for a session.
func (m *Manager) CloseSession(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conn, ok := m.active[sessionID]
	if !ok {
		return
	}

	_ = conn.Close(websocket.StatusNormalClosure, "session closed")
	delete(m.active, sessionID)
	slog.Info("Live connection closed", "session_id", sessionID)
}
