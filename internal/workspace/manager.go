package workspace

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Manager keys live workspaces by session token. A workspace is created on
// first touch, kept while the operator keeps using it and evicted after
// the idle TTL so abandoned sessions do not pile up.
type Manager struct {
	logger  *slog.Logger
	factory func() *Workspace
	ttl     time.Duration

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	ws       *Workspace
	lastSeen time.Time
}

func NewManager(logger *slog.Logger, factory func() *Workspace, ttl time.Duration) *Manager {
	return &Manager{
		logger:   logger,
		factory:  factory,
		ttl:      ttl,
		sessions: make(map[string]*session),
	}
}

// Acquire returns the workspace for a token, creating it on first use.
// Touching a workspace renews its TTL.
func (m *Manager) Acquire(token string) *Workspace {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		s = &session{ws: m.factory()}
		m.sessions[token] = s
	}
	s.lastSeen = time.Now()
	return s.ws
}

// Drop discards a token's workspace, if any.
func (m *Manager) Drop(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[token]; ok {
		s.ws.Close()
		delete(m.sessions, token)
	}
}

// Count reports the number of live workspaces.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep evicts workspaces idle past the TTL and reports how many went.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	evicted := 0
	for token, s := range m.sessions {
		if now.Sub(s.lastSeen) > m.ttl {
			s.ws.Close()
			delete(m.sessions, token)
			evicted++
		}
	}
	return evicted
}

// Janitor sweeps on an interval until the context is cancelled.
func (m *Manager) Janitor(ctx context.Context, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if n := m.Sweep(now); n > 0 {
					m.logger.Info("evicted idle workspaces", slog.Int("count", n))
				}
			}
		}
	}()
}
