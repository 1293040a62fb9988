package services

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/adamstosho/GroChain-sub004/internal/models"
	"github.com/adamstosho/GroChain-sub004/internal/storage"
)

const defaultSessionTTLMinutes = 30

// SessionManager owns session load/persist and serializes access per
// session ID: the store is the only shared mutable resource, and two
// concurrent retries for the same call must not race a read-modify-write.
type SessionManager struct {
	store      storage.Store
	mu         sync.Mutex
	locks      map[string]*sessionLock
	sessionTTL time.Duration
}

// sessionLock is the per-session mutex plus a count of current holders and
// waiters, so the entry can be dropped once the last caller releases it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// Singleton instance
var (
	sessionManagerInstance *SessionManager
	sessionManagerOnce     sync.Once
)

// NewSessionManager creates a new session manager. The inactivity TTL comes
// from SESSION_TTL_MINUTES, defaulting to 30 minutes.
func NewSessionManager(store storage.Store) *SessionManager {
	ttl := defaultSessionTTLMinutes
	if raw := os.Getenv("SESSION_TTL_MINUTES"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			ttl = parsed
		}
	}

	return &SessionManager{
		store:      store,
		locks:      make(map[string]*sessionLock),
		sessionTTL: time.Duration(ttl) * time.Minute,
	}
}

// GetSessionManager returns the singleton session manager instance
func GetSessionManager() *SessionManager {
	sessionManagerOnce.Do(func() {
		if sessionManagerInstance == nil {
			log.Println("Warning: SessionManager not initialized. Creating new instance.")
			sessionManagerInstance = NewSessionManager(storage.GetStore())
		}
	})
	return sessionManagerInstance
}

// SetSessionManager sets the global session manager instance (call from main.go)
func SetSessionManager(sm *SessionManager) {
	sessionManagerInstance = sm
}

// TTL returns the inactivity window after which a session expires.
func (sm *SessionManager) TTL() time.Duration {
	return sm.sessionTTL
}

// LockSession acquires the per-session mutex and returns its unlock func.
// Entries are refcounted and removed when the last holder releases, so the
// map only tracks in-flight requests: session IDs are single-use, and an
// entry per ID ever seen would grow without bound.
func (sm *SessionManager) LockSession(sessionID string) func() {
	sm.mu.Lock()
	entry, exists := sm.locks[sessionID]
	if !exists {
		entry = &sessionLock{}
		sm.locks[sessionID] = entry
	}
	entry.refs++
	sm.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		sm.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(sm.locks, sessionID)
		}
		sm.mu.Unlock()
	}
}

// GetOrCreateSession loads the session for a session ID, creating a fresh
// one (step 0, main menu, active) if none exists.
func (sm *SessionManager) GetOrCreateSession(sessionID, phoneNumber string) (*models.Session, error) {
	session, err := sm.store.GetSession(sessionID)
	if err == nil {
		return session, nil
	}
	if err != storage.ErrSessionNotFound {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}

	session = &models.Session{
		SessionID:    sessionID,
		PhoneNumber:  phoneNumber,
		CurrentMenu:  models.MenuMain,
		Step:         0,
		IsActive:     true,
		LastActivity: time.Now(),
	}
	if err := sm.store.UpsertSession(session); err != nil {
		return nil, fmt.Errorf("create session %s: %w", sessionID, err)
	}

	log.Printf("📞 Session created for %s (%s)", phoneNumber, sessionID)
	return session, nil
}

// SaveSession writes the session through to the store.
func (sm *SessionManager) SaveSession(session *models.Session) error {
	return sm.store.UpsertSession(session)
}

// IsStale reports whether an active session has outlived the inactivity
// window. The background sweep normally catches these, but a cached copy can
// outrun the sweep, so the request path re-checks on load.
func (sm *SessionManager) IsStale(session *models.Session) bool {
	return session.IsActive && time.Since(session.LastActivity) > sm.sessionTTL
}

// SweepExpiredSessions marks stale active sessions inactive and returns how
// many were swept.
func (sm *SessionManager) SweepExpiredSessions() (int, error) {
	return sm.store.SweepExpiredSessions(sm.sessionTTL)
}

// SessionStats provides session statistics for the admin API.
type SessionStats struct {
	ActiveSessions int            `json:"active_sessions"`
	SessionsByMenu map[string]int `json:"sessions_by_menu"`
	TTLMinutes     int            `json:"ttl_minutes"`
}

// Stats returns current session statistics.
func (sm *SessionManager) Stats() (*SessionStats, error) {
	sessions, err := sm.store.GetActiveSessions()
	if err != nil {
		return nil, err
	}

	stats := &SessionStats{
		ActiveSessions: len(sessions),
		SessionsByMenu: make(map[string]int),
		TTLMinutes:     int(sm.sessionTTL.Minutes()),
	}
	for _, session := range sessions {
		stats.SessionsByMenu[session.CurrentMenu]++
	}
	return stats, nil
}
