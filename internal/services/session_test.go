package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamstosho/GroChain-sub004/internal/models"
	"github.com/adamstosho/GroChain-sub004/internal/storage"
)

func TestSessionManagerTTL(t *testing.T) {
	sm := NewSessionManager(storage.NewMemoryStore())
	assert.Equal(t, 30*time.Minute, sm.TTL())

	t.Setenv("SESSION_TTL_MINUTES", "5")
	sm = NewSessionManager(storage.NewMemoryStore())
	assert.Equal(t, 5*time.Minute, sm.TTL())

	// Garbage values fall back to the default.
	t.Setenv("SESSION_TTL_MINUTES", "soon")
	sm = NewSessionManager(storage.NewMemoryStore())
	assert.Equal(t, 30*time.Minute, sm.TTL())
}

func TestGetOrCreateSession(t *testing.T) {
	store := storage.NewMemoryStore()
	sm := NewSessionManager(store)

	session, err := sm.GetOrCreateSession("AT-new", "08012345678")
	require.NoError(t, err)
	assert.Equal(t, models.MenuMain, session.CurrentMenu)
	assert.Equal(t, 0, session.Step)
	assert.True(t, session.IsActive)

	// Creation persists immediately.
	stored, err := store.GetSession("AT-new")
	require.NoError(t, err)
	assert.Equal(t, "08012345678", stored.PhoneNumber)

	// A second load returns the stored session rather than a fresh one.
	session.CurrentMenu = models.MenuHarvest
	require.NoError(t, sm.SaveSession(session))
	again, err := sm.GetOrCreateSession("AT-new", "08012345678")
	require.NoError(t, err)
	assert.Equal(t, models.MenuHarvest, again.CurrentMenu)
}

func TestIsStale(t *testing.T) {
	sm := NewSessionManager(storage.NewMemoryStore())

	fresh := &models.Session{IsActive: true, LastActivity: time.Now()}
	assert.False(t, sm.IsStale(fresh))

	old := &models.Session{IsActive: true, LastActivity: time.Now().Add(-31 * time.Minute)}
	assert.True(t, sm.IsStale(old))

	// Inactive sessions are never reported stale; they are already retired.
	retired := &models.Session{IsActive: false, LastActivity: time.Now().Add(-2 * time.Hour)}
	assert.False(t, sm.IsStale(retired))
}

func TestSweepExpiredSessions(t *testing.T) {
	store := storage.NewMemoryStore()
	sm := NewSessionManager(store)

	seed := func(id string, age time.Duration, active bool) {
		require.NoError(t, store.UpsertSession(&models.Session{
			SessionID:    id,
			CurrentMenu:  models.MenuMain,
			IsActive:     active,
			LastActivity: time.Now().Add(-age),
		}))
	}
	seed("fresh", time.Minute, true)
	seed("stale-1", time.Hour, true)
	seed("stale-2", 2*time.Hour, true)
	seed("retired", time.Hour, false)

	swept, err := sm.SweepExpiredSessions()
	require.NoError(t, err)
	assert.Equal(t, 2, swept)

	for id, wantActive := range map[string]bool{
		"fresh":   true,
		"stale-1": false,
		"stale-2": false,
		"retired": false,
	} {
		session, err := store.GetSession(id)
		require.NoError(t, err, id)
		assert.Equal(t, wantActive, session.IsActive, id)
	}

	// A second sweep finds nothing left.
	swept, err = sm.SweepExpiredSessions()
	require.NoError(t, err)
	assert.Equal(t, 0, swept)
}

func TestLockSessionSerializesPerSessionID(t *testing.T) {
	sm := NewSessionManager(storage.NewMemoryStore())

	const workers = 20
	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			unlock := sm.LockSession("AT-lock")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(t, workers, counter)

	// With every holder gone the entry must be dropped.
	sm.mu.Lock()
	remaining := len(sm.locks)
	sm.mu.Unlock()
	assert.Equal(t, 0, remaining)
}

func TestLockSessionEntriesAreReleased(t *testing.T) {
	sm := NewSessionManager(storage.NewMemoryStore())

	// Session IDs are single-use, so every finished call must leave the lock
	// map empty rather than retaining one mutex per ID ever seen.
	for i := 0; i < 10000; i++ {
		unlock := sm.LockSession(fmt.Sprintf("AT-lock-%d", i))
		unlock()
	}

	sm.mu.Lock()
	remaining := len(sm.locks)
	sm.mu.Unlock()
	assert.Equal(t, 0, remaining)
}

func TestSessionStats(t *testing.T) {
	store := storage.NewMemoryStore()
	sm := NewSessionManager(store)

	require.NoError(t, store.UpsertSession(&models.Session{
		SessionID: "s1", CurrentMenu: models.MenuMain, IsActive: true, LastActivity: time.Now(),
	}))
	require.NoError(t, store.UpsertSession(&models.Session{
		SessionID: "s2", CurrentMenu: models.MenuMain, IsActive: true, LastActivity: time.Now(),
	}))
	require.NoError(t, store.UpsertSession(&models.Session{
		SessionID: "s3", CurrentMenu: models.MenuHarvest, IsActive: true, LastActivity: time.Now(),
	}))
	require.NoError(t, store.UpsertSession(&models.Session{
		SessionID: "s4", CurrentMenu: models.MenuMain, IsActive: false, LastActivity: time.Now(),
	}))

	stats, err := sm.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.ActiveSessions)
	assert.Equal(t, 2, stats.SessionsByMenu[models.MenuMain])
	assert.Equal(t, 1, stats.SessionsByMenu[models.MenuHarvest])
	assert.Equal(t, 30, stats.TTLMinutes)
}
