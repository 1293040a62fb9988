package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adamstosho/GroChain-sub004/internal/models"
)

const sessionKeyPrefix = "grochain:ussd:session:"

// CachedStore layers a Redis cache over another Store for session reads.
// The inner store is the source of truth: every session mutation is written
// through to it first, then mirrored into the cache. A cache failure is
// logged and degrades to the inner store, never surfaced to the caller.
// All non-session operations delegate straight to the inner store.
type CachedStore struct {
	inner Store
	redis redis.Cmdable
	ttl   time.Duration
}

// NewCachedStore wraps a store with a Redis session cache. TTL should match
// the session inactivity window so stale entries age out on their own.
func NewCachedStore(inner Store, client redis.Cmdable, ttl time.Duration) *CachedStore {
	return &CachedStore{inner: inner, redis: client, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

// Session operations

func (c *CachedStore) GetSession(sessionID string) (*models.Session, error) {
	ctx := context.Background()

	raw, err := c.redis.Get(ctx, sessionKey(sessionID)).Result()
	if err == nil {
		var session models.Session
		if jsonErr := json.Unmarshal([]byte(raw), &session); jsonErr == nil {
			return &session, nil
		}
		// Unreadable cache entry, fall through to the database.
		c.redis.Del(ctx, sessionKey(sessionID))
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("⚠️  Redis read failed for session %s: %v", sessionID, err)
	}

	session, err := c.inner.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	c.cacheSession(session)
	return session, nil
}

func (c *CachedStore) UpsertSession(session *models.Session) error {
	// Write-through: database first, cache second.
	if err := c.inner.UpsertSession(session); err != nil {
		return err
	}
	c.cacheSession(session)
	return nil
}

func (c *CachedStore) SweepExpiredSessions(maxAge time.Duration) (int, error) {
	// The sweep only touches the database; cached copies of swept sessions
	// age out via TTL, and the session manager re-checks staleness on load.
	return c.inner.SweepExpiredSessions(maxAge)
}

func (c *CachedStore) GetActiveSessions() ([]*models.Session, error) {
	return c.inner.GetActiveSessions()
}

func (c *CachedStore) cacheSession(session *models.Session) {
	data, err := json.Marshal(session)
	if err != nil {
		return
	}
	if err := c.redis.Set(context.Background(), sessionKey(session.SessionID), data, c.ttl).Err(); err != nil {
		log.Printf("⚠️  Redis write failed for session %s: %v", session.SessionID, err)
	}
}

// Pass-through operations

func (c *CachedStore) AppendSessionLog(entry *models.SessionLog) error {
	return c.inner.AppendSessionLog(entry)
}

func (c *CachedStore) GetRecentSessionLogs(limit int) ([]*models.SessionLog, error) {
	return c.inner.GetRecentSessionLogs(limit)
}

func (c *CachedStore) SaveHarvest(record *models.HarvestRecord) error {
	return c.inner.SaveHarvest(record)
}

func (c *CachedStore) GetProductsByCategory(category string) ([]*models.Product, error) {
	return c.inner.GetProductsByCategory(category)
}

func (c *CachedStore) SaveCreditCheck(check *models.CreditCheck) error {
	return c.inner.SaveCreditCheck(check)
}

func (c *CachedStore) CreateSupportTicket(ticket *models.SupportTicket) error {
	return c.inner.CreateSupportTicket(ticket)
}
