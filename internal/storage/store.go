package storage

import (
	"errors"
	"time"

	"github.com/adamstosho/GroChain-sub004/internal/models"
)

// ErrSessionNotFound is returned when no session exists for a session ID.
var ErrSessionNotFound = errors.New("session not found")

var storeInstance Store

// SetStore sets the global store instance (call from main.go)
func SetStore(s Store) {
	storeInstance = s
}

// GetStore returns the global store instance
func GetStore() Store {
	return storeInstance
}

// Store defines the interface for storage operations
type Store interface {
	// Session operations
	GetSession(sessionID string) (*models.Session, error)
	UpsertSession(session *models.Session) error
	SweepExpiredSessions(maxAge time.Duration) (int, error)
	GetActiveSessions() ([]*models.Session, error)

	// Audit log operations
	AppendSessionLog(entry *models.SessionLog) error
	GetRecentSessionLogs(limit int) ([]*models.SessionLog, error)

	// Harvest operations
	SaveHarvest(record *models.HarvestRecord) error

	// Marketplace operations
	GetProductsByCategory(category string) ([]*models.Product, error)

	// Credit operations
	SaveCreditCheck(check *models.CreditCheck) error

	// Support operations
	CreateSupportTicket(ticket *models.SupportTicket) error
}
