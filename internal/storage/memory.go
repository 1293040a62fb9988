package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/adamstosho/GroChain-sub004/internal/models"
)

// MemoryStore holds all data in memory, used for tests and local development.
type MemoryStore struct {
	sessions map[string]*models.Session
	logs     []*models.SessionLog
	harvests map[string]*models.HarvestRecord
	products []*models.Product
	credits  map[string]*models.CreditCheck
	tickets  map[string]*models.SupportTicket

	// Mutexes for thread safety
	sessionMu sync.RWMutex
	logMu     sync.RWMutex
	harvestMu sync.RWMutex
	creditMu  sync.RWMutex
	ticketMu  sync.RWMutex

	logCounter uint
}

// NewMemoryStore creates a new in-memory storage, pre-seeded with the
// default product catalog.
func NewMemoryStore() *MemoryStore {
	catalog := models.DefaultProducts()
	products := make([]*models.Product, 0, len(catalog))
	for i := range catalog {
		products = append(products, &catalog[i])
	}

	return &MemoryStore{
		sessions: make(map[string]*models.Session),
		harvests: make(map[string]*models.HarvestRecord),
		products: products,
		credits:  make(map[string]*models.CreditCheck),
		tickets:  make(map[string]*models.SupportTicket),
	}
}

// Session operations

func (m *MemoryStore) GetSession(sessionID string) (*models.Session, error) {
	m.sessionMu.RLock()
	defer m.sessionMu.RUnlock()

	session, exists := m.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}

	copied := *session
	return &copied, nil
}

func (m *MemoryStore) UpsertSession(session *models.Session) error {
	if session.SessionID == "" {
		return fmt.Errorf("session has no session ID")
	}

	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()

	copied := *session
	m.sessions[session.SessionID] = &copied
	return nil
}

func (m *MemoryStore) SweepExpiredSessions(maxAge time.Duration) (int, error) {
	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	swept := 0
	for _, session := range m.sessions {
		if session.IsActive && session.LastActivity.Before(cutoff) {
			session.IsActive = false
			swept++
		}
	}
	return swept, nil
}

func (m *MemoryStore) GetActiveSessions() ([]*models.Session, error) {
	m.sessionMu.RLock()
	defer m.sessionMu.RUnlock()

	var active []*models.Session
	for _, session := range m.sessions {
		if session.IsActive {
			copied := *session
			active = append(active, &copied)
		}
	}
	return active, nil
}

// Audit log operations

func (m *MemoryStore) AppendSessionLog(entry *models.SessionLog) error {
	m.logMu.Lock()
	defer m.logMu.Unlock()

	m.logCounter++
	entry.ID = m.logCounter
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	m.logs = append(m.logs, entry)
	return nil
}

func (m *MemoryStore) GetRecentSessionLogs(limit int) ([]*models.SessionLog, error) {
	m.logMu.RLock()
	defer m.logMu.RUnlock()

	if limit <= 0 || limit > len(m.logs) {
		limit = len(m.logs)
	}
	recent := make([]*models.SessionLog, limit)
	copy(recent, m.logs[len(m.logs)-limit:])
	sort.Slice(recent, func(i, j int) bool { return recent[i].ID > recent[j].ID })
	return recent, nil
}

// Harvest operations

func (m *MemoryStore) SaveHarvest(record *models.HarvestRecord) error {
	m.harvestMu.Lock()
	defer m.harvestMu.Unlock()

	if record.ReferenceID == "" {
		record.ReferenceID = fmt.Sprintf("HV%d", time.Now().UnixNano())
	}
	if record.Channel == "" {
		record.Channel = "ussd"
	}
	record.CreatedAt = time.Now()
	m.harvests[record.ReferenceID] = record
	return nil
}

// Marketplace operations

func (m *MemoryStore) GetProductsByCategory(category string) ([]*models.Product, error) {
	var results []*models.Product
	for _, product := range m.products {
		if product.Category == category && product.InStock {
			results = append(results, product)
		}
	}
	return results, nil
}

// Credit operations

func (m *MemoryStore) SaveCreditCheck(check *models.CreditCheck) error {
	m.creditMu.Lock()
	defer m.creditMu.Unlock()

	if check.ReferenceID == "" {
		check.ReferenceID = fmt.Sprintf("CR%d", time.Now().UnixNano())
	}
	check.CreatedAt = time.Now()
	m.credits[check.ReferenceID] = check
	return nil
}

// Support operations

func (m *MemoryStore) CreateSupportTicket(ticket *models.SupportTicket) error {
	m.ticketMu.Lock()
	defer m.ticketMu.Unlock()

	if ticket.TicketID == "" {
		ticket.TicketID = fmt.Sprintf("TK%d", time.Now().UnixNano())
	}
	ticket.CreatedAt = time.Now()
	m.tickets[ticket.TicketID] = ticket
	return nil
}
