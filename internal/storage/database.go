package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adamstosho/GroChain-sub004/internal/models"
)

// DatabaseStore persists everything through GORM with PostgreSQL as the
// source of truth.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a database-backed store.
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// Session operations

func (d *DatabaseStore) GetSession(sessionID string) (*models.Session, error) {
	var session models.Session
	err := d.db.Where("session_id = ?", sessionID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (d *DatabaseStore) UpsertSession(session *models.Session) error {
	return d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		UpdateAll: true,
	}).Create(session).Error
}

func (d *DatabaseStore) SweepExpiredSessions(maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	result := d.db.Model(&models.Session{}).
		Where("is_active = ? AND last_activity < ?", true, cutoff).
		Update("is_active", false)
	return int(result.RowsAffected), result.Error
}

func (d *DatabaseStore) GetActiveSessions() ([]*models.Session, error) {
	var sessions []*models.Session
	err := d.db.Where("is_active = ?", true).Find(&sessions).Error
	return sessions, err
}

// Audit log operations

func (d *DatabaseStore) AppendSessionLog(entry *models.SessionLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return d.db.Create(entry).Error
}

func (d *DatabaseStore) GetRecentSessionLogs(limit int) ([]*models.SessionLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []*models.SessionLog
	err := d.db.Order("id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

// Harvest operations

func (d *DatabaseStore) SaveHarvest(record *models.HarvestRecord) error {
	return d.db.Create(record).Error
}

// Marketplace operations

func (d *DatabaseStore) GetProductsByCategory(category string) ([]*models.Product, error) {
	var products []*models.Product
	err := d.db.Where("category = ? AND in_stock = ?", category, true).
		Order("product_id").Find(&products).Error
	return products, err
}

// Credit operations

func (d *DatabaseStore) SaveCreditCheck(check *models.CreditCheck) error {
	return d.db.Create(check).Error
}

// Support operations

func (d *DatabaseStore) CreateSupportTicket(ticket *models.SupportTicket) error {
	return d.db.Create(ticket).Error
}

// SeedProducts inserts the default catalog, skipping rows that already exist.
func (d *DatabaseStore) SeedProducts() error {
	for _, product := range models.DefaultProducts() {
		err := d.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoNothing: true,
		}).Create(&product).Error
		if err != nil {
			return err
		}
	}
	return nil
}
