package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamstosho/GroChain-sub004/internal/models"
)

func TestMemoryStoreSessionRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.GetSession("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	session := &models.Session{
		SessionID:    "AT-mem-1",
		PhoneNumber:  "08012345678",
		CurrentMenu:  models.MenuMain,
		IsActive:     true,
		LastActivity: time.Now(),
	}
	require.NoError(t, store.UpsertSession(session))

	loaded, err := store.GetSession("AT-mem-1")
	require.NoError(t, err)
	assert.Equal(t, "08012345678", loaded.PhoneNumber)

	// The store hands out copies: mutating a loaded session must not leak
	// into the stored one until it is upserted again.
	loaded.CurrentMenu = models.MenuHarvest
	again, err := store.GetSession("AT-mem-1")
	require.NoError(t, err)
	assert.Equal(t, models.MenuMain, again.CurrentMenu)

	require.NoError(t, store.UpsertSession(loaded))
	again, err = store.GetSession("AT-mem-1")
	require.NoError(t, err)
	assert.Equal(t, models.MenuHarvest, again.CurrentMenu)
}

func TestMemoryStoreRejectsEmptySessionID(t *testing.T) {
	store := NewMemoryStore()
	assert.Error(t, store.UpsertSession(&models.Session{}))
}

func TestMemoryStoreSweep(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.UpsertSession(&models.Session{
		SessionID: "fresh", IsActive: true, LastActivity: time.Now(),
	}))
	require.NoError(t, store.UpsertSession(&models.Session{
		SessionID: "stale", IsActive: true, LastActivity: time.Now().Add(-time.Hour),
	}))

	swept, err := store.SweepExpiredSessions(30 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, swept)

	stale, err := store.GetSession("stale")
	require.NoError(t, err)
	assert.False(t, stale.IsActive)

	active, err := store.GetActiveSessions()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "fresh", active[0].SessionID)
}

func TestMemoryStoreSessionLogs(t *testing.T) {
	store := NewMemoryStore()

	for _, input := range []string{"", "1", "1*1"} {
		require.NoError(t, store.AppendSessionLog(&models.SessionLog{
			SessionID: "AT-logs",
			Text:      input,
			Succeeded: true,
		}))
	}

	logs, err := store.GetRecentSessionLogs(2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	// Most recent first.
	assert.Equal(t, "1*1", logs[0].Text)
	assert.Equal(t, "1", logs[1].Text)

	all, err := store.GetRecentSessionLogs(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemoryStoreProductsSeeded(t *testing.T) {
	store := NewMemoryStore()

	for _, category := range []string{models.CategorySeeds, models.CategoryFertilizer, models.CategoryEquipment} {
		products, err := store.GetProductsByCategory(category)
		require.NoError(t, err)
		assert.NotEmpty(t, products, category)
		for _, p := range products {
			assert.Equal(t, category, p.Category)
			assert.True(t, p.InStock)
		}
	}

	none, err := store.GetProductsByCategory("livestock")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryStoreRecordDefaults(t *testing.T) {
	store := NewMemoryStore()

	harvest := &models.HarvestRecord{PhoneNumber: "08012345678", Crop: "Maize", QuantityKg: 500}
	require.NoError(t, store.SaveHarvest(harvest))
	assert.NotEmpty(t, harvest.ReferenceID)
	assert.Equal(t, "ussd", harvest.Channel)

	check := &models.CreditCheck{PhoneNumber: "08012345678", Outcome: models.VerificationVerified}
	require.NoError(t, store.SaveCreditCheck(check))
	assert.NotEmpty(t, check.ReferenceID)

	ticket := &models.SupportTicket{UserPhone: "08012345678"}
	require.NoError(t, store.CreateSupportTicket(ticket))
	assert.NotEmpty(t, ticket.TicketID)
}
