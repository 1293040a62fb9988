package models

import "time"

// SessionLog is an append-only audit trail of USSD requests. It is written
// best-effort once per request, never read on the request path, and never
// expires. Session is the single mutable representation; this table carries
// the history concern on its own.
type SessionLog struct {
	ID            uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	SessionID     string    `json:"session_id" gorm:"index;type:varchar(100);not null"`
	PhoneNumber   string    `json:"phone_number" gorm:"index;type:varchar(14);not null"`
	MenuName      string    `json:"menu_name" gorm:"index;type:varchar(50)"`
	UserInput     string    `json:"user_input" gorm:"type:varchar(100)"`
	Text          string    `json:"text" gorm:"type:varchar(500)"` // full accumulated input
	Succeeded     bool      `json:"succeeded" gorm:"index"`
	StatusMessage string    `json:"status_message" gorm:"type:varchar(500)"`
	CreatedAt     time.Time `json:"created_at" gorm:"not null"`
}
