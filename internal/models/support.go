package models

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

// SupportTicket is opened when a caller picks the support option.
type SupportTicket struct {
	gorm.Model
	TicketID    string `json:"ticket_id" gorm:"uniqueIndex;not null"`
	UserPhone   string `json:"user_phone" gorm:"index;not null"`
	Channel     string `json:"channel" gorm:"default:'ussd'"`
	Description string `json:"description"`
	Status      string `json:"status" gorm:"default:'open'"` // open, in_progress, resolved, closed
}

func (st *SupportTicket) BeforeCreate(tx *gorm.DB) error {
	if st.TicketID == "" {
		st.TicketID = "TK-" + uuid.NewString()[:8]
	}
	if st.Channel == "" {
		st.Channel = "ussd"
	}
	return nil
}
