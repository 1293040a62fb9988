package services

import (
	"fmt"
	"log"

	"github.com/adamstosho/GroChain-sub004/internal/models"
	"github.com/adamstosho/GroChain-sub004/internal/storage"
)

// SupportFlow terminates on its first step: it opens a ticket best-effort
// and hands out the support line.
type SupportFlow struct {
	store storage.Store
}

// NewSupportFlow creates the contact-support flow handler.
func NewSupportFlow(store storage.Store) *SupportFlow {
	return &SupportFlow{store: store}
}

func (f *SupportFlow) Name() string {
	return models.FlowSupport
}

func (f *SupportFlow) Handle(session *models.Session, tokens []string) (Reply, error) {
	ticket := &models.SupportTicket{
		UserPhone:   session.PhoneNumber,
		Description: "Support requested via USSD",
	}
	if err := f.store.CreateSupportTicket(ticket); err != nil {
		// The call is ending either way; log and fall back to the plain
		// support line without a reference.
		log.Printf("❌ Failed to create support ticket for session %s (%s): %v",
			session.SessionID, session.PhoneNumber, err)
		return Reply{Text: "Call us on 0800-476-2442 (0800-GROCHAIN).\nMon-Sat, 8am-6pm.", Close: true}, nil
	}

	text := fmt.Sprintf("Call us on 0800-476-2442 (0800-GROCHAIN).\nMon-Sat, 8am-6pm.\nYour ticket ref: %s", ticket.TicketID)
	return Reply{Text: text, Close: true}, nil
}
