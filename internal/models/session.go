package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Menu node identifiers. CurrentMenu always holds one of these; anything else
// is treated as MenuMain.
const (
	MenuMain           = "main"
	MenuHarvest        = "harvest"
	MenuLogHarvest     = "log_harvest"
	MenuBrowseProducts = "browse_products"
	MenuCheckCredit    = "check_credit"
	MenuSupport        = "contact_support"
)

// Flow families, used to discriminate the FlowState union.
const (
	FlowHarvest = "harvest"
	FlowBrowse  = "browse"
	FlowCredit  = "credit"
	FlowSupport = "support"
)

// Session tracks the server-side state for one ongoing USSD call, keyed by
// the aggregator-issued session ID. Exactly one row exists per SessionID.
type Session struct {
	gorm.Model
	SessionID    string    `json:"session_id" gorm:"uniqueIndex;not null"`
	PhoneNumber  string    `json:"phone_number" gorm:"index"`
	CurrentMenu  string    `json:"current_menu"`
	Step         int       `json:"step"`
	FlowData     string    `json:"flow_data"` // JSON-encoded FlowState
	LastInput    string    `json:"last_input"`
	LastResponse string    `json:"last_response"`
	LastClose    bool      `json:"last_close"`
	LastActivity time.Time `json:"last_activity"`
	IsActive     bool      `json:"is_active"`
}

// FlowState is the typed accumulator for multi-step flows. At most one draft
// is populated, discriminated by Flow. EntryStep records the session step at
// which the flow was entered, so handlers see tokens relative to entry.
type FlowState struct {
	Flow      string        `json:"flow,omitempty"`
	EntryStep int           `json:"entry_step,omitempty"`
	Harvest   *HarvestDraft `json:"harvest,omitempty"`
	Browse    *BrowseDraft  `json:"browse,omitempty"`
	Credit    *CreditDraft  `json:"credit,omitempty"`
}

// HarvestDraft collects harvest-logging fields across steps. Empty string
// means the field has not been captured yet. Quantity is validated numeric
// but kept verbatim so the confirmation echoes exactly what was typed.
type HarvestDraft struct {
	Crop     string `json:"crop,omitempty"`
	Quantity string `json:"quantity,omitempty"`
	Date     string `json:"date,omitempty"` // DD/MM/YYYY
}

// BrowseDraft collects product-browsing selections.
type BrowseDraft struct {
	Category string `json:"category,omitempty"`
}

// CreditDraft collects credit-check fields.
type CreditDraft struct {
	BVN string `json:"bvn,omitempty"`
}

// Flow decodes the stored FlowState. An empty or corrupt column decodes to
// the zero FlowState (no flow in progress).
func (s *Session) Flow() FlowState {
	var fs FlowState
	if s.FlowData == "" {
		return fs
	}
	if err := json.Unmarshal([]byte(s.FlowData), &fs); err != nil {
		return FlowState{}
	}
	return fs
}

// SetFlow encodes and stores the flow state.
func (s *Session) SetFlow(fs FlowState) {
	data, err := json.Marshal(fs)
	if err != nil {
		s.FlowData = ""
		return
	}
	s.FlowData = string(data)
}

// ClearFlow drops any in-progress flow state.
func (s *Session) ClearFlow() {
	s.FlowData = ""
}

// Touch updates the activity timestamp that drives expiry.
func (s *Session) Touch() {
	s.LastActivity = time.Now()
}
