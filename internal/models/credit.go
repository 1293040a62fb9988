package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Identity verification outcomes for a BVN lookup.
const (
	VerificationVerified = "verified"
	VerificationPending  = "pending"
	VerificationManual   = "manual_review"
)

// CreditCheck records one credit score lookup initiated over USSD. The BVN
// is stored masked; only the last four digits are kept.
type CreditCheck struct {
	gorm.Model
	ReferenceID string `json:"reference_id" gorm:"uniqueIndex"`
	PhoneNumber string `json:"phone_number" gorm:"index;not null"`
	MaskedBVN   string `json:"masked_bvn"`
	Outcome     string `json:"outcome"` // verified, pending, manual_review
	Score       int    `json:"score"`   // 0 unless verified
}

func (c *CreditCheck) BeforeCreate(tx *gorm.DB) error {
	if c.ReferenceID == "" {
		c.ReferenceID = fmt.Sprintf("CR%d", time.Now().UnixNano())
	}
	return nil
}
