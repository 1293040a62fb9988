package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// HarvestRecord is a completed harvest log captured over USSD.
type HarvestRecord struct {
	gorm.Model
	ReferenceID string `json:"reference_id" gorm:"uniqueIndex"`
	PhoneNumber string `json:"phone_number" gorm:"index;not null"`
	Crop        string `json:"crop"`
	QuantityKg  int    `json:"quantity_kg"`
	HarvestDate string `json:"harvest_date"` // DD/MM/YYYY as entered
	Channel     string `json:"channel" gorm:"default:'ussd'"`
}

func (h *HarvestRecord) BeforeCreate(tx *gorm.DB) error {
	if h.ReferenceID == "" {
		h.ReferenceID = fmt.Sprintf("HV%d", time.Now().UnixNano())
	}
	if h.Channel == "" {
		h.Channel = "ussd"
	}
	return nil
}
