package services

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/adamstosho/GroChain-sub004/internal/models"
	"github.com/adamstosho/GroChain-sub004/internal/storage"
)

const harvestDateLayout = "02/01/2006"

// HarvestFlow collects crop type, quantity and date, then persists the
// completed record and terminates the session.
type HarvestFlow struct {
	store storage.Store
}

// NewHarvestFlow creates the harvest-logging flow handler.
func NewHarvestFlow(store storage.Store) *HarvestFlow {
	return &HarvestFlow{store: store}
}

func (f *HarvestFlow) Name() string {
	return models.FlowHarvest
}

func (f *HarvestFlow) Handle(session *models.Session, tokens []string) (Reply, error) {
	fs := session.Flow()
	if fs.Harvest == nil {
		fs.Harvest = &models.HarvestDraft{}
	}
	draft := fs.Harvest

	if len(tokens) == 0 {
		session.SetFlow(fs)
		return Reply{Text: "Enter crop type (e.g. Maize):"}, nil
	}

	input := lastToken(tokens)

	// The draft, not the token count, decides which field is next: a token
	// that failed validation earlier has shifted the count but not the draft.
	switch {
	case draft.Crop == "":
		if input == "" || len(input) > 40 {
			return Reply{Text: "Crop type cannot be empty.\nEnter crop type (e.g. Maize):"}, nil
		}
		draft.Crop = input
		session.SetFlow(fs)
		return Reply{Text: "Enter quantity in kg:"}, nil

	case draft.Quantity == "":
		qty, err := strconv.Atoi(input)
		if err != nil || qty <= 0 {
			return Reply{Text: "Quantity must be a whole number of kg.\nEnter quantity in kg:"}, nil
		}
		draft.Quantity = input
		session.SetFlow(fs)
		return Reply{Text: "Enter harvest date (DD/MM/YYYY):"}, nil

	default:
		if _, err := time.Parse(harvestDateLayout, input); err != nil {
			return Reply{Text: "Date must be DD/MM/YYYY (e.g. 15/08/2024).\nEnter harvest date (DD/MM/YYYY):"}, nil
		}
		draft.Date = input

		qty, _ := strconv.Atoi(draft.Quantity)
		record := &models.HarvestRecord{
			PhoneNumber: session.PhoneNumber,
			Crop:        draft.Crop,
			QuantityKg:  qty,
			HarvestDate: draft.Date,
		}

		// Best-effort persistence: the call is already ending, so a save
		// failure must not block the confirmation.
		if err := f.store.SaveHarvest(record); err != nil {
			log.Printf("❌ Failed to save harvest for session %s (%s): %v",
				session.SessionID, session.PhoneNumber, err)
		}

		text := fmt.Sprintf("Harvest recorded!\nCrop: %s\nQuantity: %s kg\nDate: %s\nThank you for using GroChain.",
			draft.Crop, draft.Quantity, draft.Date)
		return Reply{Text: text, Close: true}, nil
	}
}
