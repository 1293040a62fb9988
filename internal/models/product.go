package models

import "gorm.io/gorm"

// Marketplace categories reachable from the browse menu.
const (
	CategorySeeds      = "seeds"
	CategoryFertilizer = "fertilizer"
	CategoryEquipment  = "equipment"
)

// Product is a marketplace item browsable over USSD.
type Product struct {
	gorm.Model
	ProductID string  `json:"product_id" gorm:"uniqueIndex"`
	Name      string  `json:"name"`
	Category  string  `json:"category" gorm:"index"`
	Price     float64 `json:"price"` // NGN
	Unit      string  `json:"unit"`
	InStock   bool    `json:"in_stock" gorm:"default:true"`
}

// DefaultProducts is the catalog seeded at migration time so browsing works
// out of the box.
func DefaultProducts() []Product {
	return []Product{
		{ProductID: "PRD001", Name: "Maize Seeds (Hybrid)", Category: CategorySeeds, Price: 4500, Unit: "10kg bag", InStock: true},
		{ProductID: "PRD002", Name: "Cassava Stems", Category: CategorySeeds, Price: 2000, Unit: "bundle", InStock: true},
		{ProductID: "PRD003", Name: "Rice Paddy Seeds", Category: CategorySeeds, Price: 6000, Unit: "25kg bag", InStock: true},
		{ProductID: "PRD004", Name: "NPK 15-15-15", Category: CategoryFertilizer, Price: 18500, Unit: "50kg bag", InStock: true},
		{ProductID: "PRD005", Name: "Urea 46%", Category: CategoryFertilizer, Price: 16000, Unit: "50kg bag", InStock: true},
		{ProductID: "PRD006", Name: "Knapsack Sprayer", Category: CategoryEquipment, Price: 12000, Unit: "unit", InStock: true},
		{ProductID: "PRD007", Name: "Hand Tiller", Category: CategoryEquipment, Price: 8500, Unit: "unit", InStock: true},
	}
}
