// Package inventory contains the pharmacy inventory domain.
package inventory

// Category of an inventory item.
type Category string

const (
	CategoryMedicine   Category = "Medicine"
	CategoryConsumable Category = "Consumable"
	CategoryEquipment  Category = "Equipment"
)

// Status of an inventory item's stock level.
type Status string

const (
	StatusOK       Status = "OK"
	StatusLow      Status = "Low"
	StatusCritical Status = "Critical"
	StatusExpired  Status = "Expired"
)

// Item is a single pharmacy stock position.
//
// Status is not recomputed from stock thresholds automatically; it only
// resets to OK when a purchase order replenishes the item. Advisory holds
// the restock prediction text shown to pharmacists and is cleared on
// replenishment.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Stock       int      `json:"stock"`
	Unit        string   `json:"unit"`
	BatchNumber string   `json:"batchNumber"`
	ExpiryDate  string   `json:"expiryDate"`
	Status      Status   `json:"status"`
	Advisory    string   `json:"aiPrediction,omitempty"`
}

// CriticalOrLowCount returns the number of items whose stock status is not OK.
func CriticalOrLowCount(items []Item) int {
	n := 0
	for _, it := range items {
		if it.Status != StatusOK {
			n++
		}
	}
	return n
}
