package perishable

import "time"

// Perishable is one dated lot of an ingredient. The sweep flags lots past
// their expiration; read_at records that someone acknowledged the alert.
type Perishable struct {
	ID             string     `json:"id"`
	IngredientID   string     `json:"ingredient_id"`
	IngredientName string     `json:"ingredient_name,omitempty"`
	LocationID     string     `json:"location_id"`
	Quantity       float64    `json:"quantity"`
	ExpirationAt   time.Time  `json:"expiration_at"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	Expired        bool       `json:"expired"`
	CreatedAt      time.Time  `json:"created_at"`
}
