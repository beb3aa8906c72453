package loss

import "time"

// Loss records stock written off outside normal service (spillage, expiry,
// breakage). The quantity is removed from the location's stock on creation.
type Loss struct {
	ID         string    `json:"id"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	EntityName string    `json:"entity_name,omitempty"`
	LocationID string    `json:"location_id"`
	Quantity   float64   `json:"quantity"`
	Reason     *string   `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

const (
	EntityIngredient  = "ingredient"
	EntityPreparation = "preparation"
)
