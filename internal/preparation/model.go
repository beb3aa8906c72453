package preparation

import "time"

type Preparation struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Unit       string          `json:"unit"`
	ImageURL   *string         `json:"image_url,omitempty"`
	Entities   []Entity        `json:"entities"`
	Stocks     []LocationStock `json:"quantities"`
	TotalStock float64         `json:"total_quantity"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Entity is one composed component: an ingredient or another preparation,
// with the quantity drawn from a given location.
type Entity struct {
	ID         string  `json:"id"`
	EntityType string  `json:"entity_type"`
	EntityID   string  `json:"entity_id"`
	EntityName string  `json:"entity_name,omitempty"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	LocationID *string `json:"location_id,omitempty"`
}

type LocationStock struct {
	LocationID   string  `json:"location_id"`
	LocationName string  `json:"location_name"`
	Quantity     float64 `json:"quantity"`
}

// LocationRef is the minimal location shape the move-stock picker needs.
type LocationRef struct {
	ID   string
	Name string
}

// Entity types
const (
	EntityIngredient  = "ingredient"
	EntityPreparation = "preparation"
)
