package menu

import "time"

type Menu struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	CategoryID   *string   `json:"category_id,omitempty"`
	CategoryName *string   `json:"category_name,omitempty"`
	TypeID       *string   `json:"type_id,omitempty"`
	TypeName     *string   `json:"type_name,omitempty"`
	IsPublic     bool      `json:"is_public"`
	ImageURL     *string   `json:"image_url,omitempty"`
	Items        []Item    `json:"items"`
	CreatedAt    time.Time `json:"created_at"`
}

// Item is one composed component of a menu, drawn from a location.
type Item struct {
	ID         string  `json:"id"`
	EntityType string  `json:"entity_type"`
	EntityID   string  `json:"entity_id"`
	EntityName string  `json:"entity_name,omitempty"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	LocationID *string `json:"location_id,omitempty"`
}

const (
	EntityIngredient  = "ingredient"
	EntityPreparation = "preparation"
)
