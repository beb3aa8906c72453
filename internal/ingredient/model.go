package ingredient

import "time"

type Ingredient struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	BaseQuantity float64         `json:"base_quantity"`
	BaseUnit     string          `json:"base_unit"`
	CategoryID   *string         `json:"category_id,omitempty"`
	CategoryName *string         `json:"category_name,omitempty"`
	Allergens    []string        `json:"allergens"`
	ImageURL     *string         `json:"image_url,omitempty"`
	Stocks       []LocationStock `json:"quantities"`
	TotalStock   float64         `json:"total_quantity"`
	CreatedAt    time.Time       `json:"created_at"`
}

// LocationStock is one per-location quantity line.
type LocationStock struct {
	LocationID   string  `json:"location_id"`
	LocationName string  `json:"location_name"`
	Quantity     float64 `json:"quantity"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StockSummary aggregates held quantities per location for the dashboard.
type StockSummary struct {
	LocationID   string  `json:"location_id"`
	LocationName string  `json:"location_name"`
	Ingredients  int     `json:"ingredients"`
	Quantity     float64 `json:"quantity"`
}
