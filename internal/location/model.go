package location

import "time"

type Location struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	LocationTypeID *string   `json:"location_type_id,omitempty"`
	TypeName       *string   `json:"type_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// LocationType groups locations (fridge, freezer, cellar...). Default types
// ship with the company and cannot be deleted.
type LocationType struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
	CanDelete bool   `json:"can_delete"`
}
