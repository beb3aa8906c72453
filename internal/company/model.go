package company

import "time"

type Company struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	LogoURL       *string   `json:"logo_url,omitempty"`
	PublicMenuKey string    `json:"public_menu_key"`
	CreatedAt     time.Time `json:"created_at"`
}
