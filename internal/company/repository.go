package company

import "context"

// Repository defines all database operations for companies
type Repository interface {
	Get(ctx context.Context, id string) (*Company, error)
	Create(ctx context.Context, company *Company) error
	UpdateName(ctx context.Context, id, name string) error
	UpdateLogo(ctx context.Context, id, logoURL string) error
}
