package auth

// User is the domain entity.
type User struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"-"`
	Role      string `json:"role"`
}

// Roles
const (
	RoleUser  = "USER"
	RoleChef  = "CHEF"
	RoleAdmin = "ADMIN"
)
