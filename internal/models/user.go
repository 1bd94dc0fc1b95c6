package models

import (
	"time"

	"github.com/google/uuid"
)

// Role constants
const (
	RoleViewer  = "viewer"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// User represents an operator authenticated via OIDC.
type User struct {
	ID        uuid.UUID `json:"id"`
	Sub       string    `json:"sub"` // OIDC subject identifier
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"` // viewer, manager, admin
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin returns true if the user is an admin.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanManageCatalog returns true if the user may run the manual filter and
// reset actions.
func (u *User) CanManageCatalog() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}
