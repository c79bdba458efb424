package entity

import "time"

// Valid roles for User.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleAccountant = "accountant"
	RoleOperator   = "operator"
)

// User represents a system user. FirmID is empty until an admin approves the
// firm assignment; every protected endpoint except super-admin ones rejects
// users without a firm.
type User struct {
	ID           string
	FirmID       string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext in domain after persisting
	Name         string
	Role         string // see Role* constants
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
