package entity

import "time"

// Role rol de un usuario del back office.
type Role string

// Roles válidos para User.
const (
	RoleAdmin           Role = "ADMIN"
	RoleLocationManager Role = "LOCATION_MANAGER"
	RoleProductManager  Role = "PRODUCT_MANAGER"
	RoleCustomer        Role = "CUSTOMER"
)

// Valid indica si el rol pertenece al conjunto cerrado de roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLocationManager, RoleProductManager, RoleCustomer:
		return true
	}
	return false
}

// User representa una identidad del sistema.
// LocationIDs solo tiene sentido para LOCATION_MANAGER y ProductLineIDs para PRODUCT_MANAGER.
type User struct {
	ID             int64
	Username       string
	Name           *string // opcional
	PasswordHash   string  // bcrypt hash
	Role           Role
	LocationIDs    []int64
	ProductLineIDs []int64
	CustomerID     *int64 // perfil de cliente vinculado (1:1, solo rol CUSTOMER)
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
