package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
// Para CUSTOMER, los campos Customer* crean el perfil vinculado; si se envía uno, se exigen los tres.
type CreateUserRequest struct {
	Username           string  `json:"username" validate:"required,min=3,max=50"`
	Password           string  `json:"password" validate:"required,min=6"`
	Name               *string `json:"name" validate:"omitempty,max=200"`
	Role               string  `json:"role" validate:"required,oneof=ADMIN LOCATION_MANAGER PRODUCT_MANAGER CUSTOMER"`
	LocationIDs        []int64 `json:"locationIds" validate:"omitempty,dive,gt=0"`
	ProductLineIDs     []int64 `json:"productLineIds" validate:"omitempty,dive,gt=0"`
	CustomerName       *string `json:"customerName" validate:"omitempty,min=1,max=200"`
	CustomerEmail      *string `json:"customerEmail" validate:"omitempty,email"`
	CustomerLocationID *int64  `json:"customerLocationId" validate:"omitempty,gt=0"`
}

// HasCustomerProfile indica si se envió algún dato del perfil de cliente.
func (r CreateUserRequest) HasCustomerProfile() bool {
	return r.CustomerName != nil || r.CustomerEmail != nil || r.CustomerLocationID != nil
}

// UpdateUserRequest actualización parcial. Los campos nil no se modifican.
type UpdateUserRequest struct {
	Username       *string  `json:"username" validate:"omitempty,min=3,max=50"`
	Password       *string  `json:"password" validate:"omitempty,min=6"`
	Name           *string  `json:"name" validate:"omitempty,max=200"`
	Role           *string  `json:"role" validate:"omitempty,oneof=ADMIN LOCATION_MANAGER PRODUCT_MANAGER CUSTOMER"`
	LocationIDs    *[]int64 `json:"locationIds" validate:"omitempty,dive,gt=0"`
	ProductLineIDs *[]int64 `json:"productLineIds" validate:"omitempty,dive,gt=0"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Name           *string   `json:"name"`
	Role           string    `json:"role"`
	LocationIDs    []int64   `json:"locationIds"`
	ProductLineIDs []int64   `json:"productLineIds"`
	CustomerID     *int64    `json:"customerId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
