package dto

import "time"

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Email      string `json:"email" validate:"required,email"`
	LocationID int64  `json:"locationId" validate:"required,gt=0"`
	UserID     *int64 `json:"userId" validate:"omitempty,gt=0"`
}

// UpdateCustomerRequest actualización parcial de un cliente.
type UpdateCustomerRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email      *string `json:"email" validate:"omitempty,email"`
	LocationID *int64  `json:"locationId" validate:"omitempty,gt=0"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	LocationID   int64     `json:"locationId"`
	LocationName string    `json:"locationName"`
	UserID       *int64    `json:"userId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
