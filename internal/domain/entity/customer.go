package entity

import "time"

// Customer perfil comercial con ubicación, opcionalmente vinculado 1:1 a un User con rol CUSTOMER.
type Customer struct {
	ID           int64
	Name         string
	Email        string
	LocationID   int64
	LocationName string // solo lectura (join)
	UserID       *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
