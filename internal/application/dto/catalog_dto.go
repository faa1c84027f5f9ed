package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLocationRequest entrada para crear una ubicación.
type CreateLocationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProductLineRequest entrada para crear o renombrar una línea de producto.
type ProductLineRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// ProductLineResponse salida de una línea con su número de productos.
type ProductLineResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	ProductCount int       `json:"productCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateProductRequest entrada para crear un producto. Price debe ser > 0.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Category      string          `json:"category" validate:"max=100"`
	Price         decimal.Decimal `json:"price"`
	ProductLineID int64           `json:"productLineId" validate:"required,gt=0"`
}

// UpdateProductRequest actualización parcial de un producto.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category      *string          `json:"category" validate:"omitempty,max=100"`
	Price         *decimal.Decimal `json:"price"`
	ProductLineID *int64           `json:"productLineId" validate:"omitempty,gt=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Price           decimal.Decimal `json:"price"`
	ProductLineID   int64           `json:"productLineId"`
	ProductLineName string          `json:"productLineName"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
