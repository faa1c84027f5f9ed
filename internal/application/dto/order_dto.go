package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest entrada para crear un pedido. CustomerID se ignora para el rol CUSTOMER
// salvo que apunte a otro cliente (403).
type CreateOrderRequest struct {
	CustomerID *int64             `json:"customerId" validate:"omitempty,gt=0"`
	Items      []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderItemRequest ítem pedido; el precio se toma del producto al crear.
type OrderItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// UpdateOrderStatusRequest cambio de estado.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED SHIPPED DELIVERED CANCELLED"`
}

// OrderCustomer datos del cliente incluidos en el pedido.
type OrderCustomer struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	LocationID   int64  `json:"locationId"`
	LocationName string `json:"locationName"`
}

// OrderItemResponse ítem del pedido con el precio congelado.
type OrderItemResponse struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"productId"`
	ProductName     string          `json:"productName"`
	ProductLineID   int64           `json:"productLineId"`
	ProductLineName string          `json:"productLineName"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID          int64               `json:"id"`
	CustomerID  int64               `json:"customerId"`
	Customer    OrderCustomer       `json:"customer"`
	Status      string              `json:"status"`
	TotalAmount decimal.Decimal     `json:"totalAmount"`
	Items       []OrderItemResponse `json:"items"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}
