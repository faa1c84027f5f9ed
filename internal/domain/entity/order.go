package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de un pedido.
type OrderStatus string

// Estados válidos de Order.
const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Valid indica si el estado es uno de los enumerados.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order pedido de un cliente. Los campos Customer* se llenan por join al leer.
type Order struct {
	ID                   int64
	CustomerID           int64
	CustomerName         string
	CustomerEmail        string
	CustomerLocationID   int64
	CustomerLocationName string
	Status               OrderStatus
	TotalAmount          decimal.Decimal
	Items                []OrderItem
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// OrderItem línea de pedido. UnitPrice es una foto del precio al crear el pedido
// y no cambia aunque luego cambie el precio del producto.
type OrderItem struct {
	ID              int64
	OrderID         int64
	ProductID       int64
	ProductName     string
	ProductLineID   int64
	ProductLineName string
	Quantity        int
	UnitPrice       decimal.Decimal
}

// Subtotal cantidad por precio unitario.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
