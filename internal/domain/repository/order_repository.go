package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/access"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order y sus ítems.
type OrderRepository interface {
	// Create persiste la cabecera y los ítems; asigna IDs.
	Create(ctx context.Context, order *entity.Order) error
	// GetByID carga el pedido con cliente (ubicación) e ítems (producto y línea).
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	List(ctx context.Context, scope access.Filter, limit, offset int) ([]*entity.Order, error)
	// AccessViewsByCustomer devuelve, por cada pedido del cliente, las líneas de producto de sus ítems.
	AccessViewsByCustomer(ctx context.Context, customerID int64) ([]access.OrderView, error)
	UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus) error
	Delete(ctx context.Context, id int64) error
}
