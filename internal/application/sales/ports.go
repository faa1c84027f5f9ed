package sales

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/access"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// OrderTxRunner ejecuta fn en una transacción con los repos de pedidos y productos.
type OrderTxRunner interface {
	RunOrders(ctx context.Context, fn func(
		orders repository.OrderRepository,
		products repository.ProductRepository,
	) error) error
}

// CustomerAuthorizer carga un cliente verificando que la sesión tenga acceso.
// Devuelve domain.ErrNotFound o domain.ErrForbidden.
type CustomerAuthorizer interface {
	Authorize(ctx context.Context, s access.Session, customerID int64) (*entity.Customer, error)
}

// ReceiptGenerator genera el recibo imprimible de un pedido.
type ReceiptGenerator interface {
	GenerateOrderReceipt(ctx context.Context, order *entity.Order) ([]byte, error)
}
