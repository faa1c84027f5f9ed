package sales

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/access"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

// OrderUseCase casos de uso de pedidos con alcance por sesión.
type OrderUseCase struct {
	repo      repository.OrderRepository
	tx        OrderTxRunner
	customers CustomerAuthorizer
	receipts  ReceiptGenerator
	log       *logger.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	repo repository.OrderRepository,
	tx OrderTxRunner,
	customers CustomerAuthorizer,
	receipts ReceiptGenerator,
	log *logger.Logger,
) *OrderUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &OrderUseCase{repo: repo, tx: tx, customers: customers, receipts: receipts, log: log}
}

// List lista los pedidos al alcance de la sesión, los más recientes primero.
func (uc *OrderUseCase) List(ctx context.Context, s access.Session, page dto.PageRequest) ([]dto.OrderResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, access.OrderScopeFilter(s), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *ToOrderResponse(o))
	}
	return out, nil
}

// Get obtiene un pedido si la sesión tiene acceso.
func (uc *OrderUseCase) Get(ctx context.Context, s access.Session, id int64) (*dto.OrderResponse, error) {
	o, err := uc.authorize(ctx, s, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// Create crea un pedido en estado PENDING. El precio unitario de cada ítem es el precio
// del producto en ese momento y el total es la suma de los subtotales.
//
// Un CUSTOMER solo pide para su propio perfil; los demás roles deben indicar un cliente
// al que tengan acceso.
func (uc *OrderUseCase) Create(ctx context.Context, s access.Session, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: el pedido no tiene ítems", domain.ErrInvalidInput)
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cantidad inválida para el producto %d", domain.ErrInvalidInput, it.ProductID)
		}
	}

	customerID, err := resolveCustomer(s, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.customers.Authorize(ctx, s, customerID); err != nil {
		return nil, err
	}

	var created *entity.Order
	err = uc.tx.RunOrders(ctx, func(orders repository.OrderRepository, products repository.ProductRepository) error {
		ids := make([]int64, 0, len(in.Items))
		for _, it := range in.Items {
			ids = append(ids, it.ProductID)
		}
		found, err := products.ListByIDs(ctx, access.NewIDSet(ids...).Slice())
		if err != nil {
			return err
		}
		byID := make(map[int64]*entity.Product, len(found))
		for _, p := range found {
			byID[p.ID] = p
		}

		order := &entity.Order{
			CustomerID:  customerID,
			Status:      entity.OrderStatusPending,
			TotalAmount: decimal.Zero,
			Items:       make([]entity.OrderItem, 0, len(in.Items)),
		}
		for _, it := range in.Items {
			p, ok := byID[it.ProductID]
			if !ok {
				return fmt.Errorf("%w: producto %d", domain.ErrNotFound, it.ProductID)
			}
			item := entity.OrderItem{ProductID: p.ID, Quantity: it.Quantity, UnitPrice: p.Price}
			order.TotalAmount = order.TotalAmount.Add(item.Subtotal())
			order.Items = append(order.Items, item)
		}

		if err := orders.Create(ctx, order); err != nil {
			return err
		}
		created, err = orders.GetByID(ctx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, domain.ErrNotFound
	}
	uc.log.Info().Int64("user_id", s.UserID()).Int64("order_id", created.ID).
		Str("total", created.TotalAmount.String()).Msg("pedido creado")
	return ToOrderResponse(created), nil
}

// UpdateStatus cambia el estado de un pedido al alcance de la sesión.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, s access.Session, id int64, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	status := entity.OrderStatus(in.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, in.Status)
	}
	if _, err := uc.authorize(ctx, s, id); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return ToOrderResponse(o), nil
}

// Delete elimina un pedido con sus ítems.
func (uc *OrderUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// Receipt genera el PDF del pedido si la sesión tiene acceso.
func (uc *OrderUseCase) Receipt(ctx context.Context, s access.Session, id int64) ([]byte, error) {
	o, err := uc.authorize(ctx, s, id)
	if err != nil {
		return nil, err
	}
	return uc.receipts.GenerateOrderReceipt(ctx, o)
}

func (uc *OrderUseCase) authorize(ctx context.Context, s access.Session, id int64) (*entity.Order, error) {
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if !access.CanAccessOrder(s, access.ViewOfOrder(o)) {
		uc.log.Warn().Int64("user_id", s.UserID()).Int64("order_id", id).Msg("acceso a pedido denegado")
		return nil, domain.ErrForbidden
	}
	return o, nil
}

// resolveCustomer decide para qué cliente se crea el pedido.
func resolveCustomer(s access.Session, requested *int64) (int64, error) {
	if s.Role() == entity.RoleCustomer {
		own, ok := s.CustomerID()
		if requested != nil && (!ok || *requested != own) {
			return 0, domain.ErrForbidden
		}
		if !ok {
			return 0, domain.ErrNoCustomerProfile
		}
		return own, nil
	}
	if requested == nil {
		return 0, fmt.Errorf("%w: customerId es obligatorio", domain.ErrInvalidInput)
	}
	return *requested, nil
}

// ToOrderResponse proyecta el pedido cargado con cliente e ítems.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:              it.ID,
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			ProductLineID:   it.ProductLineID,
			ProductLineName: it.ProductLineName,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			Subtotal:        it.Subtotal(),
		})
	}
	return &dto.OrderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Customer: dto.OrderCustomer{
			ID:           o.CustomerID,
			Name:         o.CustomerName,
			Email:        o.CustomerEmail,
			LocationID:   o.CustomerLocationID,
			LocationName: o.CustomerLocationName,
		},
		Status:      string(o.Status),
		TotalAmount: o.TotalAmount,
		Items:       items,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
