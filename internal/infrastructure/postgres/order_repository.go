package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/access"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderSelect = `
	SELECT o.id, o.customer_id, c.name, c.email, c.location_id, l.name,
		o.status, o.total_amount, o.created_at, o.updated_at
	FROM orders o
	JOIN customers c ON c.id = o.customer_id
	JOIN locations l ON l.id = c.location_id`

const itemSelect = `
	SELECT oi.id, oi.order_id, oi.product_id, p.name, p.product_line_id, pl.name, oi.quantity, oi.unit_price
	FROM order_items oi
	JOIN products p ON p.id = oi.product_id
	JOIN product_lines pl ON pl.id = p.product_line_id`

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Create debe ejecutarse con una tx.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera y sus ítems; llena los IDs y fechas.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO orders (customer_id, status, total_amount)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		o.CustomerID, o.Status, o.TotalAmount,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cliente inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		err := r.q.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			it.OrderID, it.ProductID, it.Quantity, it.UnitPrice,
		).Scan(&it.ID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: producto %d", domain.ErrNotFound, it.ProductID)
			}
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID carga el pedido con cliente e ítems. Devuelve nil, nil si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.attachItems(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// List lista los pedidos que cumplen el filtro de alcance, los más recientes primero.
func (r *OrderRepo) List(ctx context.Context, scope access.Filter, limit, offset int) ([]*entity.Order, error) {
	where, args, err := renderScope(scope, "orders", "o", nil)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	args = append(args, limit, offset)
	query := fmt.Sprintf(`%s WHERE %s ORDER BY o.created_at DESC, o.id DESC LIMIT $%d OFFSET $%d`,
		orderSelect, where, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	list := []*entity.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	if err := r.attachItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// AccessViewsByCustomer devuelve la vista de acceso de cada pedido del cliente.
func (r *OrderRepo) AccessViewsByCustomer(ctx context.Context, customerID int64) ([]access.OrderView, error) {
	query := `
		SELECT o.customer_id, c.location_id,
			COALESCE(array_agg(p.product_line_id) FILTER (WHERE p.id IS NOT NULL), '{}')
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		LEFT JOIN order_items oi ON oi.order_id = o.id
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE o.customer_id = $1
		GROUP BY o.id, o.customer_id, c.location_id
		ORDER BY o.id`
	rows, err := r.q.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("order access views: %w", err)
	}
	defer rows.Close()
	views := []access.OrderView{}
	for rows.Next() {
		var v access.OrderView
		if err := rows.Scan(&v.CustomerID, &v.CustomerLocationID, &v.ProductLineIDs); err != nil {
			return nil, fmt.Errorf("scan order access view: %w", err)
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

// UpdateStatus cambia el estado del pedido.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus) error {
	tag, err := r.q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el pedido; los ítems caen en cascada.
func (r *OrderRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// attachItems carga en una sola consulta los ítems de todos los pedidos.
func (r *OrderRepo) attachItems(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	byID := make(map[int64]*entity.Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
		o.Items = []entity.OrderItem{}
	}

	rows, err := r.q.Query(ctx, itemSelect+` WHERE oi.order_id = ANY($1) ORDER BY oi.order_id, oi.id`, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName,
			&it.ProductLineID, &it.ProductLineName, &it.Quantity, &it.UnitPrice); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &o.CustomerEmail, &o.CustomerLocationID,
		&o.CustomerLocationName, &o.Status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
