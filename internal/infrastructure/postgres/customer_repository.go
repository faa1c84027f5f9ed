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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerSelect = `
	SELECT c.id, c.name, c.email, c.location_id, l.name, c.user_id, c.created_at, c.updated_at
	FROM customers c
	JOIN locations l ON l.id = c.location_id`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente. Email y user_id son únicos.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (name, email, location_id, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query, c.Name, c.Email, c.LocationID, c.UserID).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return mapCustomerWriteErr("insert customer", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. Devuelve nil, nil si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	return r.scanOne(ctx, customerSelect+` WHERE c.id = $1`, id)
}

// GetByUserID obtiene el perfil de cliente vinculado a un usuario.
func (r *CustomerRepo) GetByUserID(ctx context.Context, userID int64) (*entity.Customer, error) {
	return r.scanOne(ctx, customerSelect+` WHERE c.user_id = $1`, userID)
}

// List lista los clientes que cumplen el filtro de alcance, los más recientes primero.
func (r *CustomerRepo) List(ctx context.Context, scope access.Filter, limit, offset int) ([]*entity.Customer, error) {
	where, args, err := renderScope(scope, "customers", "c", nil)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	args = append(args, limit, offset)
	query := fmt.Sprintf(`%s WHERE %s ORDER BY c.id DESC LIMIT $%d OFFSET $%d`,
		customerSelect, where, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	list := []*entity.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza un cliente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, email = $3, location_id = $4, user_id = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, query, c.ID, c.Name, c.Email, c.LocationID, c.UserID).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return mapCustomerWriteErr("update customer", err)
	}
	return nil
}

// Delete elimina un cliente por ID; sus pedidos e ítems caen en cascada.
func (r *CustomerRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CustomerRepo) scanOne(ctx context.Context, query string, arg any) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.LocationID, &c.LocationName, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func mapCustomerWriteErr(op string, err error) error {
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: ubicación o usuario inexistente", domain.ErrInvalidInput)
	}
	return fmt.Errorf("%s: %w", op, err)
}
