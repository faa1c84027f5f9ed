package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/access"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// List aplica el filtro de alcance como predicado de la consulta.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	GetByUserID(ctx context.Context, userID int64) (*entity.Customer, error)
	List(ctx context.Context, scope access.Filter, limit, offset int) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id int64) error
}
