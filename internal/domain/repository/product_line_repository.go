package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ProductLineRepository define el puerto de persistencia para ProductLine.
type ProductLineRepository interface {
	Create(ctx context.Context, line *entity.ProductLine) error
	GetByID(ctx context.Context, id int64) (*entity.ProductLine, error)
	// List incluye el conteo de productos de cada línea.
	List(ctx context.Context) ([]*entity.ProductLine, error)
	Update(ctx context.Context, line *entity.ProductLine) error
	Delete(ctx context.Context, id int64) error
}
