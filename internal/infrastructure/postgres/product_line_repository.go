package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.ProductLineRepository = (*ProductLineRepo)(nil)

// ProductLineRepo implementación de ProductLineRepository.
type ProductLineRepo struct {
	q Querier
}

// NewProductLineRepository construye el adaptador.
func NewProductLineRepository(q Querier) *ProductLineRepo {
	return &ProductLineRepo{q: q}
}

// Create persiste una línea de producto. El nombre es único.
func (r *ProductLineRepo) Create(ctx context.Context, pl *entity.ProductLine) error {
	err := r.q.QueryRow(ctx, `INSERT INTO product_lines (name) VALUES ($1) RETURNING id, created_at`, pl.Name).
		Scan(&pl.ID, &pl.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product line: %w", err)
	}
	return nil
}

// GetByID obtiene una línea por ID, con su conteo de productos.
func (r *ProductLineRepo) GetByID(ctx context.Context, id int64) (*entity.ProductLine, error) {
	query := `
		SELECT pl.id, pl.name, pl.created_at,
			(SELECT COUNT(*) FROM products p WHERE p.product_line_id = pl.id)
		FROM product_lines pl WHERE pl.id = $1`
	var pl entity.ProductLine
	err := r.q.QueryRow(ctx, query, id).Scan(&pl.ID, &pl.Name, &pl.CreatedAt, &pl.ProductCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product line: %w", err)
	}
	return &pl, nil
}

// List devuelve las líneas con el número de productos de cada una.
func (r *ProductLineRepo) List(ctx context.Context) ([]*entity.ProductLine, error) {
	query := `
		SELECT pl.id, pl.name, pl.created_at, COUNT(p.id)
		FROM product_lines pl
		LEFT JOIN products p ON p.product_line_id = pl.id
		GROUP BY pl.id
		ORDER BY pl.created_at DESC, pl.id DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list product lines: %w", err)
	}
	defer rows.Close()
	list := []*entity.ProductLine{}
	for rows.Next() {
		var pl entity.ProductLine
		if err := rows.Scan(&pl.ID, &pl.Name, &pl.CreatedAt, &pl.ProductCount); err != nil {
			return nil, fmt.Errorf("scan product line: %w", err)
		}
		list = append(list, &pl)
	}
	return list, rows.Err()
}

// Update renombra la línea.
func (r *ProductLineRepo) Update(ctx context.Context, pl *entity.ProductLine) error {
	tag, err := r.q.Exec(ctx, `UPDATE product_lines SET name = $2 WHERE id = $1`, pl.ID, pl.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la línea. Falla con ErrConflict si aún tiene productos.
func (r *ProductLineRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM product_lines WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: la línea tiene productos", domain.ErrConflict)
		}
		return fmt.Errorf("delete product line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
