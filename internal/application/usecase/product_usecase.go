package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos.
type ProductUseCase struct {
	repo  repository.ProductRepository
	lines repository.ProductLineRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, lines repository.ProductLineRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, lines: lines}
}

// List lista productos, opcionalmente filtrados por línea.
func (uc *ProductUseCase) List(ctx context.Context, productLineID *int64) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, productLineID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// Create crea un producto en una línea existente. Price debe ser > 0.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validatePrice(in.Price); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
	}
	if err := uc.requireLine(ctx, in.ProductLineID); err != nil {
		return nil, err
	}
	p := &entity.Product{
		Name:          name,
		Category:      NormalizeCategory(in.Category),
		Price:         in.Price,
		ProductLineID: in.ProductLineID,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, p.ID)
}

// Update actualización parcial de un producto.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
		}
		p.Name = name
	}
	if in.Category != nil {
		p.Category = NormalizeCategory(*in.Category)
	}
	if in.Price != nil {
		if err := validatePrice(*in.Price); err != nil {
			return nil, err
		}
		p.Price = *in.Price
	}
	if in.ProductLineID != nil && *in.ProductLineID != p.ProductLineID {
		if err := uc.requireLine(ctx, *in.ProductLineID); err != nil {
			return nil, err
		}
		p.ProductLineID = *in.ProductLineID
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina un producto que no figure en pedidos.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) requireLine(ctx context.Context, id int64) error {
	pl, err := uc.lines.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if pl == nil {
		return fmt.Errorf("%w: línea de producto %d inexistente", domain.ErrInvalidInput, id)
	}
	return nil
}

func validatePrice(p decimal.Decimal) error {
	if !p.IsPositive() {
		return fmt.Errorf("%w: el precio debe ser mayor que cero", domain.ErrInvalidInput)
	}
	return nil
}

// NormalizeCategory recorta espacios, colapsa los internos y pasa a minúsculas.
// Un cases.Caser no es seguro entre goroutines: se crea uno por llamada.
func NormalizeCategory(s string) string {
	return cases.Lower(language.Und).String(strings.Join(strings.Fields(s), " "))
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Category:        p.Category,
		Price:           p.Price,
		ProductLineID:   p.ProductLineID,
		ProductLineName: p.ProductLineName,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
