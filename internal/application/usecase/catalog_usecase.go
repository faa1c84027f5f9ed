package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// LocationUseCase alta y consulta de ubicaciones.
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// List devuelve todas las ubicaciones.
func (uc *LocationUseCase) List(ctx context.Context) ([]dto.LocationResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, toLocationResponse(l))
	}
	return out, nil
}

// Create crea una ubicación. Nombre duplicado devuelve ErrDuplicate.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
	}
	l := &entity.Location{Name: name}
	if err := uc.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	res := toLocationResponse(l)
	return &res, nil
}

func toLocationResponse(l *entity.Location) dto.LocationResponse {
	return dto.LocationResponse{ID: l.ID, Name: l.Name, CreatedAt: l.CreatedAt}
}

// ProductLineUseCase CRUD de líneas de producto.
type ProductLineUseCase struct {
	repo repository.ProductLineRepository
}

// NewProductLineUseCase construye el caso de uso.
func NewProductLineUseCase(repo repository.ProductLineRepository) *ProductLineUseCase {
	return &ProductLineUseCase{repo: repo}
}

// List devuelve las líneas con su conteo de productos.
func (uc *ProductLineUseCase) List(ctx context.Context) ([]dto.ProductLineResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductLineResponse, 0, len(list))
	for _, pl := range list {
		out = append(out, toProductLineResponse(pl))
	}
	return out, nil
}

// Create crea una línea.
func (uc *ProductLineUseCase) Create(ctx context.Context, in dto.ProductLineRequest) (*dto.ProductLineResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
	}
	pl := &entity.ProductLine{Name: name}
	if err := uc.repo.Create(ctx, pl); err != nil {
		return nil, err
	}
	res := toProductLineResponse(pl)
	return &res, nil
}

// Update renombra una línea.
func (uc *ProductLineUseCase) Update(ctx context.Context, id int64, in dto.ProductLineRequest) (*dto.ProductLineResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
	}
	if err := uc.repo.Update(ctx, &entity.ProductLine{ID: id, Name: name}); err != nil {
		return nil, err
	}
	pl, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pl == nil {
		return nil, domain.ErrNotFound
	}
	res := toProductLineResponse(pl)
	return &res, nil
}

// Delete elimina una línea sin productos.
func (uc *ProductLineUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func toProductLineResponse(pl *entity.ProductLine) dto.ProductLineResponse {
	return dto.ProductLineResponse{ID: pl.ID, Name: pl.Name, ProductCount: pl.ProductCount, CreatedAt: pl.CreatedAt}
}
