package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  Audio   Gear ", "audio gear"},
		{"HOME", "home"},
		{"", ""},
		{"\tÉlectronique\n", "électronique"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, usecase.NormalizeCategory(tt.in), tt.in)
	}
}

func newProductUC() (*usecase.ProductUseCase, *memDB) {
	db := newMemDB()
	db.lines[1] = &entity.ProductLine{ID: 1, Name: "Electronics"}
	return usecase.NewProductUseCase(memProducts{db}, memLines{db: db}), db
}

func TestProductCreate(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()

	res, err := uc.Create(ctx, dto.CreateProductRequest{
		Name:          " Headphones ",
		Category:      " Audio  ",
		Price:         decimal.RequireFromString("49.90"),
		ProductLineID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Headphones", res.Name)
	assert.Equal(t, "audio", res.Category)
	assert.Equal(t, "Electronics", res.ProductLineName)

	for _, price := range []string{"0", "-1.50"} {
		_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "x", Price: decimal.RequireFromString(price), ProductLineID: 1})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, price)
	}

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "x", Price: decimal.NewFromInt(1), ProductLineID: 99})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "línea inexistente")
}

func TestProductUpdate(t *testing.T) {
	uc, db := newProductUC()
	ctx := context.Background()
	db.products[10] = &entity.Product{ID: 10, Name: "Mouse", Price: decimal.NewFromInt(20), ProductLineID: 1}

	res, err := uc.Update(ctx, 10, dto.UpdateProductRequest{Price: ptr(decimal.RequireFromString("25.50"))})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("25.50").Equal(res.Price))
	assert.Equal(t, "Mouse", res.Name)

	_, err = uc.Update(ctx, 10, dto.UpdateProductRequest{Price: ptr(decimal.Zero)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, 10, dto.UpdateProductRequest{ProductLineID: ptr(int64(99))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, 404, dto.UpdateProductRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
