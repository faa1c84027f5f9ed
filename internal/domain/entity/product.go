package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Pertenece a exactamente una ProductLine.
type Product struct {
	ID              int64
	Name            string
	Category        string
	Price           decimal.Decimal
	ProductLineID   int64
	ProductLineName string // solo lectura (join)
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
