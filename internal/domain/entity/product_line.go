package entity

import "time"

// ProductLine línea de productos; agrupa productos y define el alcance de un PRODUCT_MANAGER.
type ProductLine struct {
	ID           int64
	Name         string
	ProductCount int // solo en listados
	CreatedAt    time.Time
}
