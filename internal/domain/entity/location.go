package entity

import "time"

// Location ubicación (país o región) a la que pertenecen los clientes.
type Location struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
