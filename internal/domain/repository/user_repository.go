package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos de lectura incluyen asignaciones y el ID del perfil de cliente vinculado.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// GetByIDForUpdate bloquea la fila del usuario hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id int64) error
}

// AssignmentRepository define el puerto para las asignaciones de managers.
// Replace* borra todas las asignaciones de ese tipo y crea el nuevo conjunto; debe
// ejecutarse dentro de una transacción.
type AssignmentRepository interface {
	ReplaceLocations(ctx context.Context, userID int64, locationIDs []int64) error
	ReplaceProductLines(ctx context.Context, userID int64, productLineIDs []int64) error
}
