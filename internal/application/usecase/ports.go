package usecase

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// UserTxRunner ejecuta fn en una transacción con los repos de usuarios, asignaciones y clientes.
type UserTxRunner interface {
	RunUsers(ctx context.Context, fn func(
		users repository.UserRepository,
		assignments repository.AssignmentRepository,
		customers repository.CustomerRepository,
	) error) error
}

// SessionInvalidator invalida los tokens vigentes de un usuario (época de sesión).
type SessionInvalidator interface {
	BumpEpoch(ctx context.Context, userID int64) error
}
