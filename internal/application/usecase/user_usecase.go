package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/access"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase aplica reglas de negocio para usuarios: rol, asignaciones y perfil de cliente.
type UserUseCase struct {
	repo     repository.UserRepository
	tx       UserTxRunner
	sessions SessionInvalidator
	log      *logger.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, tx UserTxRunner, sessions SessionInvalidator, log *logger.Logger) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{repo: repo, tx: tx, sessions: sessions, log: log}
}

// List lista los usuarios con sus asignaciones.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *entityToUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return entityToUserResponse(user), nil
}

// Create crea un usuario. Las asignaciones se validan antes de cualquier escritura y,
// para CUSTOMER, el perfil vinculado se crea en la misma transacción.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := entity.Role(in.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("%w: rol desconocido", domain.ErrInvalidInput)
	}
	assign := access.Normalize(access.Assignments{
		Role:           role,
		LocationIDs:    in.LocationIDs,
		ProductLineIDs: in.ProductLineIDs,
	})
	if err := assign.Validate(); err != nil {
		uc.log.Warn().Str("username", in.Username).Str("role", in.Role).Err(err).Msg("alta de usuario rechazada")
		return nil, err
	}

	var profile *entity.Customer
	if in.HasCustomerProfile() {
		if role != entity.RoleCustomer {
			return nil, fmt.Errorf("%w: el perfil de cliente solo aplica al rol CUSTOMER", domain.ErrInvalidInput)
		}
		if in.CustomerName == nil || in.CustomerEmail == nil || in.CustomerLocationID == nil ||
			strings.TrimSpace(*in.CustomerName) == "" {
			return nil, fmt.Errorf("%w: nombre, email y ubicación del cliente son obligatorios", domain.ErrInvalidInput)
		}
		profile = &entity.Customer{
			Name:       strings.TrimSpace(*in.CustomerName),
			Email:      strings.TrimSpace(*in.CustomerEmail),
			LocationID: *in.CustomerLocationID,
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Username:     strings.TrimSpace(in.Username),
		Name:         normalizeName(in.Name),
		PasswordHash: string(hash),
		Role:         role,
	}

	var created *entity.User
	err = uc.tx.RunUsers(ctx, func(users repository.UserRepository, assignments repository.AssignmentRepository, customers repository.CustomerRepository) error {
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		if err := replaceAssignments(ctx, assignments, user.ID, assign); err != nil {
			return err
		}
		if profile != nil {
			profile.UserID = &user.ID
			if err := customers.Create(ctx, profile); err != nil {
				return err
			}
		}
		created, err = users.GetByID(ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, domain.ErrUserNotFound
	}
	uc.log.Info().Int64("user_id", created.ID).Str("role", string(created.Role)).Msg("usuario creado")
	return entityToUserResponse(created), nil
}

// Update actualización parcial. Rol y asignaciones se validan sobre el estado efectivo
// (lo enviado combinado con lo persistido) con la fila del usuario bloqueada; los conjuntos
// que no aplican al rol efectivo se vacían.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	patch := access.AssignmentPatch{LocationIDs: in.LocationIDs, ProductLineIDs: in.ProductLineIDs}
	if in.Role != nil {
		role := entity.Role(*in.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("%w: rol desconocido", domain.ErrInvalidInput)
		}
		patch.Role = &role
	}

	var passwordHash string
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		passwordHash = string(hash)
	}

	var updated *entity.User
	scopeChanged := false
	err := uc.tx.RunUsers(ctx, func(users repository.UserRepository, assignments repository.AssignmentRepository, _ repository.CustomerRepository) error {
		user, err := users.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}

		existing := access.Assignments{Role: user.Role, LocationIDs: user.LocationIDs, ProductLineIDs: user.ProductLineIDs}
		var effective access.Assignments
		if patch.Touches() {
			effective = access.ResolveAssignments(existing, patch)
			if err := effective.Validate(); err != nil {
				return err
			}
			scopeChanged = !sameAssignments(access.Normalize(existing), effective)
			user.Role = effective.Role
		}

		if in.Username != nil {
			user.Username = strings.TrimSpace(*in.Username)
		}
		if in.Name != nil {
			user.Name = normalizeName(in.Name)
		}
		if passwordHash != "" {
			user.PasswordHash = passwordHash
		}
		if err := users.Update(ctx, user); err != nil {
			return err
		}
		if patch.Touches() {
			if err := replaceAssignments(ctx, assignments, user.ID, effective); err != nil {
				return err
			}
		}
		updated, err = users.GetByID(ctx, id)
		return err
	})
	if err != nil {
		var verr *access.ValidationError
		if errors.As(err, &verr) {
			uc.log.Warn().Int64("user_id", id).Str("code", verr.Code).Msg("actualización de usuario rechazada")
		}
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrUserNotFound
	}
	if scopeChanged {
		uc.invalidateSessions(ctx, id)
	}
	return entityToUserResponse(updated), nil
}

// Delete elimina el usuario, su perfil de cliente vinculado (con pedidos e ítems) y sus asignaciones.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.tx.RunUsers(ctx, func(users repository.UserRepository, _ repository.AssignmentRepository, customers repository.CustomerRepository) error {
		user, err := users.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		if user.CustomerID != nil {
			if err := customers.Delete(ctx, *user.CustomerID); err != nil && !errors.Is(err, domain.ErrNotFound) {
				return err
			}
		}
		return users.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("user_id", id).Msg("usuario eliminado")
	uc.invalidateSessions(ctx, id)
	return nil
}

func (uc *UserUseCase) invalidateSessions(ctx context.Context, userID int64) {
	if uc.sessions == nil {
		return
	}
	if err := uc.sessions.BumpEpoch(ctx, userID); err != nil {
		uc.log.Error().Err(err).Int64("user_id", userID).Msg("no se pudo invalidar la sesión")
	}
}

func replaceAssignments(ctx context.Context, repo repository.AssignmentRepository, userID int64, a access.Assignments) error {
	if err := repo.ReplaceLocations(ctx, userID, a.LocationIDs); err != nil {
		return err
	}
	return repo.ReplaceProductLines(ctx, userID, a.ProductLineIDs)
}

// sameAssignments compara dos estados ya normalizados.
func sameAssignments(a, b access.Assignments) bool {
	return a.Role == b.Role && slices.Equal(a.LocationIDs, b.LocationIDs) && slices.Equal(a.ProductLineIDs, b.ProductLineIDs)
}

// normalizeName: nombre vacío se guarda como NULL.
func normalizeName(name *string) *string {
	if name == nil {
		return nil
	}
	s := strings.TrimSpace(*name)
	if s == "" {
		return nil
	}
	return &s
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Name:           u.Name,
		Role:           string(u.Role),
		LocationIDs:    nonNilIDs(u.LocationIDs),
		ProductLineIDs: nonNilIDs(u.ProductLineIDs),
		CustomerID:     u.CustomerID,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func nonNilIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
