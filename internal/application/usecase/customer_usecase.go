package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/access"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

// CustomerUseCase casos de uso de clientes con alcance por sesión.
type CustomerUseCase struct {
	repo   repository.CustomerRepository
	orders repository.OrderRepository
	users  repository.UserRepository
	log    *logger.Logger
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, orders repository.OrderRepository, users repository.UserRepository, log *logger.Logger) *CustomerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CustomerUseCase{repo: repo, orders: orders, users: users, log: log}
}

// List lista los clientes al alcance de la sesión.
func (uc *CustomerUseCase) List(ctx context.Context, s access.Session, page dto.PageRequest) ([]dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, access.CustomerScopeFilter(s), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

// Get obtiene un cliente si la sesión tiene acceso.
func (uc *CustomerUseCase) Get(ctx context.Context, s access.Session, id int64) (*dto.CustomerResponse, error) {
	c, err := uc.Authorize(ctx, s, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Authorize carga el cliente y verifica el acceso de la sesión. Los pedidos del cliente
// solo se consultan cuando el permiso depende de ellos.
func (uc *CustomerUseCase) Authorize(ctx context.Context, s access.Session, id int64) (*entity.Customer, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	views, err := uc.orderViews(ctx, s, c.ID)
	if err != nil {
		return nil, err
	}
	if !access.CanAccessCustomer(s, access.ViewOfCustomer(c, views)) {
		uc.log.Warn().Int64("user_id", s.UserID()).Int64("customer_id", id).Msg("acceso a cliente denegado")
		return nil, domain.ErrForbidden
	}
	return c, nil
}

// Create crea un cliente, opcionalmente vinculado a un usuario con rol CUSTOMER.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	c := &entity.Customer{
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.TrimSpace(in.Email),
		LocationID: in.LocationID,
		UserID:     in.UserID,
	}
	if c.Name == "" {
		return nil, fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
	}
	if c.UserID != nil {
		u, err := uc.users.GetByID(ctx, *c.UserID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, fmt.Errorf("%w: usuario %d inexistente", domain.ErrInvalidInput, *c.UserID)
		}
		if u.Role != entity.RoleCustomer {
			return nil, fmt.Errorf("%w: solo un usuario CUSTOMER puede tener perfil de cliente", domain.ErrInvalidInput)
		}
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return uc.reload(ctx, c.ID)
}

// Update actualización parcial. El cliente resultante debe seguir al alcance de la sesión
// (un location manager no puede moverlo fuera de sus ubicaciones).
func (uc *CustomerUseCase) Update(ctx context.Context, s access.Session, id int64, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.Authorize(ctx, s, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
		}
		c.Name = name
	}
	if in.Email != nil {
		c.Email = strings.TrimSpace(*in.Email)
	}
	if in.LocationID != nil && *in.LocationID != c.LocationID {
		c.LocationID = *in.LocationID
		views, err := uc.orderViews(ctx, s, c.ID)
		if err != nil {
			return nil, err
		}
		if !access.CanAccessCustomer(s, access.ViewOfCustomer(c, views)) {
			uc.log.Warn().Int64("user_id", s.UserID()).Int64("customer_id", id).Msg("cambio de ubicación fuera de alcance")
			return nil, domain.ErrForbidden
		}
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return uc.reload(ctx, id)
}

// Delete elimina el cliente con sus pedidos.
func (uc *CustomerUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *CustomerUseCase) orderViews(ctx context.Context, s access.Session, customerID int64) ([]access.OrderView, error) {
	if _, ok := s.Grant().(access.ProductLineGrant); !ok {
		return nil, nil
	}
	return uc.orders.AccessViewsByCustomer(ctx, customerID)
}

func (uc *CustomerUseCase) reload(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(c), nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		LocationID:   c.LocationID,
		LocationName: c.LocationName,
		UserID:       c.UserID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
