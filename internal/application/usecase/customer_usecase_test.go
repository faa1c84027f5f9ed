package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/access"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

func newCustomerUC() (*usecase.CustomerUseCase, *memDB) {
	db := newMemDB()
	db.customers[1] = &entity.Customer{ID: 1, Name: "Ada", Email: "ada@example.com", LocationID: 10}
	db.customers[2] = &entity.Customer{ID: 2, Name: "Bob", Email: "bob@example.com", LocationID: 20}
	db.views[1] = []access.OrderView{{CustomerID: 1, CustomerLocationID: 10, ProductLineIDs: []int64{5, 6}}}
	return usecase.NewCustomerUseCase(memCustomers{db}, memOrders{db: db}, memUsers{db}, nil), db
}

func session(role entity.Role, p access.SessionParams) access.Session {
	p.UserID, p.Role = 1, role
	return access.NewSession(p)
}

func TestCustomerGet_Alcance(t *testing.T) {
	own := int64(1)
	tests := []struct {
		name    string
		session access.Session
		id      int64
		wantErr error
	}{
		{"admin", session(entity.RoleAdmin, access.SessionParams{}), 2, nil},
		{"location manager en alcance", session(entity.RoleLocationManager, access.SessionParams{LocationIDs: []int64{10}}), 1, nil},
		{"location manager fuera de alcance", session(entity.RoleLocationManager, access.SessionParams{LocationIDs: []int64{10}}), 2, domain.ErrForbidden},
		{"product manager con pedidos de su línea", session(entity.RoleProductManager, access.SessionParams{ProductLineIDs: []int64{6}}), 1, nil},
		{"product manager sin pedidos de su línea", session(entity.RoleProductManager, access.SessionParams{ProductLineIDs: []int64{7}}), 1, domain.ErrForbidden},
		{"product manager y cliente sin pedidos", session(entity.RoleProductManager, access.SessionParams{ProductLineIDs: []int64{6}}), 2, domain.ErrForbidden},
		{"customer propio", session(entity.RoleCustomer, access.SessionParams{CustomerID: &own}), 1, nil},
		{"customer ajeno", session(entity.RoleCustomer, access.SessionParams{CustomerID: &own}), 2, domain.ErrForbidden},
		{"customer sin perfil", session(entity.RoleCustomer, access.SessionParams{}), 1, domain.ErrForbidden},
		{"inexistente", session(entity.RoleAdmin, access.SessionParams{}), 99, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newCustomerUC()
			res, err := uc.Get(context.Background(), tt.session, tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, res.ID)
		})
	}
}

func TestCustomerList_FiltroDeAlcance(t *testing.T) {
	uc, db := newCustomerUC()
	_, err := uc.List(context.Background(), session(entity.RoleProductManager, access.SessionParams{}), dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, access.MatchNone{}, db.lastScope, "product manager sin líneas no ve clientes")
}

func TestCustomerUpdate_NoSaleDelAlcance(t *testing.T) {
	uc, db := newCustomerUC()
	lm := session(entity.RoleLocationManager, access.SessionParams{LocationIDs: []int64{10}})

	_, err := uc.Update(context.Background(), lm, 1, dto.UpdateCustomerRequest{LocationID: ptr(int64(20))})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, int64(10), db.customers[1].LocationID)

	res, err := uc.Update(context.Background(), lm, 1, dto.UpdateCustomerRequest{Name: ptr(" Ada L. ")})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", res.Name)
}

func TestCustomerCreate_VinculoSoloConUsuarioCustomer(t *testing.T) {
	uc, db := newCustomerUC()
	admin := seedUser(db, entity.User{Username: "root", Role: entity.RoleAdmin})
	lm := seedUser(db, entity.User{Username: "lm", Role: entity.RoleLocationManager, LocationIDs: []int64{10}})
	cliente := seedUser(db, entity.User{Username: "carla", Role: entity.RoleCustomer})

	for _, id := range []int64{admin, lm, 9999} {
		_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "X", Email: "x@example.com", LocationID: 10, UserID: ptr(id)})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "usuario %d", id)
	}
	assert.Len(t, db.customers, 2, "no se crea ningún perfil")

	res, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Carla", Email: "carla@example.com", LocationID: 10, UserID: ptr(cliente)})
	require.NoError(t, err)
	assert.Equal(t, "Carla", res.Name)
}
