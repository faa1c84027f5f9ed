package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/sales"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/access"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	apphttp "github.com/jhoicas/backoffice-api/internal/interfaces/http"
)

// ── Fakes de pedidos y productos ──────────────────────────────────────────────

type fakeOrders struct {
	repository.OrderRepository
	orders map[int64]*entity.Order
}

func (f fakeOrders) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	return f.orders[id], nil
}

type noTx struct{}

func (noTx) RunOrders(context.Context, func(repository.OrderRepository, repository.ProductRepository) error) error {
	return nil
}

type denyAll struct{}

func (denyAll) Authorize(context.Context, access.Session, int64) (*entity.Customer, error) {
	return nil, domain.ErrForbidden
}

type fakeReceipts struct{}

func (fakeReceipts) GenerateOrderReceipt(context.Context, *entity.Order) ([]byte, error) {
	return []byte("%PDF-1.7 test"), nil
}

type fakeProducts struct {
	repository.ProductRepository
	lastLine *int64
}

func (f *fakeProducts) List(_ context.Context, productLineID *int64) ([]*entity.Product, error) {
	f.lastLine = productLineID
	return []*entity.Product{
		{ID: 1, Name: "Headphones", Price: decimal.RequireFromString("19.99"), ProductLineID: 5},
	}, nil
}

func newRouterApp(t *testing.T, mask bool) (*fiber.App, *fakeProducts) {
	t.Helper()
	order := &entity.Order{
		ID:                 7,
		CustomerID:         100,
		CustomerName:       "Ada",
		CustomerLocationID: 10,
		Status:             entity.OrderStatusPending,
		TotalAmount:        decimal.RequireFromString("19.99"),
		Items: []entity.OrderItem{
			{ID: 1, ProductID: 1, ProductLineID: 5, Quantity: 1, UnitPrice: decimal.RequireFromString("19.99")},
		},
	}
	products := &fakeProducts{}
	customerID := int64(100)
	authUC := newAuthUC(t, &entity.User{ID: 4, Username: "ada", Role: entity.RoleCustomer, CustomerID: &customerID})

	app := newApp(mask)
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:    authUC,
		ProductUC: usecase.NewProductUseCase(products, nil),
		OrderUC: sales.NewOrderUseCase(
			fakeOrders{orders: map[int64]*entity.Order{7: order}}, noTx{}, denyAll{}, fakeReceipts{}, nil,
		),
		Cookie: apphttp.CookieConfig{Name: testCookie},
	})
	return app, products
}

// ── Auth ──────────────────────────────────────────────────────────────────────

func TestLogin_CookieMeLogout(t *testing.T) {
	app, _ := newRouterApp(t, false)

	resp := do(t, app, request{method: http.MethodPost, path: "/api/auth/login", body: `{"username":"ada","password":"password123"}`})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	resp.Body.Close()
	require.NotEmpty(t, login.Token)
	assert.Equal(t, "CUSTOMER", login.User.Role)

	var cookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == testCookie {
			cookie = ck
		}
	}
	require.NotNil(t, cookie, "el login debe fijar la cookie de sesión")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, login.Token, cookie.Value)

	resp = do(t, app, request{method: http.MethodGet, path: "/api/auth/me", cookie: cookie.Value})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me dto.SessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	resp.Body.Close()
	assert.Equal(t, int64(4), me.UserID)
	require.NotNil(t, me.CustomerID)
	assert.Equal(t, int64(100), *me.CustomerID)

	resp = do(t, app, request{method: http.MethodPost, path: "/api/auth/logout", auth: "Bearer " + login.Token})
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, app, request{method: http.MethodGet, path: "/api/auth/me", auth: "Bearer " + login.Token})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "el token revocado ya no sirve")
	resp.Body.Close()
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	app, _ := newRouterApp(t, false)
	for _, body := range []string{
		`{"username":"ada","password":"wrong"}`,
		`{"username":"nadie","password":"password123"}`,
	} {
		resp := do(t, app, request{method: http.MethodPost, path: "/api/auth/login", body: body})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		e := decodeError(t, resp)
		assert.Equal(t, "UNAUTHORIZED", e.Code)
		assert.Equal(t, "credenciales inválidas", e.Message)
	}
}

func TestLogin_Validacion(t *testing.T) {
	app, _ := newRouterApp(t, false)

	resp := do(t, app, request{method: http.MethodPost, path: "/api/auth/login", body: `{"username":"ada"}`})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decodeError(t, resp)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Contains(t, e.Details, dto.FieldError{Field: "Password", Rule: "required"})

	resp = do(t, app, request{method: http.MethodPost, path: "/api/auth/login", body: `{no es json`})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Code)
}

// ── Catálogo ──────────────────────────────────────────────────────────────────

func TestProducts_ListadoPublico(t *testing.T) {
	app, products := newRouterApp(t, false)

	resp := do(t, app, request{method: http.MethodGet, path: "/api/products?productLineId=5"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out []dto.ProductResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	require.Len(t, out, 1)
	require.NotNil(t, products.lastLine)
	assert.Equal(t, int64(5), *products.lastLine)

	resp = do(t, app, request{method: http.MethodGet, path: "/api/products?productLineId=abc"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_QUERY", decodeError(t, resp).Code)
}

func TestProducts_EscrituraSoloAdmin(t *testing.T) {
	app, _ := newRouterApp(t, false)

	resp := do(t, app, request{method: http.MethodPost, path: "/api/products", body: `{"name":"x"}`})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, app, request{method: http.MethodPost, path: "/api/products", body: `{"name":"x"}`, auth: bearer(t, customerPayload(100))})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

// ── Pedidos ───────────────────────────────────────────────────────────────────

func TestOrders_AccesoYMascara(t *testing.T) {
	t.Run("propio", func(t *testing.T) {
		app, _ := newRouterApp(t, false)
		resp := do(t, app, request{method: http.MethodGet, path: "/api/orders/7", auth: bearer(t, customerPayload(100))})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out dto.OrderResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		resp.Body.Close()
		assert.Equal(t, int64(7), out.ID)
		assert.True(t, decimal.RequireFromString("19.99").Equal(out.TotalAmount))
	})

	t.Run("ajeno 403", func(t *testing.T) {
		app, _ := newRouterApp(t, false)
		resp := do(t, app, request{method: http.MethodGet, path: "/api/orders/7", auth: bearer(t, customerPayload(200))})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		e := decodeError(t, resp)
		assert.Equal(t, "FORBIDDEN", e.Code)
	})

	t.Run("ajeno enmascarado 404", func(t *testing.T) {
		app, _ := newRouterApp(t, true)
		resp := do(t, app, request{method: http.MethodGet, path: "/api/orders/7", auth: bearer(t, customerPayload(200))})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
	})

	t.Run("inexistente", func(t *testing.T) {
		app, _ := newRouterApp(t, false)
		resp := do(t, app, request{method: http.MethodGet, path: "/api/orders/99", auth: bearer(t, adminPayload())})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("id inválido", func(t *testing.T) {
		app, _ := newRouterApp(t, false)
		resp := do(t, app, request{method: http.MethodGet, path: "/api/orders/abc", auth: bearer(t, adminPayload())})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Code)
	})
}

func TestOrders_CrearFueraDeAlcance(t *testing.T) {
	app, _ := newRouterApp(t, false)

	resp := do(t, app, request{
		method: http.MethodPost, path: "/api/orders",
		body: `{"customerId":200,"items":[{"productId":1,"quantity":1}]}`,
		auth: bearer(t, customerPayload(100)),
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, app, request{
		method: http.MethodPost, path: "/api/orders",
		body: `{"items":[]}`,
		auth: bearer(t, customerPayload(100)),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, resp).Code)
}

func TestOrders_Recibo(t *testing.T) {
	app, _ := newRouterApp(t, false)
	resp := do(t, app, request{method: http.MethodGet, path: "/api/orders/7/receipt", auth: bearer(t, customerPayload(100))})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 test", string(b))
}

func TestOrders_DeleteSoloAdmin(t *testing.T) {
	app, _ := newRouterApp(t, false)
	resp := do(t, app, request{method: http.MethodDelete, path: "/api/orders/7", auth: bearer(t, customerPayload(100))})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}
