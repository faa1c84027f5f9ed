package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	apphttp "github.com/jhoicas/backoffice-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/backoffice-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "backoffice-api-test"
	testExpMin    = 60
	testCookie    = "session"
	testPassword  = "password123"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type fakeUsers struct {
	repository.UserRepository
	byName map[string]*entity.User
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return f.byName[username], nil
}

type memSessions struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (m *memSessions) Revoke(_ context.Context, id string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[id] = true
	return nil
}

func (m *memSessions) IsRevoked(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[id], nil
}

func (m *memSessions) Epoch(context.Context, int64) (int64, error) { return 0, nil }
func (m *memSessions) BumpEpoch(context.Context, int64) error      { return nil }

func newAuthUC(t *testing.T, users ...*entity.User) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &fakeUsers{byName: map[string]*entity.User{}}
	for _, u := range users {
		u.PasswordHash = string(hash)
		repo.byName[u.Username] = u
	}
	return auth.NewAuthUseCase(repo, &memSessions{revoked: map[string]bool{}}, auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	}, nil)
}

func newApp(maskForbidden bool) *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(nil, maskForbidden)})
}

// tokenFor firma un token con la sesión indicada.
func tokenFor(t *testing.T, p pkgjwt.Payload) string {
	t.Helper()
	tok, _, err := pkgjwt.Generate(pkgjwt.Options{Secret: testJWTSecret, Issuer: testIssuer, ExpMinutes: testExpMin}, p)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

func bearer(t *testing.T, p pkgjwt.Payload) string {
	return "Bearer " + tokenFor(t, p)
}

func adminPayload() pkgjwt.Payload {
	return pkgjwt.Payload{UserID: 1, Username: "admin", Role: string(entity.RoleAdmin)}
}

func customerPayload(customerID int64) pkgjwt.Payload {
	return pkgjwt.Payload{UserID: 4, Username: "ada", Role: string(entity.RoleCustomer), CustomerID: &customerID}
}

type request struct {
	method string
	path   string
	body   string
	auth   string
	cookie string
}

func do(t *testing.T, app *fiber.App, r request) *http.Response {
	t.Helper()
	var body io.Reader
	if r.body != "" {
		body = strings.NewReader(r.body)
	}
	req := httptest.NewRequest(r.method, r.path, body)
	if r.body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.auth != "" {
		req.Header.Set("Authorization", r.auth)
	}
	if r.cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: r.cookie})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	defer resp.Body.Close()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
