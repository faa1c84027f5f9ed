package usecase_test

import (
	"context"
	"sync"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/access"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// memDB base en memoria compartida por los repos falsos.
type memDB struct {
	mu        sync.Mutex
	nextID    int64
	users     map[int64]*entity.User
	customers map[int64]*entity.Customer
	products  map[int64]*entity.Product
	lines     map[int64]*entity.ProductLine
	views     map[int64][]access.OrderView // por cliente
	writes    int
	lastScope access.Filter
}

func newMemDB() *memDB {
	return &memDB{
		nextID:    100,
		users:     map[int64]*entity.User{},
		customers: map[int64]*entity.Customer{},
		products:  map[int64]*entity.Product{},
		lines:     map[int64]*entity.ProductLine{},
		views:     map[int64][]access.OrderView{},
	}
}

func (db *memDB) id() int64 {
	db.nextID++
	return db.nextID
}

func (db *memDB) customerOf(userID int64) *int64 {
	for _, c := range db.customers {
		if c.UserID != nil && *c.UserID == userID {
			id := c.ID
			return &id
		}
	}
	return nil
}

// ── users ─────────────────────────────────────────────────────────────────────

type memUsers struct{ db *memDB }

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, x := range r.db.users {
		if x.Username == u.Username {
			return domain.ErrUsernameTaken
		}
	}
	r.db.writes++
	u.ID = r.db.id()
	cp := *u
	r.db.users[u.ID] = &cp
	return nil
}

func (r memUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	cp.CustomerID = r.db.customerOf(id)
	return &cp, nil
}

func (r memUsers) GetByIDForUpdate(ctx context.Context, id int64) (*entity.User, error) {
	return r.GetByID(ctx, id)
}

func (r memUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memUsers) List(_ context.Context) ([]*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]*entity.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r memUsers) Update(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	old, ok := r.db.users[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	r.db.writes++
	cp := *u
	cp.LocationIDs, cp.ProductLineIDs = old.LocationIDs, old.ProductLineIDs
	r.db.users[u.ID] = &cp
	return nil
}

func (r memUsers) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	r.db.writes++
	delete(r.db.users, id)
	return nil
}

type memAssignments struct{ db *memDB }

func (r memAssignments) ReplaceLocations(_ context.Context, userID int64, ids []int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.writes++
	r.db.users[userID].LocationIDs = append([]int64{}, ids...)
	return nil
}

func (r memAssignments) ReplaceProductLines(_ context.Context, userID int64, ids []int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.writes++
	r.db.users[userID].ProductLineIDs = append([]int64{}, ids...)
	return nil
}

// ── customers ─────────────────────────────────────────────────────────────────

type memCustomers struct{ db *memDB }

func (r memCustomers) Create(_ context.Context, c *entity.Customer) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.writes++
	c.ID = r.db.id()
	cp := *c
	r.db.customers[c.ID] = &cp
	return nil
}

func (r memCustomers) GetByID(_ context.Context, id int64) (*entity.Customer, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r memCustomers) GetByUserID(ctx context.Context, userID int64) (*entity.Customer, error) {
	r.db.mu.Lock()
	id := r.db.customerOf(userID)
	r.db.mu.Unlock()
	if id == nil {
		return nil, nil
	}
	return r.GetByID(ctx, *id)
}

func (r memCustomers) List(_ context.Context, scope access.Filter, _, _ int) ([]*entity.Customer, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.lastScope = scope
	return []*entity.Customer{}, nil
}

func (r memCustomers) Update(_ context.Context, c *entity.Customer) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.db.writes++
	cp := *c
	r.db.customers[c.ID] = &cp
	return nil
}

func (r memCustomers) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.customers[id]; !ok {
		return domain.ErrNotFound
	}
	r.db.writes++
	delete(r.db.customers, id)
	delete(r.db.views, id)
	return nil
}

type memOrders struct {
	repository.OrderRepository
	db *memDB
}

func (r memOrders) AccessViewsByCustomer(_ context.Context, customerID int64) ([]access.OrderView, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.views[customerID], nil
}

// ── catálogo ──────────────────────────────────────────────────────────────────

type memProducts struct{ db *memDB }

func (r memProducts) Create(_ context.Context, p *entity.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p.ID = r.db.id()
	cp := *p
	r.db.products[p.ID] = &cp
	return nil
}

func (r memProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	if pl, ok := r.db.lines[p.ProductLineID]; ok {
		cp.ProductLineName = pl.Name
	}
	return &cp, nil
}

func (r memProducts) List(_ context.Context, productLineID *int64) ([]*entity.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.db.products {
		if productLineID == nil || p.ProductLineID == *productLineID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memProducts) ListByIDs(context.Context, []int64) ([]*entity.Product, error) {
	return nil, nil
}

func (r memProducts) Update(_ context.Context, p *entity.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *p
	r.db.products[p.ID] = &cp
	return nil
}

func (r memProducts) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.products, id)
	return nil
}

type memLines struct {
	repository.ProductLineRepository
	db *memDB
}

func (r memLines) GetByID(_ context.Context, id int64) (*entity.ProductLine, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	pl, ok := r.db.lines[id]
	if !ok {
		return nil, nil
	}
	cp := *pl
	return &cp, nil
}

// ── tx / sesiones ─────────────────────────────────────────────────────────────

type memTx struct{ db *memDB }

func (t memTx) RunUsers(_ context.Context, fn func(repository.UserRepository, repository.AssignmentRepository, repository.CustomerRepository) error) error {
	return fn(memUsers{t.db}, memAssignments{t.db}, memCustomers{t.db})
}

type recordingSessions struct {
	mu     sync.Mutex
	bumped []int64
	down   error
}

func (s *recordingSessions) BumpEpoch(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down != nil {
		return s.down
	}
	s.bumped = append(s.bumped, userID)
	return nil
}
