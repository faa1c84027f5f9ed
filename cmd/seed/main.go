// seed aplica las migraciones y carga datos de demostración: ubicaciones, líneas de producto,
// productos, usuarios de cada rol con sus asignaciones, clientes y algunos pedidos.
// Es idempotente: puede ejecutarse varias veces sobre la misma base.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

const defaultPassword = "password123"

var (
	locationNames    = []string{"Nigeria", "United States", "United Kingdom", "South Africa", "India"}
	productLineNames = []string{"Electronics", "Clothing", "Home & Kitchen", "Sports & Outdoors", "Accessories"}
)

type seedProduct struct {
	name, category, price, line string
}

var products = []seedProduct{
	{"Wireless Headphones", "electronics", "79.99", "Electronics"},
	{"Cotton T-Shirt", "clothing", "19.99", "Clothing"},
	{"Smart Watch", "electronics", "249.99", "Electronics"},
	{"Jeans", "clothing", "49.99", "Clothing"},
	{"Laptop Stand", "electronics", "39.99", "Electronics"},
	{"Winter Jacket", "clothing", "89.99", "Clothing"},
	{"Bluetooth Speaker", "electronics", "59.99", "Electronics"},
	{"Sneakers", "clothing", "69.99", "Clothing"},
	{"USB-C Hub", "electronics", "34.99", "Electronics"},
	{"Hoodie", "clothing", "44.99", "Clothing"},
}

type seedUser struct {
	username     string
	name         string
	role         entity.Role
	locations    []string
	productLines []string
	customer     *seedCustomer
}

type seedCustomer struct {
	name, email, location string
}

var users = []seedUser{
	{username: "admin1", name: "Jane Admin", role: entity.RoleAdmin},
	{username: "admin2", name: "John Admin", role: entity.RoleAdmin},
	{username: "pm_electronics", name: "Tunde Okafor", role: entity.RoleProductManager, productLines: []string{"Electronics"}},
	{username: "pm_clothing", name: "Amara Nwosu", role: entity.RoleProductManager, productLines: []string{"Clothing"}},
	{username: "pm_mixed", name: "Chioma Eze", role: entity.RoleProductManager, productLines: []string{"Electronics", "Clothing"}},
	{username: "lm_nigeria", name: "Ngozi Okeke", role: entity.RoleLocationManager, locations: []string{"Nigeria"}},
	{username: "lm_uk_us", name: "James Wilson", role: entity.RoleLocationManager, locations: []string{"United Kingdom", "United States"}},
	{username: "customer1", role: entity.RoleCustomer, customer: &seedCustomer{"Alice Okonkwo", "alice@peoplepractice.com", "Nigeria"}},
	{username: "customer2", role: entity.RoleCustomer, customer: &seedCustomer{"Bob Smith", "bob@peoplepractice.com", "United Kingdom"}},
	{username: "customer3", role: entity.RoleCustomer, customer: &seedCustomer{"Chidi Nnamdi", "chidi@peoplepractice.com", "Nigeria"}},
	{username: "customer4", role: entity.RoleCustomer, customer: &seedCustomer{"Dave Jones", "dave@peoplepractice.com", "United States"}},
}

type seedOrder struct {
	customer string // username
	status   entity.OrderStatus
	products []string
}

var orders = []seedOrder{
	{"customer1", entity.OrderStatusPending, []string{"Wireless Headphones", "Cotton T-Shirt"}},
	{"customer2", entity.OrderStatusPending, []string{"Smart Watch"}},
	{"customer3", entity.OrderStatusShipped, []string{"Jeans", "Hoodie"}},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}
	log.Info().Strs("applied", applied).Msg("migraciones")

	if err := seed(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().Str("password", defaultPassword).Msg("seed completo; contraseña de todos los usuarios")
}

func seed(ctx context.Context, pool *pgxpool.Pool) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	locationIDs, err := upsertNames(ctx, tx, "locations", locationNames)
	if err != nil {
		return err
	}
	lineIDs, err := upsertNames(ctx, tx, "product_lines", productLineNames)
	if err != nil {
		return err
	}
	productIDs, err := seedProducts(ctx, tx, lineIDs)
	if err != nil {
		return err
	}
	customerIDs, err := seedUsers(ctx, tx, string(hash), locationIDs, lineIDs)
	if err != nil {
		return err
	}
	if err := seedOrders(ctx, tx, customerIDs, productIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// upsertNames inserta filas (name) si no existen y devuelve el id por nombre.
func upsertNames(ctx context.Context, tx pgx.Tx, table string, names []string) (map[string]int64, error) {
	ids := make(map[string]int64, len(names))
	q := fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`, pgx.Identifier{table}.Sanitize())
	for _, name := range names {
		var id int64
		if err := tx.QueryRow(ctx, q, name).Scan(&id); err != nil {
			return nil, fmt.Errorf("upsert %s %q: %w", table, name, err)
		}
		ids[name] = id
	}
	return ids, nil
}

// seedProducts crea el catálogo solo si la tabla está vacía.
func seedProducts(ctx context.Context, tx pgx.Tx, lineIDs map[string]int64) (map[string]entity.Product, error) {
	var count int
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&count); err != nil {
		return nil, err
	}
	repo := postgres.NewProductRepository(tx)
	if count == 0 {
		for _, p := range products {
			if err := repo.Create(ctx, &entity.Product{
				Name:          p.name,
				Category:      p.category,
				Price:         decimal.RequireFromString(p.price),
				ProductLineID: lineIDs[p.line],
			}); err != nil {
				return nil, fmt.Errorf("producto %q: %w", p.name, err)
			}
		}
	}
	list, err := repo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]entity.Product, len(list))
	for _, p := range list {
		byName[p.Name] = *p
	}
	return byName, nil
}

// seedUsers crea o actualiza los usuarios, reemplaza sus asignaciones y vincula los perfiles
// de cliente. Devuelve el id de cliente por username.
func seedUsers(ctx context.Context, tx pgx.Tx, hash string, locationIDs, lineIDs map[string]int64) (map[string]int64, error) {
	assignments := postgres.NewAssignmentRepository(tx)
	customerIDs := make(map[string]int64)
	for _, u := range users {
		var userID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO users (username, name, password_hash, role)
			VALUES ($1, NULLIF($2, ''), $3, $4)
			ON CONFLICT (username) DO UPDATE SET name = EXCLUDED.name, role = EXCLUDED.role, updated_at = now()
			RETURNING id`, u.username, u.name, hash, string(u.role)).Scan(&userID)
		if err != nil {
			return nil, fmt.Errorf("usuario %q: %w", u.username, err)
		}

		if err := assignments.ReplaceLocations(ctx, userID, lookup(locationIDs, u.locations)); err != nil {
			return nil, err
		}
		if err := assignments.ReplaceProductLines(ctx, userID, lookup(lineIDs, u.productLines)); err != nil {
			return nil, err
		}

		if u.customer == nil {
			continue
		}
		var customerID int64
		err = tx.QueryRow(ctx, `
			INSERT INTO customers (name, email, location_id, user_id)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (email) DO UPDATE
				SET name = EXCLUDED.name, location_id = EXCLUDED.location_id, user_id = EXCLUDED.user_id, updated_at = now()
			RETURNING id`, u.customer.name, u.customer.email, locationIDs[u.customer.location], userID).Scan(&customerID)
		if err != nil {
			return nil, fmt.Errorf("cliente %q: %w", u.customer.email, err)
		}
		customerIDs[u.username] = customerID
	}
	return customerIDs, nil
}

// seedOrders crea pedidos de ejemplo solo si no hay ninguno.
func seedOrders(ctx context.Context, tx pgx.Tx, customerIDs map[string]int64, productsByName map[string]entity.Product) error {
	var count int
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	repo := postgres.NewOrderRepository(tx)
	for _, o := range orders {
		order := &entity.Order{CustomerID: customerIDs[o.customer], Status: o.status, TotalAmount: decimal.Zero}
		for _, name := range o.products {
			p, ok := productsByName[name]
			if !ok {
				return fmt.Errorf("producto %q no existe", name)
			}
			item := entity.OrderItem{ProductID: p.ID, Quantity: 1, UnitPrice: p.Price}
			order.TotalAmount = order.TotalAmount.Add(item.Subtotal())
			order.Items = append(order.Items, item)
		}
		if err := repo.Create(ctx, order); err != nil {
			return fmt.Errorf("pedido de %s: %w", o.customer, err)
		}
	}
	return nil
}

func lookup(ids map[string]int64, names []string) []int64 {
	out := make([]int64, 0, len(names))
	for _, n := range names {
		out = append(out, ids[n])
	}
	return out
}
