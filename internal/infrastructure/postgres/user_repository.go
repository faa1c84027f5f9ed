package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)
var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// userColumns selecciona el usuario con sus asignaciones y el perfil de cliente vinculado.
const userColumns = `
	u.id, u.username, u.name, u.password_hash, u.role, u.created_at, u.updated_at,
	COALESCE((SELECT array_agg(a.location_id ORDER BY a.location_id)
		FROM location_manager_assignments a WHERE a.user_id = u.id), '{}'),
	COALESCE((SELECT array_agg(a.product_line_id ORDER BY a.product_line_id)
		FROM product_manager_assignments a WHERE a.user_id = u.id), '{}'),
	(SELECT c.id FROM customers c WHERE c.user_id = u.id)`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario; las asignaciones se guardan aparte con AssignmentRepo.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (username, name, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query, user.Username, user.Name, user.PasswordHash, user.Role).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. Devuelve nil, nil si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id)
}

// GetByIDForUpdate igual que GetByID pero bloquea la fila (solo dentro de una tx).
func (r *UserRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.User, error) {
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1 FOR UPDATE OF u`, id)
}

// GetByUsername obtiene un usuario por nombre de usuario.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users u WHERE u.username = $1`, username)
}

// List lista todos los usuarios, los más recientes primero.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users u ORDER BY u.created_at DESC, u.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	list := []*entity.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Update actualiza los datos propios del usuario (no las asignaciones).
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET username = $2, name = $3, password_hash = $4, role = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, query, user.ID, user.Username, user.Name, user.PasswordHash, user.Role).
		Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete elimina un usuario por ID. Las asignaciones caen en cascada.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) scanOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt,
		&u.LocationIDs, &u.ProductLineIDs, &u.CustomerID,
	)
	if err != nil {
		return nil, err
	}
	u.LocationIDs = orEmpty(u.LocationIDs)
	u.ProductLineIDs = orEmpty(u.ProductLineIDs)
	return &u, nil
}

// AssignmentRepo asignaciones de ubicaciones y líneas de producto a managers.
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository construye el adaptador. Pensado para usarse con una tx.
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

// ReplaceLocations reemplaza el conjunto de ubicaciones del usuario.
func (r *AssignmentRepo) ReplaceLocations(ctx context.Context, userID int64, locationIDs []int64) error {
	return r.replace(ctx, "location_manager_assignments", "location_id", userID, locationIDs)
}

// ReplaceProductLines reemplaza el conjunto de líneas de producto del usuario.
func (r *AssignmentRepo) ReplaceProductLines(ctx context.Context, userID int64, productLineIDs []int64) error {
	return r.replace(ctx, "product_manager_assignments", "product_line_id", userID, productLineIDs)
}

// replace recibe table y column de constantes internas, nunca de la entrada.
func (r *AssignmentRepo) replace(ctx context.Context, table, column string, userID int64, ids []int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM `+table+` WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if len(ids) == 0 {
		return nil
	}
	query := `INSERT INTO ` + table + ` (user_id, ` + column + `)
		SELECT $1, x FROM unnest($2::bigint[]) AS x
		ON CONFLICT DO NOTHING`
	if _, err := r.q.Exec(ctx, query, userID, ids); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s inexistente", domain.ErrInvalidInput, column)
		}
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}
