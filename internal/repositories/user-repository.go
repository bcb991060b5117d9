package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

const userTable = "usuarios"

const userFields = "u.id_usuario, u.nombre, u.usuario, u.contrasena, u.rol, u.estado, u.created_at, u.updated_at"

type UserRepositoryInterface interface {
	CreateUser(ctx context.Context, user entities.User) (uint64, error)
	FindUserByID(ctx context.Context, id uint64) (*entities.User, error)
	FindUserByLogin(ctx context.Context, login string) (*entities.User, error)
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	UpdateUser(ctx context.Context, id uint64, name string, login string) error
	UpdatePassword(ctx context.Context, id uint64, hashedPassword string) error
	SoftDeleteUser(ctx context.Context, id uint64) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.Name, &u.Login, &u.Password, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования usuario: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user entities.User) (uint64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (nombre, usuario, contrasena, rol)
		VALUES ($1, $2, $3, $4)
		RETURNING id_usuario
	`, userTable)

	var newID uint64
	err := r.storage.QueryRow(ctx, query, user.Name, user.Login, user.Password, user.Role).Scan(&newID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, apperrors.ErrDuplicateLogin
		}
		return 0, err
	}
	return newID, nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s u WHERE u.id_usuario = $1`, userFields, userTable)
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindUserByLogin(ctx context.Context, login string) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s u WHERE u.usuario = $1`, userFields, userTable)
	return scanUser(r.storage.QueryRow(ctx, query, login))
}

func (r *UserRepository) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE estado`, userTable),
	).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.User{}, 0, nil
	}

	query := fmt.Sprintf(`
		SELECT %s FROM %s u
		WHERE u.estado
		ORDER BY u.id_usuario ASC
		LIMIT $1 OFFSET $2
	`, userFields, userTable)

	rows, err := r.storage.Query(ctx, query, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]entities.User, 0, filter.Limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}
	return users, total, rows.Err()
}

// UpdateUser: отключённые пользователи не редактируются (условие u.estado).
func (r *UserRepository) UpdateUser(ctx context.Context, id uint64, name string, login string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET nombre = $1, usuario = $2, updated_at = NOW()
		WHERE id_usuario = $3 AND estado
	`, userTable)

	result, err := r.storage.Exec(ctx, query, name, login, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicateLogin
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserDisabled
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint64, hashedPassword string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET contrasena = $1, updated_at = NOW()
		WHERE id_usuario = $2 AND estado
	`, userTable)

	result, err := r.storage.Exec(ctx, query, hashedPassword, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserDisabled
	}
	return nil
}

func (r *UserRepository) SoftDeleteUser(ctx context.Context, id uint64) error {
	query := fmt.Sprintf(`UPDATE %s SET estado = FALSE, updated_at = NOW() WHERE id_usuario = $1 AND estado`, userTable)

	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserDisabled
	}
	return nil
}
