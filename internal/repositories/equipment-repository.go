package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

const equipmentTable = "equipos"

const equipmentFields = "e.id_equipo, e.descripcion, e.tipo, e.numero_serie, e.fecha_registro, e.estado, e.created_at, e.updated_at"

type EquipmentRepositoryInterface interface {
	CreateEquipment(ctx context.Context, equipment entities.Equipment) (*entities.Equipment, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	UpdateEquipment(ctx context.Context, id uint64, equipment entities.Equipment) (*entities.Equipment, error)
	RetireEquipment(ctx context.Context, id uint64) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(
		&e.ID, &e.Description, &e.Type, &e.SerialNumber,
		&e.RegisteredAt, &e.Active, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования equipo: %w", err)
	}
	return &e, nil
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, equipment entities.Equipment) (*entities.Equipment, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (descripcion, tipo, numero_serie, fecha_registro)
		VALUES ($1, $2, $3, $4)
		RETURNING id_equipo, descripcion, tipo, numero_serie, fecha_registro, estado, created_at, updated_at
	`, equipmentTable)

	row := r.storage.QueryRow(ctx, query,
		equipment.Description, equipment.Type, equipment.SerialNumber, equipment.RegisteredAt,
	)

	created, err := scanEquipment(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrDuplicateSerial
		}
		return nil, err
	}
	return created, nil
}

// FindEquipment возвращает запись независимо от estado:
// проверка статуса - ответственность вызывающего.
func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s e WHERE e.id_equipo = $1`, equipmentFields, equipmentTable)
	return scanEquipment(r.storage.QueryRow(ctx, query, id))
}

// GetEquipments отдаёт только активное оборудование, стабильно по id ASC.
func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	var total uint64
	sqlCount, argsCount, err := psql.Select("COUNT(e.id_equipo)").
		From(equipmentTable + " AS e").
		Where(sq.Eq{"e.estado": true}).
		ToSql()
	if err != nil {
		return nil, 0, err
	}
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Equipment{}, 0, nil
	}

	builder := psql.Select(
		"e.id_equipo", "e.descripcion", "e.tipo", "e.numero_serie",
		"e.fecha_registro", "e.estado", "e.created_at", "e.updated_at",
	).
		From(equipmentTable + " AS e").
		Where(sq.Eq{"e.estado": true}).
		OrderBy("e.id_equipo ASC")

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	equipments := make([]entities.Equipment, 0, filter.Limit)
	for rows.Next() {
		equipment, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		equipments = append(equipments, *equipment)
	}

	return equipments, total, rows.Err()
}

// UpdateEquipment мутирует запись одним условным UPDATE: списанное
// оборудование (estado = FALSE) не изменяется даже при гонке с RetireEquipment.
func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, id uint64, equipment entities.Equipment) (*entities.Equipment, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET descripcion = $1, tipo = $2, numero_serie = $3, fecha_registro = $4, updated_at = NOW()
		WHERE id_equipo = $5 AND estado
		RETURNING id_equipo, descripcion, tipo, numero_serie, fecha_registro, estado, created_at, updated_at
	`, equipmentTable)

	row := r.storage.QueryRow(ctx, query,
		equipment.Description, equipment.Type, equipment.SerialNumber, equipment.RegisteredAt, id,
	)

	updated, err := scanEquipment(row)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrEquipmentRetired
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrDuplicateSerial
		}
		return nil, err
	}
	return updated, nil
}

// RetireEquipment - мягкое удаление. Условие WHERE estado делает повторное
// списание видимым как ноль затронутых строк.
func (r *EquipmentRepository) RetireEquipment(ctx context.Context, id uint64) error {
	query := fmt.Sprintf(`UPDATE %s SET estado = FALSE, updated_at = NOW() WHERE id_equipo = $1 AND estado`, equipmentTable)

	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEquipmentRetired
	}
	return nil
}
