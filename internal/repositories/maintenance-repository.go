package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

const maintenanceTable = "mantenimientos"

// Поля JOIN-выборки: заявка + снимок оборудования.
const maintenanceJoinFields = `
	m.id_mantenimiento, m.id_equipo, m.descripcion, m.fecha_entrada, m.fecha_salida,
	m.estado, m.eliminado, m.created_at, m.updated_at,
	e.descripcion, e.tipo, e.numero_serie, e.fecha_registro, e.estado`

type MaintenanceRepositoryInterface interface {
	CreateMaintenance(ctx context.Context, maintenance entities.Maintenance) (uint64, error)
	FindMaintenance(ctx context.Context, id uint64) (*entities.Maintenance, error)
	GetMaintenances(ctx context.Context, filter dto.MaintenanceFilter, pagination types.Filter) ([]entities.Maintenance, uint64, error)
	UpdateMaintenance(ctx context.Context, id uint64, maintenance entities.Maintenance, newEquipmentID *uint64) error
	TransitionStatus(ctx context.Context, id uint64, target constants.MaintenanceStatus) (bool, error)
	SoftDeleteMaintenance(ctx context.Context, id uint64) (bool, error)
}

type MaintenanceRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewMaintenanceRepository(storage *pgxpool.Pool, logger *zap.Logger) MaintenanceRepositoryInterface {
	return &MaintenanceRepository{storage: storage, logger: logger}
}

func scanMaintenanceJoined(row pgx.Row) (*entities.Maintenance, error) {
	var m entities.Maintenance
	var e entities.Equipment

	err := row.Scan(
		&m.ID, &m.EquipmentID, &m.Description, &m.EntryDate, &m.ExitDate,
		&m.Status, &m.Deleted, &m.CreatedAt, &m.UpdatedAt,
		&e.Description, &e.Type, &e.SerialNumber, &e.RegisteredAt, &e.Active,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования mantenimiento: %w", err)
	}

	e.ID = m.EquipmentID
	m.Equipment = &e
	return &m, nil
}

// CreateMaintenance вставляет заявку со статусом Pendiente ОДНИМ запросом:
// проверка "оборудование существует и активно" - часть самого INSERT
// (INSERT ... SELECT с guard-условием), поэтому гонка со списанием
// оборудования между проверкой и вставкой невозможна.
func (r *MaintenanceRepository) CreateMaintenance(ctx context.Context, maintenance entities.Maintenance) (uint64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (id_equipo, descripcion, fecha_entrada, fecha_salida, estado)
		SELECT e.id_equipo, $2, $3, $4, $5
		FROM equipos e
		WHERE e.id_equipo = $1 AND e.estado
		RETURNING id_mantenimiento
	`, maintenanceTable)

	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		maintenance.EquipmentID, maintenance.Description,
		maintenance.EntryDate, maintenance.ExitDate,
		int16(constants.MaintenancePendiente),
	).Scan(&newID)

	if errors.Is(err, pgx.ErrNoRows) {
		// Оборудование отсутствует или списано - для вызывающего это одно и то же.
		return 0, apperrors.ErrEquipmentNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("ошибка создания mantenimiento: %w", err)
	}
	return newID, nil
}

// FindMaintenance возвращает заявку со снимком оборудования.
// Мягко удалённые заявки не видны.
func (r *MaintenanceRepository) FindMaintenance(ctx context.Context, id uint64) (*entities.Maintenance, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s m
			INNER JOIN equipos e ON m.id_equipo = e.id_equipo
		WHERE m.id_mantenimiento = $1 AND NOT m.eliminado
	`, maintenanceJoinFields, maintenanceTable)

	return scanMaintenanceJoined(r.storage.QueryRow(ctx, query, id))
}

// GetMaintenances - список с опциональными AND-фильтрами.
// Заявки списанного оборудования скрыты, пока фильтр явно не попросит их
// (IncludeRetired): история обслуживания переживает списание оборудования.
func (r *MaintenanceRepository) GetMaintenances(ctx context.Context, filter dto.MaintenanceFilter, pagination types.Filter) ([]entities.Maintenance, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyFilter := func(b sq.SelectBuilder) sq.SelectBuilder {
		b = b.Where(sq.Eq{"m.eliminado": false})
		if filter.Status != nil {
			b = b.Where(sq.Eq{"m.estado": int16(*filter.Status)})
		}
		if filter.DateFrom != nil {
			b = b.Where(sq.GtOrEq{"m.fecha_entrada": *filter.DateFrom})
		}
		if filter.DateTo != nil {
			b = b.Where(sq.LtOrEq{"m.fecha_entrada": *filter.DateTo})
		}
		if filter.EquipmentType != nil {
			b = b.Where(sq.ILike{"e.tipo": *filter.EquipmentType})
		}
		if !filter.IncludeRetired {
			b = b.Where(sq.Eq{"e.estado": true})
		}
		return b
	}

	countBuilder := applyFilter(psql.Select("COUNT(m.id_mantenimiento)").
		From(maintenanceTable + " AS m").
		InnerJoin("equipos e ON m.id_equipo = e.id_equipo"))

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Maintenance{}, 0, nil
	}

	builder := applyFilter(psql.Select(
		"m.id_mantenimiento", "m.id_equipo", "m.descripcion", "m.fecha_entrada", "m.fecha_salida",
		"m.estado", "m.eliminado", "m.created_at", "m.updated_at",
		"e.descripcion", "e.tipo", "e.numero_serie", "e.fecha_registro", "e.estado",
	).
		From(maintenanceTable + " AS m").
		InnerJoin("equipos e ON m.id_equipo = e.id_equipo")).
		OrderBy("m.id_mantenimiento ASC")

	if pagination.Limit > 0 {
		builder = builder.Limit(uint64(pagination.Limit)).Offset(uint64(pagination.Offset))
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

	maintenances := make([]entities.Maintenance, 0, pagination.Limit)
	for rows.Next() {
		m, err := scanMaintenanceJoined(rows)
		if err != nil {
			return nil, 0, err
		}
		maintenances = append(maintenances, *m)
	}

	return maintenances, total, rows.Err()
}

// UpdateMaintenance меняет только поля заявки, статус не трогает.
// Условие estado <> Terminado в самом UPDATE гарантирует неизменность
// завершённых заявок даже при гонке с TransitionStatus.
// Перепривязка на другое оборудование идёт в транзакции: целевой equipo
// блокируется FOR SHARE и проверяется на активность.
func (r *MaintenanceRepository) UpdateMaintenance(ctx context.Context, id uint64, maintenance entities.Maintenance, newEquipmentID *uint64) error {
	if newEquipmentID == nil {
		return r.updateFields(ctx, r.storage, id, maintenance)
	}

	return WithTx(ctx, r.storage, func(tx pgx.Tx) error {
		var active bool
		err := tx.QueryRow(ctx,
			`SELECT estado FROM equipos WHERE id_equipo = $1 FOR SHARE`, *newEquipmentID,
		).Scan(&active)
		if errors.Is(err, pgx.ErrNoRows) || (err == nil && !active) {
			return apperrors.ErrEquipmentNotFound
		}
		if err != nil {
			return err
		}

		maintenance.EquipmentID = *newEquipmentID
		return r.updateFieldsWithEquipment(ctx, tx, id, maintenance)
	})
}

func (r *MaintenanceRepository) updateFields(ctx context.Context, q Querier, id uint64, m entities.Maintenance) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET descripcion = $1, fecha_entrada = $2, fecha_salida = $3, updated_at = NOW()
		WHERE id_mantenimiento = $4 AND NOT eliminado AND estado <> $5
	`, maintenanceTable)

	result, err := q.Exec(ctx, query,
		m.Description, m.EntryDate, m.ExitDate, id, int16(constants.MaintenanceTerminado),
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrMaintenanceCompleted
	}
	return nil
}

func (r *MaintenanceRepository) updateFieldsWithEquipment(ctx context.Context, q Querier, id uint64, m entities.Maintenance) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET id_equipo = $1, descripcion = $2, fecha_entrada = $3, fecha_salida = $4, updated_at = NOW()
		WHERE id_mantenimiento = $5 AND NOT eliminado AND estado <> $6
	`, maintenanceTable)

	result, err := q.Exec(ctx, query,
		m.EquipmentID, m.Description, m.EntryDate, m.ExitDate, id, int16(constants.MaintenanceTerminado),
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrMaintenanceCompleted
	}
	return nil
}

// TransitionStatus - единственный путь смены статуса. Guard в WHERE повторяет
// машину состояний (строго вперёд, Terminado терминален): при гонке двух
// переходов второй увидит ноль затронутых строк.
func (r *MaintenanceRepository) TransitionStatus(ctx context.Context, id uint64, target constants.MaintenanceStatus) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET estado = $1, updated_at = NOW()
		WHERE id_mantenimiento = $2 AND NOT eliminado
			AND estado < $1 AND estado <> $3
	`, maintenanceTable)

	result, err := r.storage.Exec(ctx, query,
		int16(target), id, int16(constants.MaintenanceTerminado),
	)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

// SoftDeleteMaintenance выставляет eliminado. Завершённые заявки не удаляются:
// закрытый наряд - постоянная запись, а не черновик.
func (r *MaintenanceRepository) SoftDeleteMaintenance(ctx context.Context, id uint64) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET eliminado = TRUE, updated_at = NOW()
		WHERE id_mantenimiento = $1 AND NOT eliminado AND estado <> $2
	`, maintenanceTable)

	result, err := r.storage.Exec(ctx, query, id, int16(constants.MaintenanceTerminado))
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}
