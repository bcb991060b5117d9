package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

const dateLayout = "2006-01-02"
const timestampLayout = "2006-01-02, 15:04:05"

type MaintenanceServiceInterface interface {
	CreateMaintenance(ctx context.Context, payload dto.CreateMaintenanceDTO) (*dto.MaintenanceDTO, error)
	FindMaintenance(ctx context.Context, id uint64) (*dto.MaintenanceDTO, error)
	GetMaintenances(ctx context.Context, filter dto.MaintenanceFilter, pagination types.Filter) ([]dto.MaintenanceDTO, uint64, error)
	UpdateMaintenance(ctx context.Context, id uint64, payload dto.UpdateMaintenanceDTO) (*dto.MaintenanceDTO, error)
	TransitionStatus(ctx context.Context, id uint64, target constants.MaintenanceStatus) (*dto.MaintenanceDTO, error)
	SoftDeleteMaintenance(ctx context.Context, id uint64) error
}

// MaintenanceService - ядро жизненного цикла заявок на обслуживание.
// Все кросс-сущностные проверки ("можно ли вешать работу на это оборудование",
// "можно ли ещё менять эту заявку") живут здесь и в guard-условиях репозитория;
// в обход сервиса их не выполнить.
type MaintenanceService struct {
	maintenanceRepo repositories.MaintenanceRepositoryInterface
	equipmentRepo   repositories.EquipmentRepositoryInterface
	logger          *zap.Logger
}

func NewMaintenanceService(
	maintenanceRepo repositories.MaintenanceRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	logger *zap.Logger,
) MaintenanceServiceInterface {
	return &MaintenanceService{
		maintenanceRepo: maintenanceRepo,
		equipmentRepo:   equipmentRepo,
		logger:          logger,
	}
}

// CreateMaintenance создаёт заявку в статусе Pendiente.
// Проверка "оборудование активно" встроена в guard-условие INSERT ... SELECT
// репозитория, так что между проверкой и вставкой нет окна для гонки со
// списанием оборудования.
func (s *MaintenanceService) CreateMaintenance(ctx context.Context, payload dto.CreateMaintenanceDTO) (*dto.MaintenanceDTO, error) {
	entryDate, err := time.Parse(dateLayout, payload.EntryDate)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("неверный формат fecha_entrada: %s", payload.EntryDate)
	}
	exitDate, err := time.Parse(dateLayout, payload.ExitDate)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("неверный формат fecha_salida: %s", payload.ExitDate)
	}

	newID, err := s.maintenanceRepo.CreateMaintenance(ctx, entities.Maintenance{
		EquipmentID: payload.EquipmentID,
		Description: payload.Description,
		EntryDate:   entryDate,
		ExitDate:    exitDate,
		Status:      constants.MaintenancePendiente,
	})
	if err != nil {
		s.logger.Warn("не удалось создать mantenimiento",
			zap.Uint64("id_equipo", payload.EquipmentID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("создан mantenimiento",
		zap.Uint64("id_mantenimiento", newID), zap.Uint64("id_equipo", payload.EquipmentID))

	return s.FindMaintenance(ctx, newID)
}

func (s *MaintenanceService) FindMaintenance(ctx context.Context, id uint64) (*dto.MaintenanceDTO, error) {
	maintenance, err := s.maintenanceRepo.FindMaintenance(ctx, id)
	if err != nil {
		return nil, err
	}
	return toMaintenanceDTO(maintenance), nil
}

func (s *MaintenanceService) GetMaintenances(ctx context.Context, filter dto.MaintenanceFilter, pagination types.Filter) ([]dto.MaintenanceDTO, uint64, error) {
	maintenances, total, err := s.maintenanceRepo.GetMaintenances(ctx, filter, pagination)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]dto.MaintenanceDTO, 0, len(maintenances))
	for i := range maintenances {
		dtos = append(dtos, *toMaintenanceDTO(&maintenances[i]))
	}
	return dtos, total, nil
}

// UpdateMaintenance меняет поля заявки, но никогда не статус: для статуса
// есть только TransitionStatus. Завершённая заявка неизменяема.
func (s *MaintenanceService) UpdateMaintenance(ctx context.Context, id uint64, payload dto.UpdateMaintenanceDTO) (*dto.MaintenanceDTO, error) {
	current, err := s.maintenanceRepo.FindMaintenance(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status.IsFinal() {
		return nil, apperrors.ErrMaintenanceCompleted
	}

	merged := *current
	if payload.Description != nil {
		merged.Description = *payload.Description
	}
	if payload.EntryDate != nil {
		t, err := time.Parse(dateLayout, *payload.EntryDate)
		if err != nil {
			return nil, apperrors.NewInvalidInputError("неверный формат fecha_entrada: %s", *payload.EntryDate)
		}
		merged.EntryDate = t
	}
	if payload.ExitDate != nil {
		t, err := time.Parse(dateLayout, *payload.ExitDate)
		if err != nil {
			return nil, apperrors.NewInvalidInputError("неверный формат fecha_salida: %s", *payload.ExitDate)
		}
		merged.ExitDate = t
	}

	var newEquipmentID *uint64
	if payload.EquipmentID.Valid {
		v := payload.EquipmentID.Uint64
		newEquipmentID = &v
	}

	if err := s.maintenanceRepo.UpdateMaintenance(ctx, id, merged, newEquipmentID); err != nil {
		return nil, err
	}

	return s.FindMaintenance(ctx, id)
}

// TransitionStatus - единственная операция смены статуса.
// Машина состояний: Pendiente -> EnProceso -> Terminado, разрешён прямой
// Pendiente -> Terminado, любой шаг назад и любой выход из Terminado запрещён.
func (s *MaintenanceService) TransitionStatus(ctx context.Context, id uint64, target constants.MaintenanceStatus) (*dto.MaintenanceDTO, error) {
	// Сначала существование заявки, потом допустимость перехода:
	// по несуществующей заявке всегда отвечаем "не найдена".
	current, err := s.maintenanceRepo.FindMaintenance(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(target) {
		s.logger.Warn("отклонён переход статуса",
			zap.Uint64("id_mantenimiento", id),
			zap.String("from", current.Status.String()),
			zap.String("to", target.String()))
		return nil, apperrors.ErrInvalidTransition
	}

	// Guard в UPDATE повторяет проверку: при гонке двух переходов
	// проигравший получает ноль затронутых строк.
	ok, err := s.maintenanceRepo.TransitionStatus(ctx, id, target)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrInvalidTransition
	}

	s.logger.Info("статус mantenimiento обновлён",
		zap.Uint64("id_mantenimiento", id), zap.String("estado", target.String()))

	return s.FindMaintenance(ctx, id)
}

// SoftDeleteMaintenance скрывает заявку. Завершённую заявку удалить нельзя:
// закрытый наряд - постоянная учётная запись, а не мусор.
func (s *MaintenanceService) SoftDeleteMaintenance(ctx context.Context, id uint64) error {
	current, err := s.maintenanceRepo.FindMaintenance(ctx, id)
	if err != nil {
		return err
	}
	if current.Status.IsFinal() {
		return apperrors.ErrMaintenanceCompleted
	}

	ok, err := s.maintenanceRepo.SoftDeleteMaintenance(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrMaintenanceCompleted
	}
	return nil
}

func toMaintenanceDTO(m *entities.Maintenance) *dto.MaintenanceDTO {
	out := &dto.MaintenanceDTO{
		ID:          m.ID,
		EquipmentID: m.EquipmentID,
		Description: m.Description,
		EntryDate:   m.EntryDate.Format(dateLayout),
		ExitDate:    m.ExitDate.Format(dateLayout),
		Status:      int16(m.Status),
		StatusName:  m.Status.String(),
		CreatedAt:   m.CreatedAt.Format(timestampLayout),
		UpdatedAt:   m.UpdatedAt.Format(timestampLayout),
	}
	if m.Equipment != nil {
		out.EquipmentType = m.Equipment.Type
		out.SerialNumber = m.Equipment.SerialNumber
		out.EquipmentRetired = !m.Equipment.Active
	}
	return out
}
