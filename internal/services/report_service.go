package services

import (
	"context"

	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/types"
)

// Потолок выгрузки отчёта, чтобы не тянуть таблицу целиком без ограничений.
const reportExportLimit = 100000

type ReportServiceInterface interface {
	GetMaintenanceReport(ctx context.Context, filter dto.MaintenanceFilter) ([]dto.MaintenanceDTO, error)
	GetEquipmentReport(ctx context.Context) ([]dto.EquipmentDTO, error)
}

type ReportService struct {
	maintenanceRepo repositories.MaintenanceRepositoryInterface
	equipmentRepo   repositories.EquipmentRepositoryInterface
	logger          *zap.Logger
}

func NewReportService(
	maintenanceRepo repositories.MaintenanceRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	logger *zap.Logger,
) ReportServiceInterface {
	return &ReportService{
		maintenanceRepo: maintenanceRepo,
		equipmentRepo:   equipmentRepo,
		logger:          logger,
	}
}

func (s *ReportService) GetMaintenanceReport(ctx context.Context, filter dto.MaintenanceFilter) ([]dto.MaintenanceDTO, error) {
	items, total, err := s.maintenanceRepo.GetMaintenances(ctx, filter, types.Filter{Limit: reportExportLimit})
	if err != nil {
		s.logger.Error("не удалось собрать отчёт по заявкам", zap.Error(err))
		return nil, err
	}

	result := make([]dto.MaintenanceDTO, 0, len(items))
	for i := range items {
		result = append(result, *toMaintenanceDTO(&items[i]))
	}

	s.logger.Info("сформирован отчёт по заявкам",
		zap.Int("строк", len(result)), zap.Uint64("всего", total))
	return result, nil
}

// GetEquipmentReport - сводка по действующему парку оборудования.
// Списанные единицы в этот отчёт не попадают.
func (s *ReportService) GetEquipmentReport(ctx context.Context) ([]dto.EquipmentDTO, error) {
	items, total, err := s.equipmentRepo.GetEquipments(ctx, types.Filter{Limit: reportExportLimit})
	if err != nil {
		s.logger.Error("не удалось собрать отчёт по оборудованию", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EquipmentDTO, 0, len(items))
	for i := range items {
		result = append(result, *toEquipmentDTO(&items[i]))
	}

	s.logger.Info("сформирован отчёт по оборудованию",
		zap.Int("строк", len(result)), zap.Uint64("всего", total))
	return result, nil
}
