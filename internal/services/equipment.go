package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

type EquipmentServiceInterface interface {
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	GetEquipments(ctx context.Context, pagination types.Filter) ([]dto.EquipmentDTO, uint64, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	RetireEquipment(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	logger        *zap.Logger
}

func NewEquipmentService(equipmentRepo repositories.EquipmentRepositoryInterface, logger *zap.Logger) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		logger:        logger,
	}
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	registeredAt, err := time.Parse(dateLayout, payload.RegisteredAt)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("неверный формат fecha_registro: %s", payload.RegisteredAt)
	}

	created, err := s.equipmentRepo.CreateEquipment(ctx, entities.Equipment{
		Description:  payload.Description,
		Type:         payload.Type,
		SerialNumber: payload.SerialNumber,
		RegisteredAt: registeredAt,
	})
	if err != nil {
		s.logger.Error("ошибка при создании equipo", zap.Error(err))
		return nil, err
	}

	s.logger.Info("создан equipo",
		zap.Uint64("id_equipo", created.ID), zap.String("numero_serie", created.SerialNumber))

	return toEquipmentDTO(created), nil
}

// FindEquipment отдаёт запись независимо от estado: списанное оборудование
// остаётся читаемым для аудита.
func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	equipment, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEquipmentDTO(equipment), nil
}

func (s *EquipmentService) GetEquipments(ctx context.Context, pagination types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	equipments, total, err := s.equipmentRepo.GetEquipments(ctx, pagination)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]dto.EquipmentDTO, 0, len(equipments))
	for i := range equipments {
		dtos = append(dtos, *toEquipmentDTO(&equipments[i]))
	}
	return dtos, total, nil
}

// UpdateEquipment: списанное оборудование неизменяемо. Предварительное чтение
// даёт точную ошибку (нет записи vs списана), guard в UPDATE закрывает гонку.
func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	current, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Active {
		return nil, apperrors.ErrEquipmentRetired
	}

	merged := *current
	if payload.Description != nil {
		merged.Description = *payload.Description
	}
	if payload.Type != nil {
		merged.Type = *payload.Type
	}
	if payload.SerialNumber != nil {
		merged.SerialNumber = *payload.SerialNumber
	}
	if payload.RegisteredAt != nil {
		t, err := time.Parse(dateLayout, *payload.RegisteredAt)
		if err != nil {
			return nil, apperrors.NewInvalidInputError("неверный формат fecha_registro: %s", *payload.RegisteredAt)
		}
		merged.RegisteredAt = t
	}

	updated, err := s.equipmentRepo.UpdateEquipment(ctx, id, merged)
	if err != nil {
		return nil, err
	}
	return toEquipmentDTO(updated), nil
}

// RetireEquipment - мягкое удаление; повторное списание - ошибка, а не no-op.
// Существующие mantenimientos никогда не каскадируются: история обслуживания
// переживает списание оборудования.
func (s *EquipmentService) RetireEquipment(ctx context.Context, id uint64) error {
	current, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return err
	}
	if !current.Active {
		return apperrors.ErrEquipmentRetired
	}

	if err := s.equipmentRepo.RetireEquipment(ctx, id); err != nil {
		return err
	}

	s.logger.Info("equipo списан", zap.Uint64("id_equipo", id))
	return nil
}

func toEquipmentDTO(e *entities.Equipment) *dto.EquipmentDTO {
	return &dto.EquipmentDTO{
		ID:           e.ID,
		Description:  e.Description,
		Type:         e.Type,
		SerialNumber: e.SerialNumber,
		RegisteredAt: e.RegisteredAt.Format(dateLayout),
		Active:       e.Active,
		CreatedAt:    e.CreatedAt.Format(timestampLayout),
		UpdatedAt:    e.UpdatedAt.Format(timestampLayout),
	}
}
