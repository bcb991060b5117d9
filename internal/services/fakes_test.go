package services

import (
	"context"
	"strings"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

// Фейковые репозитории в памяти. Повторяют контракт SQL-репозиториев,
// включая guard-условия: условный UPDATE, который не нашёл строку,
// превращается в ту же ошибку, что и в реальном репозитории.

type fakeEquipmentRepo struct {
	nextID uint64
	items  map[uint64]*entities.Equipment
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{nextID: 1, items: make(map[uint64]*entities.Equipment)}
}

func (f *fakeEquipmentRepo) CreateEquipment(_ context.Context, equipment entities.Equipment) (*entities.Equipment, error) {
	for _, existing := range f.items {
		if existing.SerialNumber == equipment.SerialNumber {
			return nil, apperrors.ErrDuplicateSerial
		}
	}
	equipment.ID = f.nextID
	equipment.Active = true
	f.nextID++
	stored := equipment
	f.items[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeEquipmentRepo) FindEquipment(_ context.Context, id uint64) (*entities.Equipment, error) {
	equipment, ok := f.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := *equipment
	return &out, nil
}

func (f *fakeEquipmentRepo) GetEquipments(_ context.Context, _ types.Filter) ([]entities.Equipment, uint64, error) {
	var result []entities.Equipment
	for _, equipment := range f.items {
		if equipment.Active {
			result = append(result, *equipment)
		}
	}
	return result, uint64(len(result)), nil
}

func (f *fakeEquipmentRepo) UpdateEquipment(_ context.Context, id uint64, equipment entities.Equipment) (*entities.Equipment, error) {
	current, ok := f.items[id]
	if !ok || !current.Active {
		return nil, apperrors.ErrEquipmentRetired
	}
	equipment.ID = id
	equipment.Active = true
	stored := equipment
	f.items[id] = &stored
	out := stored
	return &out, nil
}

func (f *fakeEquipmentRepo) RetireEquipment(_ context.Context, id uint64) error {
	current, ok := f.items[id]
	if !ok || !current.Active {
		return apperrors.ErrEquipmentRetired
	}
	current.Active = false
	return nil
}

type fakeMaintenanceRepo struct {
	nextID    uint64
	items     map[uint64]*entities.Maintenance
	equipment *fakeEquipmentRepo
}

func newFakeMaintenanceRepo(equipment *fakeEquipmentRepo) *fakeMaintenanceRepo {
	return &fakeMaintenanceRepo{nextID: 1, items: make(map[uint64]*entities.Maintenance), equipment: equipment}
}

func (f *fakeMaintenanceRepo) CreateMaintenance(_ context.Context, maintenance entities.Maintenance) (uint64, error) {
	equipment, ok := f.equipment.items[maintenance.EquipmentID]
	if !ok || !equipment.Active {
		return 0, apperrors.ErrEquipmentNotFound
	}
	maintenance.ID = f.nextID
	f.nextID++
	stored := maintenance
	f.items[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeMaintenanceRepo) FindMaintenance(_ context.Context, id uint64) (*entities.Maintenance, error) {
	maintenance, ok := f.items[id]
	if !ok || maintenance.Deleted {
		return nil, apperrors.ErrNotFound
	}
	out := *maintenance
	if equipment, ok := f.equipment.items[maintenance.EquipmentID]; ok {
		snapshot := *equipment
		out.Equipment = &snapshot
	}
	return &out, nil
}

func (f *fakeMaintenanceRepo) GetMaintenances(ctx context.Context, filter dto.MaintenanceFilter, _ types.Filter) ([]entities.Maintenance, uint64, error) {
	var result []entities.Maintenance
	for id, maintenance := range f.items {
		if maintenance.Deleted {
			continue
		}
		if filter.Status != nil && maintenance.Status != *filter.Status {
			continue
		}
		if filter.DateFrom != nil && maintenance.EntryDate.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && maintenance.EntryDate.After(*filter.DateTo) {
			continue
		}
		equipment, ok := f.equipment.items[maintenance.EquipmentID]
		if !ok {
			continue
		}
		if !filter.IncludeRetired && !equipment.Active {
			continue
		}
		if filter.EquipmentType != nil && !strings.EqualFold(equipment.Type, *filter.EquipmentType) {
			continue
		}
		joined, err := f.FindMaintenance(ctx, id)
		if err != nil {
			continue
		}
		result = append(result, *joined)
	}
	return result, uint64(len(result)), nil
}

func (f *fakeMaintenanceRepo) UpdateMaintenance(_ context.Context, id uint64, maintenance entities.Maintenance, newEquipmentID *uint64) error {
	current, ok := f.items[id]
	if !ok || current.Deleted || current.Status == constants.MaintenanceTerminado {
		return apperrors.ErrMaintenanceCompleted
	}
	if newEquipmentID != nil {
		equipment, ok := f.equipment.items[*newEquipmentID]
		if !ok || !equipment.Active {
			return apperrors.ErrEquipmentNotFound
		}
		current.EquipmentID = *newEquipmentID
	}
	current.Description = maintenance.Description
	current.EntryDate = maintenance.EntryDate
	current.ExitDate = maintenance.ExitDate
	return nil
}

func (f *fakeMaintenanceRepo) TransitionStatus(_ context.Context, id uint64, target constants.MaintenanceStatus) (bool, error) {
	current, ok := f.items[id]
	if !ok || current.Deleted {
		return false, nil
	}
	if current.Status == constants.MaintenanceTerminado || current.Status >= target {
		return false, nil
	}
	current.Status = target
	return true, nil
}

func (f *fakeMaintenanceRepo) SoftDeleteMaintenance(_ context.Context, id uint64) (bool, error) {
	current, ok := f.items[id]
	if !ok || current.Deleted || current.Status == constants.MaintenanceTerminado {
		return false, nil
	}
	current.Deleted = true
	return true, nil
}
