package services

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

func newTestEnv() (EquipmentServiceInterface, MaintenanceServiceInterface, *fakeEquipmentRepo, *fakeMaintenanceRepo) {
	logger := zap.NewNop()
	equipmentRepo := newFakeEquipmentRepo()
	maintenanceRepo := newFakeMaintenanceRepo(equipmentRepo)
	equipmentSvc := NewEquipmentService(equipmentRepo, logger)
	maintenanceSvc := NewMaintenanceService(maintenanceRepo, equipmentRepo, logger)
	return equipmentSvc, maintenanceSvc, equipmentRepo, maintenanceRepo
}

func createTestEquipment(t *testing.T, svc EquipmentServiceInterface, serial string) *dto.EquipmentDTO {
	t.Helper()
	equipment, err := svc.CreateEquipment(context.Background(), dto.CreateEquipmentDTO{
		Description:  "Ноутбук для тестов",
		Type:         "laptop",
		SerialNumber: serial,
		RegisteredAt: "2024-01-15",
	})
	require.NoError(t, err)
	return equipment
}

func createTestMaintenance(t *testing.T, svc MaintenanceServiceInterface, equipmentID uint64) *dto.MaintenanceDTO {
	t.Helper()
	maintenance, err := svc.CreateMaintenance(context.Background(), dto.CreateMaintenanceDTO{
		EquipmentID: equipmentID,
		Description: "Замена клавиатуры",
		EntryDate:   "2024-02-01",
		ExitDate:    "2024-02-05",
	})
	require.NoError(t, err)
	return maintenance
}

func TestCreateMaintenanceStartsPending(t *testing.T) {
	equipmentSvc, maintenanceSvc, _, _ := newTestEnv()
	equipment := createTestEquipment(t, equipmentSvc, "SN-001")

	maintenance := createTestMaintenance(t, maintenanceSvc, equipment.ID)

	assert.Equal(t, int16(constants.MaintenancePendiente), maintenance.Status)
	assert.Equal(t, "Pendiente", maintenance.StatusName)
	assert.Equal(t, equipment.ID, maintenance.EquipmentID)
	assert.Equal(t, "SN-001", maintenance.SerialNumber)
	assert.False(t, maintenance.EquipmentRetired)
}

func TestCreateMaintenanceUnknownEquipment(t *testing.T) {
	_, maintenanceSvc, _, _ := newTestEnv()

	_, err := maintenanceSvc.CreateMaintenance(context.Background(), dto.CreateMaintenanceDTO{
		EquipmentID: 999,
		Description: "Ремонт",
		EntryDate:   "2024-02-01",
		ExitDate:    "2024-02-05",
	})

	assert.ErrorIs(t, err, apperrors.ErrEquipmentNotFound)
}

func TestCreateMaintenanceRetiredEquipment(t *testing.T) {
	equipmentSvc, maintenanceSvc, _, _ := newTestEnv()
	equipment := createTestEquipment(t, equipmentSvc, "SN-002")
	require.NoError(t, equipmentSvc.RetireEquipment(context.Background(), equipment.ID))

	_, err := maintenanceSvc.CreateMaintenance(context.Background(), dto.CreateMaintenanceDTO{
		EquipmentID: equipment.ID,
		Description: "Ремонт",
		EntryDate:   "2024-02-01",
		ExitDate:    "2024-02-05",
	})

	// Списанное оборудование для новых заявок неотличимо от несуществующего.
	assert.ErrorIs(t, err, apperrors.ErrEquipmentNotFound)
}

func TestCreateMaintenanceBadDate(t *testing.T) {
	equipmentSvc, maintenanceSvc, _, _ := newTestEnv()
	equipment := createTestEquipment(t, equipmentSvc, "SN-003")

	_, err := maintenanceSvc.CreateMaintenance(context.Background(), dto.CreateMaintenanceDTO{
		EquipmentID: equipment.ID,
		Description: "Ремонт",
		EntryDate:   "01-02-2024",
		ExitDate:    "2024-02-05",
	})

	var invalidInput *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalidInput)
}

func TestTransitionStatusForward(t *testing.T) {
	equipmentSvc, maintenanceSvc, _, _ := newTestEnv()
	equipment := createTestEquipment(t, equipmentSvc, "SN-010")
	maintenance := createTestMaintenance(t, maintenanceSvc, equipment.ID)
	ctx := context.Background()

	inProgress, err := maintenanceSvc.TransitionStatus(ctx, maintenance.ID, constants.MaintenanceEnProceso)
	require.NoError(t, err)
	assert.Equal(t, int16(constants.MaintenanceEnProceso), inProgress.Status)

	completed, err := maintenanceSvc.TransitionStatus(ctx, maintenance.ID, constants.MaintenanceTerminado)
	require.NoError(t, err)
	assert.Equal(t, int16(constants.MaintenanceTerminado), completed.Status)
	assert.Equal(t, "Terminado", completed.StatusName)
}

func TestTransitionStatusSkipToCompleted(t *testing.T) {
	equipmentSvc, maintenanceSvc, _, _ := newTestEnv()
	equipment := createTestEquipment(t, equipmentSvc, "SN-011")
	maintenance := createTestMaintenance(t, maintenanceSvc, equipment.ID)

	completed, err := maintenanceSvc.TransitionStatus(context.Background(), maintenance.ID, constants.MaintenanceTerminado)
	require.NoError(t, err)
	assert.Equal(t, int16(constants.MaintenanceTerminado), completed.Status)
}

func TestTransitionStatusBackwardRejected(t *testing.T) {
	equipmentSvc, maintenanceSvc, _, _ := newTestEnv()
	equipment := createTestEquipment(t, equipmentSvc, "SN-012")
	maintenance := createTestMaintenance(t, maintenanceSvc, equipment.ID)
	ctx := context.Background()

	_, err := maintenanceSvc.TransitionStatus(ctx, maintenance.ID, constants.MaintenanceEnProceso)
	require.NoError(t, err)

	_, err = maintenanceSvc.TransitionStatus(ctx, maintenance.ID, constants.MaintenancePendiente)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	// Самопереход тоже запрещён.
	_, err = maintenanceSvc.TransitionStatus(ctx, maintenance.ID, constants.MaintenanceEnProceso)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestTransitionStatusOutOfTerminalRejected(t *testing.T) {
	equipmentSvc, maintenanceSvc, _, _ := newTestEnv()
	equipment := createTestEquipment(t, equipmentSvc, "SN-013")
	maintenance := createTestMaintenance(t, maintenanceSvc, equipment.ID)
	ctx := context.Background()

	_, err := maintenanceSvc.TransitionStatus(ctx, maintenance.ID, constants.MaintenanceTerminado)
	require.NoError(t, err)

	for _, target := range []constants.MaintenanceStatus{
		constants.MaintenancePendiente,
		constants.MaintenanceEnProceso,
		constants.MaintenanceTerminado,
	} {
		_, err = maintenanceSvc.TransitionStatus(ctx, maintenance.ID, target)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	}
}

func TestTransitionStatusUnknownTarget(t *testing.T) {
	equipmentSvc, maintenanceSvc, _, _ := newTestEnv()
	equipment := createTestEquipment(t, equipmentSvc, "SN-014")
	maintenance := createTestMaintenance(t, maintenanceSvc, equipment.ID)

	_, err := maintenanceSvc.TransitionStatus(context.Background(), maintenance.ID, constants.MaintenanceStatus(9))
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestTransitionStatusMissingMaintenance(t *testing.T) {
	_, maintenanceSvc, _, _ := newTestEnv()

	_, err := maintenanceSvc.TransitionStatus(context.Background(), 404, constants.MaintenanceEnProceso)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Существование заявки проверяется раньше допустимости перехода:
	// несуществующая заявка с мусорным статусом - это всё ещё "не найдена".
	_, err = maintenanceSvc.TransitionStatus(context.Background(), 404, constants.MaintenanceStatus(9))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateMaintenanceFields(t *testing.T) {
	equipmentSvc, maintenanceSvc, _, _ := newTestEnv()
	equipment := createTestEquipment(t, equipmentSvc, "SN-020")
	maintenance := createTestMaintenance(t, maintenanceSvc, equipment.ID)

	description := "Замена материнской платы"
	exitDate := "2024-02-10"
	updated, err := maintenanceSvc.UpdateMaintenance(context.Background(), maintenance.ID, dto.UpdateMaintenanceDTO{
		Description: &description,
		ExitDate:    &exitDate,
	})

	require.NoError(t, err)
	assert.Equal(t, description, updated.Description)
	assert.Equal(t, exitDate, updated.ExitDate)
	assert.Equal(t, maintenance.EntryDate, updated.EntryDate)
	// Статус через обычное обновление не меняется.
	assert.Equal(t, maintenance.Status, updated.Status)
}

func TestUpdateMaintenanceRepointEquipment(t *testing.T) {
	equipmentSvc, maintenanceSvc, _, _ := newTestEnv()
	first := createTestEquipment(t, equipmentSvc, "SN-021")
	second := createTestEquipment(t, equipmentSvc, "SN-022")
	maintenance := createTestMaintenance(t, maintenanceSvc, first.ID)

	updated, err := maintenanceSvc.UpdateMaintenance(context.Background(), maintenance.ID, dto.UpdateMaintenanceDTO{
		EquipmentID: null.Uint64From(second.ID),
	})

	require.NoError(t, err)
	assert.Equal(t, second.ID, updated.EquipmentID)
	assert.Equal(t, "SN-022", updated.SerialNumber)
}

func TestUpdateMaintenanceRepointToRetiredEquipment(t *testing.T) {
	equipmentSvc, maintenanceSvc, _, _ := newTestEnv()
	first := createTestEquipment(t, equipmentSvc, "SN-023")
	second := createTestEquipment(t, equipmentSvc, "SN-024")
	maintenance := createTestMaintenance(t, maintenanceSvc, first.ID)
	require.NoError(t, equipmentSvc.RetireEquipment(context.Background(), second.ID))

	_, err := maintenanceSvc.UpdateMaintenance(context.Background(), maintenance.ID, dto.UpdateMaintenanceDTO{
		EquipmentID: null.Uint64From(second.ID),
	})

	assert.ErrorIs(t, err, apperrors.ErrEquipmentNotFound)
}

func TestUpdateMaintenanceCompletedImmutable(t *testing.T) {
	equipmentSvc, maintenanceSvc, _, _ := newTestEnv()
	equipment := createTestEquipment(t, equipmentSvc, "SN-025")
	maintenance := createTestMaintenance(t, maintenanceSvc, equipment.ID)
	ctx := context.Background()

	_, err := maintenanceSvc.TransitionStatus(ctx, maintenance.ID, constants.MaintenanceTerminado)
	require.NoError(t, err)

	description := "Попытка задним числом"
	_, err = maintenanceSvc.UpdateMaintenance(ctx, maintenance.ID, dto.UpdateMaintenanceDTO{
		Description: &description,
	})
	assert.ErrorIs(t, err, apperrors.ErrMaintenanceCompleted)
}

func TestSoftDeleteMaintenance(t *testing.T) {
	equipmentSvc, maintenanceSvc, _, _ := newTestEnv()
	equipment := createTestEquipment(t, equipmentSvc, "SN-030")
	maintenance := createTestMaintenance(t, maintenanceSvc, equipment.ID)
	ctx := context.Background()

	require.NoError(t, maintenanceSvc.SoftDeleteMaintenance(ctx, maintenance.ID))

	// Удалённая заявка невидима для чтения и повторного удаления.
	_, err := maintenanceSvc.FindMaintenance(ctx, maintenance.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, maintenanceSvc.SoftDeleteMaintenance(ctx, maintenance.ID), apperrors.ErrNotFound)
}

func TestSoftDeleteCompletedRejected(t *testing.T) {
	equipmentSvc, maintenanceSvc, _, _ := newTestEnv()
	equipment := createTestEquipment(t, equipmentSvc, "SN-031")
	maintenance := createTestMaintenance(t, maintenanceSvc, equipment.ID)
	ctx := context.Background()

	_, err := maintenanceSvc.TransitionStatus(ctx, maintenance.ID, constants.MaintenanceTerminado)
	require.NoError(t, err)

	err = maintenanceSvc.SoftDeleteMaintenance(ctx, maintenance.ID)
	assert.ErrorIs(t, err, apperrors.ErrMaintenanceCompleted)

	// Завершённая заявка остаётся читаемой.
	found, err := maintenanceSvc.FindMaintenance(ctx, maintenance.ID)
	require.NoError(t, err)
	assert.Equal(t, int16(constants.MaintenanceTerminado), found.Status)
}

// Списание оборудования не трогает существующие заявки: история видна,
// заявка остаётся изменяемой, снимок оборудования помечается как списанный.
func TestRetireEquipmentKeepsExistingMaintenances(t *testing.T) {
	equipmentSvc, maintenanceSvc, _, _ := newTestEnv()
	equipment := createTestEquipment(t, equipmentSvc, "SN-040")
	maintenance := createTestMaintenance(t, maintenanceSvc, equipment.ID)
	ctx := context.Background()

	require.NoError(t, equipmentSvc.RetireEquipment(ctx, equipment.ID))

	found, err := maintenanceSvc.FindMaintenance(ctx, maintenance.ID)
	require.NoError(t, err)
	assert.True(t, found.EquipmentRetired)

	// Заявку по списанному оборудованию можно довести до конца.
	_, err = maintenanceSvc.TransitionStatus(ctx, maintenance.ID, constants.MaintenanceTerminado)
	assert.NoError(t, err)
}

func TestGetMaintenancesFilterByStatus(t *testing.T) {
	equipmentSvc, maintenanceSvc, _, _ := newTestEnv()
	equipment := createTestEquipment(t, equipmentSvc, "SN-050")
	first := createTestMaintenance(t, maintenanceSvc, equipment.ID)
	second := createTestMaintenance(t, maintenanceSvc, equipment.ID)
	ctx := context.Background()

	_, err := maintenanceSvc.TransitionStatus(ctx, second.ID, constants.MaintenanceTerminado)
	require.NoError(t, err)

	pending := constants.MaintenancePendiente
	result, total, err := maintenanceSvc.GetMaintenances(ctx, dto.MaintenanceFilter{Status: &pending}, types.Filter{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, result, 1)
	assert.Equal(t, first.ID, result[0].ID)
}

func TestGetMaintenancesFilterByDateRange(t *testing.T) {
	equipmentSvc, maintenanceSvc, _, _ := newTestEnv()
	equipment := createTestEquipment(t, equipmentSvc, "SN-053")
	ctx := context.Background()

	createWithEntryDate := func(entryDate string) *dto.MaintenanceDTO {
		maintenance, err := maintenanceSvc.CreateMaintenance(ctx, dto.CreateMaintenanceDTO{
			EquipmentID: equipment.ID,
			Description: "Плановое обслуживание",
			EntryDate:   entryDate,
			ExitDate:    "2024-12-31",
		})
		require.NoError(t, err)
		return maintenance
	}

	createWithEntryDate("2024-01-10")
	inRange := createWithEntryDate("2024-02-15")
	createWithEntryDate("2024-03-20")

	dateFrom, err := time.Parse("2006-01-02", "2024-02-01")
	require.NoError(t, err)
	dateTo, err := time.Parse("2006-01-02", "2024-02-28")
	require.NoError(t, err)

	// Обе границы включительные, комбинируются по AND.
	result, total, err := maintenanceSvc.GetMaintenances(ctx,
		dto.MaintenanceFilter{DateFrom: &dateFrom, DateTo: &dateTo}, types.Filter{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, result, 1)
	assert.Equal(t, inRange.ID, result[0].ID)

	// Только нижняя граница: отсекается лишь январская заявка.
	result, _, err = maintenanceSvc.GetMaintenances(ctx,
		dto.MaintenanceFilter{DateFrom: &dateFrom}, types.Filter{Limit: 20})
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestGetMaintenancesFilterByEquipmentTypeIgnoresCase(t *testing.T) {
	equipmentSvc, maintenanceSvc, _, _ := newTestEnv()
	equipment := createTestEquipment(t, equipmentSvc, "SN-054")
	maintenance := createTestMaintenance(t, maintenanceSvc, equipment.ID)
	ctx := context.Background()

	equipmentType := "LAPTOP"
	result, _, err := maintenanceSvc.GetMaintenances(ctx,
		dto.MaintenanceFilter{EquipmentType: &equipmentType}, types.Filter{Limit: 20})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, maintenance.ID, result[0].ID)

	other := "printer"
	result, _, err = maintenanceSvc.GetMaintenances(ctx,
		dto.MaintenanceFilter{EquipmentType: &other}, types.Filter{Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestGetMaintenancesExcludesRetiredByDefault(t *testing.T) {
	equipmentSvc, maintenanceSvc, _, _ := newTestEnv()
	active := createTestEquipment(t, equipmentSvc, "SN-051")
	retired := createTestEquipment(t, equipmentSvc, "SN-052")
	createTestMaintenance(t, maintenanceSvc, active.ID)
	createTestMaintenance(t, maintenanceSvc, retired.ID)
	ctx := context.Background()

	require.NoError(t, equipmentSvc.RetireEquipment(ctx, retired.ID))

	result, _, err := maintenanceSvc.GetMaintenances(ctx, dto.MaintenanceFilter{}, types.Filter{Limit: 20})
	require.NoError(t, err)
	assert.Len(t, result, 1)

	result, _, err = maintenanceSvc.GetMaintenances(ctx, dto.MaintenanceFilter{IncludeRetired: true}, types.Filter{Limit: 20})
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

// Сквозной сценарий: оборудование -> заявка -> в работу -> завершение ->
// попытки изменить и удалить завершённую заявку отклоняются.
func TestMaintenanceFullLifecycle(t *testing.T) {
	equipmentSvc, maintenanceSvc, _, _ := newTestEnv()
	equipment := createTestEquipment(t, equipmentSvc, "SN-060")
	maintenance := createTestMaintenance(t, maintenanceSvc, equipment.ID)
	ctx := context.Background()

	_, err := maintenanceSvc.TransitionStatus(ctx, maintenance.ID, constants.MaintenanceEnProceso)
	require.NoError(t, err)
	_, err = maintenanceSvc.TransitionStatus(ctx, maintenance.ID, constants.MaintenanceTerminado)
	require.NoError(t, err)

	description := "правка"
	_, err = maintenanceSvc.UpdateMaintenance(ctx, maintenance.ID, dto.UpdateMaintenanceDTO{Description: &description})
	assert.ErrorIs(t, err, apperrors.ErrMaintenanceCompleted)

	assert.ErrorIs(t, maintenanceSvc.SoftDeleteMaintenance(ctx, maintenance.ID), apperrors.ErrMaintenanceCompleted)

	found, err := maintenanceSvc.FindMaintenance(ctx, maintenance.ID)
	require.NoError(t, err)
	assert.Equal(t, "Terminado", found.StatusName)
}
