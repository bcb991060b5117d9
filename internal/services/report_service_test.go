package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/pkg/constants"
)

func newReportTestEnv() (EquipmentServiceInterface, MaintenanceServiceInterface, ReportServiceInterface) {
	logger := zap.NewNop()
	equipmentRepo := newFakeEquipmentRepo()
	maintenanceRepo := newFakeMaintenanceRepo(equipmentRepo)
	equipmentSvc := NewEquipmentService(equipmentRepo, logger)
	maintenanceSvc := NewMaintenanceService(maintenanceRepo, equipmentRepo, logger)
	reportSvc := NewReportService(maintenanceRepo, equipmentRepo, logger)
	return equipmentSvc, maintenanceSvc, reportSvc
}

func TestGetEquipmentReportExcludesRetired(t *testing.T) {
	equipmentSvc, _, reportSvc := newReportTestEnv()
	active := createTestEquipment(t, equipmentSvc, "SN-REP-1")
	retired := createTestEquipment(t, equipmentSvc, "SN-REP-2")

	require.NoError(t, equipmentSvc.RetireEquipment(context.Background(), retired.ID))

	report, err := reportSvc.GetEquipmentReport(context.Background())
	require.NoError(t, err)

	require.Len(t, report, 1)
	assert.Equal(t, active.ID, report[0].ID)
	assert.Equal(t, "SN-REP-1", report[0].SerialNumber)
	assert.True(t, report[0].Active)
}

func TestGetEquipmentReportEmptyPark(t *testing.T) {
	_, _, reportSvc := newReportTestEnv()

	report, err := reportSvc.GetEquipmentReport(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report)
}

func TestGetMaintenanceReportAppliesFilter(t *testing.T) {
	equipmentSvc, maintenanceSvc, reportSvc := newReportTestEnv()
	equipment := createTestEquipment(t, equipmentSvc, "SN-REP-3")
	first := createTestMaintenance(t, maintenanceSvc, equipment.ID)
	createTestMaintenance(t, maintenanceSvc, equipment.ID)

	_, err := maintenanceSvc.TransitionStatus(context.Background(), first.ID, constants.MaintenanceEnProceso)
	require.NoError(t, err)

	status := constants.MaintenanceEnProceso
	report, err := reportSvc.GetMaintenanceReport(context.Background(), dto.MaintenanceFilter{Status: &status})
	require.NoError(t, err)

	require.Len(t, report, 1)
	assert.Equal(t, first.ID, report[0].ID)
	assert.Equal(t, "En proceso", report[0].StatusName)
}

func TestGetMaintenanceReportDateRange(t *testing.T) {
	equipmentSvc, maintenanceSvc, reportSvc := newReportTestEnv()
	equipment := createTestEquipment(t, equipmentSvc, "SN-REP-4")
	createTestMaintenance(t, maintenanceSvc, equipment.ID)

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	report, err := reportSvc.GetMaintenanceReport(context.Background(), dto.MaintenanceFilter{DateFrom: &from})
	require.NoError(t, err)
	assert.Empty(t, report)
}
