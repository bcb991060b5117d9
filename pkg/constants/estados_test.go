package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaintenanceStatusString(t *testing.T) {
	assert.Equal(t, "Pendiente", MaintenancePendiente.String())
	assert.Equal(t, "En proceso", MaintenanceEnProceso.String())
	assert.Equal(t, "Terminado", MaintenanceTerminado.String())
	assert.Equal(t, "Desconocido", MaintenanceStatus(7).String())
}

func TestMaintenanceStatusIsValid(t *testing.T) {
	assert.True(t, MaintenancePendiente.IsValid())
	assert.True(t, MaintenanceEnProceso.IsValid())
	assert.True(t, MaintenanceTerminado.IsValid())
	assert.False(t, MaintenanceStatus(-1).IsValid())
	assert.False(t, MaintenanceStatus(3).IsValid())
}

func TestMaintenanceStatusIsFinal(t *testing.T) {
	assert.False(t, MaintenancePendiente.IsFinal())
	assert.False(t, MaintenanceEnProceso.IsFinal())
	assert.True(t, MaintenanceTerminado.IsFinal())
}

// Полная таблица переходов: разрешены только движения вперёд,
// из терминального статуса выхода нет.
func TestMaintenanceStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		name    string
		from    MaintenanceStatus
		to      MaintenanceStatus
		allowed bool
	}{
		{"pendiente -> en proceso", MaintenancePendiente, MaintenanceEnProceso, true},
		{"pendiente -> terminado", MaintenancePendiente, MaintenanceTerminado, true},
		{"en proceso -> terminado", MaintenanceEnProceso, MaintenanceTerminado, true},

		{"pendiente -> pendiente", MaintenancePendiente, MaintenancePendiente, false},
		{"en proceso -> pendiente", MaintenanceEnProceso, MaintenancePendiente, false},
		{"en proceso -> en proceso", MaintenanceEnProceso, MaintenanceEnProceso, false},
		{"terminado -> pendiente", MaintenanceTerminado, MaintenancePendiente, false},
		{"terminado -> en proceso", MaintenanceTerminado, MaintenanceEnProceso, false},
		{"terminado -> terminado", MaintenanceTerminado, MaintenanceTerminado, false},

		{"в неизвестный статус", MaintenancePendiente, MaintenanceStatus(5), false},
		{"из неизвестного статуса", MaintenanceStatus(5), MaintenanceTerminado, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}
