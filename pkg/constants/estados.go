package constants

// --- СТАТУСЫ ОБСЛУЖИВАНИЯ (Совпадает с кодами в БД) ---
// Поле estado в mantenimientos хранит только статус работ.
// Мягкое удаление живёт в отдельном флаге eliminado и сюда не примешивается.
type MaintenanceStatus int16

const (
	MaintenancePendiente MaintenanceStatus = 0
	MaintenanceEnProceso MaintenanceStatus = 1
	MaintenanceTerminado MaintenanceStatus = 2
)

var maintenanceStatusNames = map[MaintenanceStatus]string{
	MaintenancePendiente: "Pendiente",
	MaintenanceEnProceso: "En proceso",
	MaintenanceTerminado: "Terminado",
}

func (s MaintenanceStatus) String() string {
	if name, ok := maintenanceStatusNames[s]; ok {
		return name
	}
	return "Desconocido"
}

// IsValid сообщает, является ли значение одним из трёх известных статусов.
func (s MaintenanceStatus) IsValid() bool {
	_, ok := maintenanceStatusNames[s]
	return ok
}

// IsFinal - терминальный статус, из которого нет переходов.
func (s MaintenanceStatus) IsFinal() bool {
	return s == MaintenanceTerminado
}

// CanTransitionTo - единственное место, где закодирована машина состояний:
// Pendiente -> EnProceso -> Terminado, плюс прямой Pendiente -> Terminado.
// Переходы строго вперёд, из Terminado выхода нет.
func (s MaintenanceStatus) CanTransitionTo(target MaintenanceStatus) bool {
	if !s.IsValid() || !target.IsValid() {
		return false
	}
	if s.IsFinal() {
		return false
	}
	return target > s
}
