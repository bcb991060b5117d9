package entities

import (
	"time"

	"inventory-system/pkg/constants"
	"inventory-system/pkg/types"
)

// Maintenance - заявка на обслуживание оборудования (таблица mantenimientos).
// Status хранит только статус работ; мягкое удаление - отдельный флаг Deleted.
type Maintenance struct {
	ID          uint64                      `json:"id_mantenimiento"`
	EquipmentID uint64                      `json:"id_equipo"`
	Description string                      `json:"descripcion"`
	EntryDate   time.Time                   `json:"fecha_entrada"`
	ExitDate    time.Time                   `json:"fecha_salida"`
	Status      constants.MaintenanceStatus `json:"estado"`
	Deleted     bool                        `json:"eliminado"`

	types.BaseEntity

	// Снимок связанного оборудования из JOIN (не колонки mantenimientos)
	Equipment *Equipment `json:"equipo,omitempty" db:"-"`
}
