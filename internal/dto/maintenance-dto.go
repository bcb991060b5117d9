package dto

import (
	"time"

	"github.com/aarondl/null/v8"

	"inventory-system/pkg/constants"
)

type CreateMaintenanceDTO struct {
	EquipmentID uint64 `json:"id_equipo" validate:"required,gt=0"`
	Description string `json:"descripcion" validate:"required"`
	EntryDate   string `json:"fecha_entrada" validate:"required,datetime=2006-01-02"`
	ExitDate    string `json:"fecha_salida" validate:"required,datetime=2006-01-02"`
}

// UpdateMaintenanceDTO обновляет только поля заявки, статус не трогает.
// Перепривязка id_equipo - опциональна, поэтому null.Uint64.
type UpdateMaintenanceDTO struct {
	Description *string     `json:"descripcion,omitempty" validate:"omitempty,min=1"`
	EntryDate   *string     `json:"fecha_entrada,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ExitDate    *string     `json:"fecha_salida,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EquipmentID null.Uint64 `json:"id_equipo,omitempty" validate:"-"`
}

// TransitionStatusDTO - явный запрос на смену статуса. Указатель, чтобы
// отличить "не прислали" от нуля.
type TransitionStatusDTO struct {
	Status *int16 `json:"estado" validate:"required,gte=0,lte=2"`
}

// MaintenanceFilter - типизированный фильтр списка заявок: все поля
// опциональны и комбинируются по AND.
type MaintenanceFilter struct {
	Status         *constants.MaintenanceStatus
	DateFrom       *time.Time
	DateTo         *time.Time
	EquipmentType  *string
	IncludeRetired bool
}

type MaintenanceDTO struct {
	ID          uint64 `json:"id_mantenimiento"`
	EquipmentID uint64 `json:"id_equipo"`
	Description string `json:"descripcion"`
	EntryDate   string `json:"fecha_entrada"`
	ExitDate    string `json:"fecha_salida"`
	Status      int16  `json:"estado"`
	StatusName  string `json:"estado_mantenimiento"`

	// Снимок оборудования из JOIN
	EquipmentType    string `json:"tipo_equipo"`
	SerialNumber     string `json:"numero_serie"`
	EquipmentRetired bool   `json:"equipo_dado_de_baja"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
