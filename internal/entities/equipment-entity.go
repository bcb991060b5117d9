package entities

import (
	"time"

	"inventory-system/pkg/types"
)

// Equipment - единица ИТ-оборудования (таблица equipos).
// Удаление всегда мягкое: строка остаётся, Active переключается в false.
type Equipment struct {
	ID           uint64    `json:"id_equipo"`
	Description  string    `json:"descripcion"`
	Type         string    `json:"tipo"`
	SerialNumber string    `json:"numero_serie"`
	RegisteredAt time.Time `json:"fecha_registro"`
	Active       bool      `json:"estado"`

	types.BaseEntity
}
