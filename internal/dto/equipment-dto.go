package dto

type CreateEquipmentDTO struct {
	Description  string `json:"descripcion" validate:"required"`
	Type         string `json:"tipo" validate:"required"`
	SerialNumber string `json:"numero_serie" validate:"required"`
	RegisteredAt string `json:"fecha_registro" validate:"required,datetime=2006-01-02"`
}

type UpdateEquipmentDTO struct {
	Description  *string `json:"descripcion,omitempty" validate:"omitempty,min=1"`
	Type         *string `json:"tipo,omitempty" validate:"omitempty,min=1"`
	SerialNumber *string `json:"numero_serie,omitempty" validate:"omitempty,min=1"`
	RegisteredAt *string `json:"fecha_registro,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type EquipmentDTO struct {
	ID           uint64 `json:"id_equipo"`
	Description  string `json:"descripcion"`
	Type         string `json:"tipo"`
	SerialNumber string `json:"numero_serie"`
	RegisteredAt string `json:"fecha_registro"`
	Active       bool   `json:"estado"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}
