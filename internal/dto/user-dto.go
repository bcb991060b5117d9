package dto

type UpdateUserDTO struct {
	Name  *string `json:"nombre,omitempty" validate:"omitempty,min=1"`
	Login *string `json:"usuario,omitempty" validate:"omitempty,min=3"`
}

type ChangePasswordDTO struct {
	NewPassword string `json:"nueva_contrasena" validate:"required,min=6"`
}

type UserDTO struct {
	ID        uint64 `json:"id_usuario"`
	Name      string `json:"nombre"`
	Login     string `json:"usuario"`
	Role      string `json:"rol"`
	Active    bool   `json:"estado"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
