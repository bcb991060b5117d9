package entities

import (
	"inventory-system/pkg/types"
)

// User - учётная запись (таблица usuarios). Пароль наружу не отдаётся.
type User struct {
	ID       uint64 `json:"id_usuario"`
	Name     string `json:"nombre"`
	Login    string `json:"usuario"`
	Password string `json:"-"`
	Role     string `json:"rol"`
	Active   bool   `json:"estado"`

	types.BaseEntity
}
