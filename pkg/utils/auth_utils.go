package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword хеширует пароль через bcrypt со стандартной стоимостью.
// Сам bcrypt-хеш уже содержит соль, отдельно её хранить не нужно.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("не удалось хешировать пароль: %w", err)
	}
	return string(bytes), nil
}

// ComparePasswords сверяет хеш из базы с паролем из запроса.
// Возвращает bcrypt.ErrMismatchedHashAndPassword при несовпадении.
func ComparePasswords(hashedPassword string, plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
}

// CustomValidator подключает go-playground/validator к echo:
// Bind заполняет структуру, ctx.Validate проверяет validate-теги.
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator(v *validator.Validate) *CustomValidator {
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
