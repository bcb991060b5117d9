package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")
	ErrTokenIsNotRefresh    = fmt.Errorf("токен не является refresh-токеном")
	ErrTokenIsNotAccess     = fmt.Errorf("токен не является access-токеном")

	// Авторизация
	ErrEmptyAuthHeader    = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader  = fmt.Errorf("неверный формат заголовка авторизации")
	ErrInvalidCredentials = fmt.Errorf("неверные учётные данные")
	ErrUnauthorized       = fmt.Errorf("неавторизован")
	ErrForbidden          = fmt.Errorf("доступ запрещён")
	ErrUserDisabled       = fmt.Errorf("пользователь отключён или удалён")

	// Контекст
	ErrUserIDNotFoundInContext = fmt.Errorf("UserID не найден в контексте запроса")
	ErrInvalidUserID           = fmt.Errorf("недопустимый UserID")

	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")

	// Оборудование
	ErrEquipmentNotFound = fmt.Errorf("оборудование не найдено или списано")
	ErrEquipmentRetired  = fmt.Errorf("оборудование списано, операция невозможна")
	ErrDuplicateSerial   = fmt.Errorf("оборудование с таким серийным номером уже существует")

	// Пользователи
	ErrDuplicateLogin = fmt.Errorf("пользователь с таким логином уже существует")

	// Мантенимьенто (жизненный цикл заявки на обслуживание)
	ErrMaintenanceCompleted = fmt.Errorf("обслуживание завершено и больше не может изменяться")
	ErrInvalidTransition    = fmt.Errorf("недопустимый переход статуса обслуживания")
)

// Карта "бизнес-ошибка -> HTTP-статус". Всё, чего здесь нет, уходит как 500.
var statusByError = map[error]int{
	ErrInvalidToken:            http.StatusUnauthorized,
	ErrTokenExpired:            http.StatusUnauthorized,
	ErrTokenIsNotRefresh:       http.StatusUnauthorized,
	ErrTokenIsNotAccess:        http.StatusUnauthorized,
	ErrEmptyAuthHeader:         http.StatusUnauthorized,
	ErrInvalidAuthHeader:       http.StatusUnauthorized,
	ErrInvalidCredentials:      http.StatusUnauthorized,
	ErrUnauthorized:            http.StatusUnauthorized,
	ErrForbidden:               http.StatusForbidden,
	ErrUserDisabled:            http.StatusConflict,
	ErrUserIDNotFoundInContext: http.StatusUnauthorized,
	ErrNotFound:                http.StatusNotFound,
	ErrBadRequest:              http.StatusBadRequest,
	ErrEquipmentNotFound:       http.StatusNotFound,
	ErrEquipmentRetired:        http.StatusConflict,
	ErrDuplicateSerial:         http.StatusConflict,
	ErrDuplicateLogin:          http.StatusConflict,
	ErrMaintenanceCompleted:    http.StatusConflict,
	ErrInvalidTransition:       http.StatusConflict,
}

// HttpError - ошибка, которая знает свой HTTP-статус и деталь для фронта.
type HttpError struct {
	Code    int                    `json:"-"`
	Message string                 `json:"message"`
	Err     error                  `json:"-"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

// Classify превращает произвольную ошибку сервиса в HttpError.
// Бизнес-ошибки получают свой статус из карты, остальные - 500 без деталей.
func Classify(err error) *HttpError {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	var invalidInput *InvalidInputError
	if errors.As(err, &invalidInput) {
		return NewHttpError(http.StatusBadRequest, invalidInput.Message, err, nil)
	}
	for sentinel, code := range statusByError {
		if errors.Is(err, sentinel) {
			return NewHttpError(code, sentinel.Error(), err, nil)
		}
	}
	return NewHttpError(http.StatusInternalServerError, "внутренняя ошибка сервера", err, nil)
}

// Кастомные типы ошибок
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
