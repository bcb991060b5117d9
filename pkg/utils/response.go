package utils

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "inventory-system/pkg/errors"
)

type HttpResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Total   *uint64     `json:"total_count,omitempty"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	}
	if len(total) > 0 {
		response.Total = &total[0]
	}
	return ctx.JSON(code, response)
}

// ErrorResponse переводит ошибку сервиса в структурированный JSON-ответ.
// Ошибки валидации разворачиваются в карту "поле -> причина",
// бизнес-ошибки получают статус из pkg/errors, остальное уходит как 500.
func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]interface{}, len(validationErrs))
		for _, fe := range validationErrs {
			details[fe.Field()] = fe.Tag()
		}
		return ctx.JSON(http.StatusBadRequest, &HttpResponse{
			Status:  false,
			Message: "ошибка валидации данных",
			Details: details,
		})
	}

	httpErr := apperrors.Classify(err)
	if httpErr.Code >= http.StatusInternalServerError {
		logger.Error("внутренняя ошибка при обработке запроса",
			zap.String("uri", ctx.Request().RequestURI),
			zap.Error(err),
		)
	}

	return ctx.JSON(httpErr.Code, &HttpResponse{
		Status:  false,
		Message: httpErr.Message,
		Details: httpErr.Details,
	})
}
