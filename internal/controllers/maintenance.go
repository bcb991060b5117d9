package controllers

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"inventory-system/internal/dto"
	"inventory-system/internal/services"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type MaintenanceController struct {
	maintenanceService services.MaintenanceServiceInterface
	logger             *zap.Logger
}

func NewMaintenanceController(
	service services.MaintenanceServiceInterface,
	logger *zap.Logger,
) *MaintenanceController {
	return &MaintenanceController{
		maintenanceService: service,
		logger:             logger,
	}
}

// parseMaintenanceFilter собирает фильтр списка заявок из query-параметров:
// estado, fecha_desde, fecha_hasta, tipo_equipo, incluir_bajas.
// Некорректные значения отбрасываются молча, фильтр по ним не применяется.
func parseMaintenanceFilter(query url.Values) dto.MaintenanceFilter {
	var filter dto.MaintenanceFilter

	if raw := query.Get("estado"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 16); err == nil {
			status := constants.MaintenanceStatus(v)
			if status.IsValid() {
				filter.Status = &status
			}
		}
	}
	if raw := query.Get("fecha_desde"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.DateFrom = &t
		}
	}
	if raw := query.Get("fecha_hasta"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.DateTo = &t
		}
	}
	if raw := query.Get("tipo_equipo"); raw != "" {
		filter.EquipmentType = &raw
	}
	if raw := query.Get("incluir_bajas"); raw != "" {
		filter.IncludeRetired, _ = strconv.ParseBool(raw)
	}

	return filter
}

func (c *MaintenanceController) GetMaintenances(ctx echo.Context) error {
	query := ctx.Request().URL.Query()
	filter := parseMaintenanceFilter(query)
	pagination := utils.ParsePaginationFromQuery(query)

	res, total, err := c.maintenanceService.GetMaintenances(ctx.Request().Context(), filter, pagination)
	if err != nil {
		c.logger.Error("GetMaintenances: ошибка при получении списка заявок", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Список заявок успешно получен", http.StatusOK, total)
}

func (c *MaintenanceController) FindMaintenance(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(
				http.StatusBadRequest,
				"Неверный формат ID заявки",
				err,
				map[string]interface{}{"param": ctx.Param("id")},
			),
			c.logger,
		)
	}

	res, err := c.maintenanceService.FindMaintenance(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Заявка успешно найдена", http.StatusOK)
}

func (c *MaintenanceController) CreateMaintenance(ctx echo.Context) error {
	var payload dto.CreateMaintenanceDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("CreateMaintenance: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(
				http.StatusBadRequest,
				"Неверный формат данных в теле запроса",
				err,
				nil,
			),
			c.logger,
		)
	}

	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.maintenanceService.CreateMaintenance(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateMaintenance: ошибка при создании заявки",
			zap.Uint64("id_equipo", payload.EquipmentID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Заявка успешно создана", http.StatusCreated)
}

func (c *MaintenanceController) UpdateMaintenance(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(
				http.StatusBadRequest,
				"Неверный формат ID заявки",
				err,
				map[string]interface{}{"param": ctx.Param("id")},
			),
			c.logger,
		)
	}

	var payload dto.UpdateMaintenanceDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("UpdateMaintenance: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(
				http.StatusBadRequest,
				"Неверный формат данных в теле запроса",
				err,
				nil,
			),
			c.logger,
		)
	}

	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.maintenanceService.UpdateMaintenance(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("UpdateMaintenance: ошибка при обновлении заявки", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Заявка успешно обновлена", http.StatusOK)
}

// TransitionStatus переводит заявку в новый статус. Допустимы только
// движения вперёд: 0 -> 1, 0 -> 2, 1 -> 2. Терминальная заявка не меняется.
func (c *MaintenanceController) TransitionStatus(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(
				http.StatusBadRequest,
				"Неверный формат ID заявки",
				err,
				map[string]interface{}{"param": ctx.Param("id")},
			),
			c.logger,
		)
	}

	var payload dto.TransitionStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("TransitionStatus: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(
				http.StatusBadRequest,
				"Неверный формат данных в теле запроса",
				err,
				nil,
			),
			c.logger,
		)
	}

	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	target := constants.MaintenanceStatus(*payload.Status)
	res, err := c.maintenanceService.TransitionStatus(ctx.Request().Context(), id, target)
	if err != nil {
		c.logger.Error("TransitionStatus: ошибка при смене статуса заявки",
			zap.Uint64("id", id), zap.Int16("estado", *payload.Status), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Статус заявки успешно обновлён", http.StatusOK)
}

func (c *MaintenanceController) DeleteMaintenance(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(
				http.StatusBadRequest,
				"Неверный формат ID заявки",
				err,
				map[string]interface{}{"param": ctx.Param("id")},
			),
			c.logger,
		)
	}

	if err := c.maintenanceService.SoftDeleteMaintenance(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteMaintenance: ошибка при удалении заявки", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, struct{}{}, "Заявка успешно удалена", http.StatusOK)
}
