package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/services"
	"inventory-system/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// GetMaintenanceReport отдаёт отчёт по заявкам. По умолчанию JSON,
// при format=xlsx выгружается файл Excel.
func (c *ReportController) GetMaintenanceReport(ctx echo.Context) error {
	query := ctx.Request().URL.Query()
	filter := parseMaintenanceFilter(query)
	format := strings.ToLower(ctx.QueryParam("format"))

	c.logger.Debug("запрос отчёта по заявкам", zap.Any("filter", filter), zap.String("format", format))

	data, err := c.reportService.GetMaintenanceReport(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, data)
	}

	return utils.SuccessResponse(ctx, data, "Отчёт успешно сформирован", http.StatusOK, uint64(len(data)))
}

// GetEquipmentReport отдаёт сводку по действующему оборудованию,
// JSON либо xlsx при format=xlsx.
func (c *ReportController) GetEquipmentReport(ctx echo.Context) error {
	format := strings.ToLower(ctx.QueryParam("format"))

	data, err := c.reportService.GetEquipmentReport(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithEquipmentXLSX(ctx, data)
	}

	return utils.SuccessResponse(ctx, data, "Отчёт успешно сформирован", http.StatusOK, uint64(len(data)))
}

var reportHeaders = []string{
	"№", "ID заявки", "ID оборудования", "Тип оборудования", "Серийный номер",
	"Описание работ", "Дата приёма", "Дата выдачи", "Статус", "Оборудование списано",
}

func rowToSlice(index int, item dto.MaintenanceDTO) []interface{} {
	retired := "нет"
	if item.EquipmentRetired {
		retired = "да"
	}
	return []interface{}{
		index, item.ID, item.EquipmentID, item.EquipmentType, item.SerialNumber,
		item.Description, item.EntryDate, item.ExitDate, item.StatusName, retired,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, data []dto.MaintenanceDTO) error {
	f := excelize.NewFile()
	sheet := "Отчёт по обслуживанию"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &reportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "J1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := rowToSlice(i+1, item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "D", "E", 22)
	f.SetColWidth(sheet, "F", "F", 40)
	f.SetColWidth(sheet, "G", "J", 18)

	return writeXLSX(ctx, f, fmt.Sprintf("reporte_mantenimientos_%s.xlsx", time.Now().Format("2006-01-02")))
}

var equipmentReportHeaders = []string{
	"№", "ID оборудования", "Описание", "Тип", "Серийный номер", "Дата регистрации",
}

func (c *ReportController) respondWithEquipmentXLSX(ctx echo.Context, data []dto.EquipmentDTO) error {
	f := excelize.NewFile()
	sheet := "Парк оборудования"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &equipmentReportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "F1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			i + 1, item.ID, item.Description, item.Type, item.SerialNumber, item.RegisteredAt,
		}
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "C", "C", 40)
	f.SetColWidth(sheet, "D", "F", 22)

	return writeXLSX(ctx, f, fmt.Sprintf("reporte_equipos_%s.xlsx", time.Now().Format("2006-01-02")))
}

func writeXLSX(ctx echo.Context, f *excelize.File, fileName string) error {
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
