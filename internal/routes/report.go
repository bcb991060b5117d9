package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
)

func runReportRouter(secure *echo.Group, reportCtrl *controllers.ReportController) {
	secure.GET("/reportes/mantenimientos", reportCtrl.GetMaintenanceReport)
	secure.GET("/reportes/equipos", reportCtrl.GetEquipmentReport)
}
