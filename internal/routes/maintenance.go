package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
)

func runMaintenanceRouter(secure *echo.Group, maintenanceCtrl *controllers.MaintenanceController) {
	secure.GET("/mantenimientos", maintenanceCtrl.GetMaintenances)
	secure.GET("/mantenimientos/:id", maintenanceCtrl.FindMaintenance)
	secure.POST("/mantenimientos", maintenanceCtrl.CreateMaintenance)
	secure.PUT("/mantenimientos/:id", maintenanceCtrl.UpdateMaintenance)
	secure.PATCH("/mantenimientos/:id/estado", maintenanceCtrl.TransitionStatus)
	secure.DELETE("/mantenimientos/:id", maintenanceCtrl.DeleteMaintenance)
}
