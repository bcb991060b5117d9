package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
)

// DELETE /equipos/:id - это списание, а не удаление строки.
func runEquipmentRouter(secure *echo.Group, equipmentCtrl *controllers.EquipmentController) {
	secure.GET("/equipos", equipmentCtrl.GetEquipments)
	secure.GET("/equipos/:id", equipmentCtrl.FindEquipment)
	secure.POST("/equipos", equipmentCtrl.CreateEquipment)
	secure.PUT("/equipos/:id", equipmentCtrl.UpdateEquipment)
	secure.DELETE("/equipos/:id", equipmentCtrl.RetireEquipment)
}
