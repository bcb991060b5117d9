package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
	"inventory-system/pkg/constants"
	"inventory-system/pkg/middleware"
)

// Администрирование пользователей доступно только роли admin.
// Смена собственного пароля открыта любому аутентифицированному.
func runUserRouter(secure *echo.Group, userCtrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	secure.PUT("/usuarios/me/contrasena", userCtrl.ChangePassword)

	adminGroup := secure.Group("/usuarios", authMW.RequireRoles(constants.RoleAdmin))
	{
		adminGroup.GET("", userCtrl.GetUsers)
		adminGroup.GET("/:id", userCtrl.FindUser)
		adminGroup.PUT("/:id", userCtrl.UpdateUser)
		adminGroup.DELETE("/:id", userCtrl.DeleteUser)
	}
}
