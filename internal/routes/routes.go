package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/controllers"
	"inventory-system/internal/repositories"
	"inventory-system/internal/services"
	"inventory-system/pkg/config"
	"inventory-system/pkg/middleware"
	"inventory-system/pkg/service"
)

// InitRouter собирает весь граф зависимостей и регистрирует маршруты.
// Публичный только /api/auth, остальное закрыто AuthMiddleware.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	logger *zap.Logger,
	cfg *config.Config,
) {
	logger.Info("InitRouter: начало создания маршрутов")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	// --- РЕПОЗИТОРИИ ---
	userRepo := repositories.NewUserRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, logger)
	maintenanceRepo := repositories.NewMaintenanceRepository(dbConn, logger)

	// --- СЕРВИСЫ ---
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, &cfg.Auth, logger)
	userService := services.NewUserService(userRepo, logger)
	equipmentService := services.NewEquipmentService(equipmentRepo, logger)
	maintenanceService := services.NewMaintenanceService(maintenanceRepo, equipmentRepo, logger)
	reportService := services.NewReportService(maintenanceRepo, equipmentRepo, logger)

	// --- КОНТРОЛЛЕРЫ ---
	authController := controllers.NewAuthController(authService, logger)
	userController := controllers.NewUserController(userService, logger)
	equipmentController := controllers.NewEquipmentController(equipmentService, logger)
	maintenanceController := controllers.NewMaintenanceController(maintenanceService, logger)
	reportController := controllers.NewReportController(reportService, logger)

	// --- РОУТЕРЫ ---
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, authController)
	runUserRouter(secureGroup, userController, authMW)
	runEquipmentRouter(secureGroup, equipmentController)
	runMaintenanceRouter(secureGroup, maintenanceController)
	runReportRouter(secureGroup, reportController)

	logger.Info("InitRouter: создание маршрутов завершено")
}
