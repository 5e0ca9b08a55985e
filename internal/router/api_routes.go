package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"logistics-web/internal/config"
	"logistics-web/internal/handler"
	"logistics-web/internal/middleware"
	"logistics-web/internal/repository"
	"logistics-web/internal/service"
)

func SetupAPIRoutes(
	router fiber.Router,
	db *sqlx.DB,
	redis *redis.Client,
	cfg *config.Config,
) {
	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	shipmentRepo := repository.NewShipmentRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	advanceRepo := repository.NewAdvanceRepository(db)
	payrollRepo := repository.NewPayrollRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	importRepo := repository.NewImportRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg)
	excelService := service.NewExcelService()
	rollupService := service.NewRollupService(cfg.BaseCurrency)

	// Initialize Asynq client (optional - only if Redis is available)
	var asynqClient *asynq.Client
	if redis != nil {
		asynqClient = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.AsynqRedisAddr,
			Password: cfg.AsynqRedisPassword,
			DB:       cfg.AsynqRedisDB,
		})
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	shipmentHandler := handler.NewShipmentHandler(shipmentRepo)
	customerHandler := handler.NewCustomerHandler(customerRepo)
	advanceHandler := handler.NewAdvanceHandler(advanceRepo, payrollRepo, employeeRepo, rollupService)
	payrollHandler := handler.NewPayrollHandler(payrollRepo, employeeRepo)
	financeHandler := handler.NewFinanceHandler(ledgerRepo, rollupService)
	importHandler := handler.NewImportHandler(importRepo, excelService, asynqClient, redis, cfg)

	// Public routes
	auth := router.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)
	auth.Post("/logout", authHandler.Logout)

	// Public tracking lookup
	router.Get("/track/:reference", shipmentHandler.Track)

	// Protected routes
	protected := router.Group("", middleware.AuthMiddleware(cfg))

	// Auth routes
	protected.Get("/auth/me", authHandler.Me)

	// Shipment routes
	shipments := protected.Group("/shipments")
	shipments.Get("/", shipmentHandler.GetShipments)
	shipments.Get("/:id", shipmentHandler.GetShipment)
	shipments.Post("/", shipmentHandler.CreateShipment)
	shipments.Put("/:id", shipmentHandler.UpdateShipment)
	shipments.Delete("/:id", shipmentHandler.DeleteShipment)

	// Customer routes
	customers := protected.Group("/customers")
	customers.Get("/", customerHandler.GetCustomers)
	customers.Get("/:id", customerHandler.GetCustomer)
	customers.Post("/", customerHandler.CreateCustomer)
	customers.Put("/:id", customerHandler.UpdateCustomer)
	customers.Delete("/:id", customerHandler.DeleteCustomer)

	// Advance routes
	advances := protected.Group("/advances")
	advances.Get("/", advanceHandler.GetAdvances)
	advances.Get("/summary", advanceHandler.GetSummary)
	advances.Post("/", advanceHandler.CreateAdvance)
	advances.Delete("/:id", advanceHandler.DeleteAdvance)

	// Payroll routes
	payroll := protected.Group("/payroll")
	payroll.Get("/employees", payrollHandler.GetEmployees)
	payroll.Get("/", payrollHandler.GetPayrolls)
	payroll.Post("/", payrollHandler.CreatePayroll)

	// Finance ledger routes
	finance := protected.Group("/finance")
	finance.Get("/entries", financeHandler.GetEntries)
	finance.Post("/entries", financeHandler.CreateEntry)
	finance.Delete("/entries/:id", financeHandler.DeleteEntry)
	finance.Get("/rollup", financeHandler.GetRollup)

	// Import routes
	imports := protected.Group("/imports")
	imports.Post("/", importHandler.UploadFile)
	imports.Get("/", importHandler.GetSessions)
	imports.Get("/template", importHandler.DownloadTemplate)
	imports.Get("/progress/:session_code", importHandler.GetProgress)
	imports.Get("/:id", importHandler.GetSessionDetail)
	imports.Get("/:id/log", importHandler.GetLog)
	imports.Post("/:id/cancel", importHandler.CancelSession)
	imports.Delete("/:id", importHandler.DeleteSession)
}
