package main

import (
	"strings"
	"time"

	"taxtracker/cmd/server/handlers"
	authHandlers "taxtracker/cmd/server/handlers/auth"
	catalogHandlers "taxtracker/cmd/server/handlers/catalog"
	clientHandlers "taxtracker/cmd/server/handlers/clients"
	corporationHandlers "taxtracker/cmd/server/handlers/corporations"
	dashboardHandlers "taxtracker/cmd/server/handlers/dashboard"
	"taxtracker/cmd/server/handlers/httperr"
	taskHandlers "taxtracker/cmd/server/handlers/tasks"
	userHandlers "taxtracker/cmd/server/handlers/users"
	"taxtracker/cmd/server/middlewares"
	"taxtracker/internal/clients/mongo"
	"taxtracker/internal/config"
	"taxtracker/internal/logger"
	authServices "taxtracker/internal/services/auth"
	catalogServices "taxtracker/internal/services/catalog"
	clientServices "taxtracker/internal/services/clients"
	corporationServices "taxtracker/internal/services/corporations"
	dashboardServices "taxtracker/internal/services/dashboard"
	taskServices "taxtracker/internal/services/tasks"
	"taxtracker/internal/utils/crypto"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const (
	RateLimitExpiration = 1 * time.Minute
)

// setupRouter configures and returns a Fiber app with all routes
func setupRouter(cfg config.Config) *fiber.App {

	// Initialize validator and register password validation
	v := validator.New()
	if err := crypto.RegisterPasswordValidator(v); err != nil {
		logger.L().Error("failed to register password validator", "err", err)
		panic(err)
	}

	// Validate JWT algorithm at boot
	alg := strings.ToUpper(cfg.JWTAlgorithm)
	switch alg {
	case "HS256":
		// Valid algorithm
	default:
		logger.L().Error(authServices.ErrUnsupportedJWTAlg.Error(), "algorithm", cfg.JWTAlgorithm)
		panic(authServices.ErrUnsupportedJWTAlg.Error() + ": " + cfg.JWTAlgorithm)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: httperr.Handler,
		Immutable:    true, // make Fiber copy all request-derived strings
	})

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Content-Type, Authorization",
	}))

	if cfg.RouteMetricsEnabled {
		middlewares.AttachMetrics(app)
	}

	// Health check endpoint, outside versioned API to appease scanners and to avoid logging
	app.Get("/healthz", handlers.Healthz)

	var v1 fiber.Router
	if cfg.RequestLoggingEnabled {
		v1 = app.Group("/api/v1", fiberlogger.New())
		logger.L().Info("request logging enabled")
	} else {
		v1 = app.Group("/api/v1")
		logger.L().Info("request logging disabled")
	}

	// Repositories
	db := mongo.DB()
	usersRepo := mongo.NewUsersRepo(db)
	clientsRepo := mongo.NewClientsRepo(db)
	corporationsRepo := mongo.NewCorporationsRepo(db)
	personalTaxRepo := mongo.NewPersonalTaxRepo(db)
	corporationTaxRepo := mongo.NewCorporationTaxRepo(db)
	payrollRepo := mongo.NewPayrollRepo(db)
	personalTaxServicesRepo := mongo.NewPersonalTaxServicesRepo(db)
	payrollServicesRepo := mongo.NewPayrollServicesRepo(db)
	dashboardRepo := mongo.NewDashboardRepo(db)

	// Services
	authSvc := authServices.NewService(usersRepo, cfg, logger.L())
	clientsSvc := clientServices.NewService(clientsRepo, logger.L())
	corporationsSvc := corporationServices.NewService(corporationsRepo, logger.L())
	tasksSvc := taskServices.NewService(personalTaxRepo, corporationTaxRepo, payrollRepo, logger.L())
	catalogSvc := catalogServices.NewService(personalTaxServicesRepo, payrollServicesRepo, logger.L())
	dashboardSvc := dashboardServices.NewService(dashboardRepo, usersRepo, logger.L())

	// Handlers
	authH := authHandlers.NewHandlers(authSvc, v)
	usersH := userHandlers.NewHandlers(authSvc, dashboardSvc, v)
	clientsH := clientHandlers.NewHandlers(clientsSvc, v)
	corporationsH := corporationHandlers.NewHandlers(corporationsSvc, v)
	tasksH := taskHandlers.NewHandlers(tasksSvc, v)
	catalogH := catalogHandlers.NewHandlers(catalogSvc, v)
	dashboardH := dashboardHandlers.NewHandlers(dashboardSvc)

	jwtMiddleware := middlewares.JWT(cfg, authSvc)
	adminOnly := middlewares.RequireAdmin
	loginLimiter := middlewares.BuildRateLimiter(cfg.LoginRatePerMin, RateLimitExpiration)

	// Session routes
	usersGrp := v1.Group("/users")
	usersGrp.Post("/login", loginLimiter, authH.Login)
	usersGrp.Get("/me", jwtMiddleware, authH.Me)

	// Staff management (admin only)
	usersGrp.Get("/", jwtMiddleware, adminOnly, usersH.List)
	usersGrp.Post("/", jwtMiddleware, adminOnly, usersH.Create)
	usersGrp.Get("/:id/workload", jwtMiddleware, adminOnly, usersH.Workload)
	usersGrp.Get("/:id", jwtMiddleware, adminOnly, usersH.Get)
	usersGrp.Put("/:id", jwtMiddleware, adminOnly, usersH.Update)
	usersGrp.Delete("/:id", jwtMiddleware, adminOnly, usersH.Delete)

	// Client records
	clientsGrp := v1.Group("/clients", jwtMiddleware)
	clientsGrp.Get("/", clientsH.List)
	clientsGrp.Post("/upsert", clientsH.Upsert)
	clientsGrp.Get("/:id", clientsH.Get)

	// Corporation records
	corporationsGrp := v1.Group("/corporations", jwtMiddleware)
	corporationsGrp.Get("/", corporationsH.List)
	corporationsGrp.Post("/upsert", corporationsH.Upsert)
	corporationsGrp.Get("/:id", corporationsH.Get)

	// Task boards
	personalTaxGrp := v1.Group("/personal-tax", jwtMiddleware)
	personalTaxGrp.Get("/", tasksH.ListPersonalTax)
	personalTaxGrp.Post("/upsert", tasksH.UpsertPersonalTax)
	personalTaxGrp.Get("/:id", tasksH.GetPersonalTax)

	corporationTaxGrp := v1.Group("/corporation-tax", jwtMiddleware)
	corporationTaxGrp.Get("/", tasksH.ListCorporationTax)
	corporationTaxGrp.Post("/upsert", tasksH.UpsertCorporationTax)
	corporationTaxGrp.Get("/:id", tasksH.GetCorporationTax)

	payrollGrp := v1.Group("/corporation-payroll", jwtMiddleware)
	payrollGrp.Get("/", tasksH.ListPayroll)
	payrollGrp.Post("/upsert", tasksH.UpsertPayroll)
	payrollGrp.Get("/:id", tasksH.GetPayroll)

	// Price lists: readable by any staff, writable by admins
	personalTaxServicesGrp := v1.Group("/personal-tax-services", jwtMiddleware)
	personalTaxServicesGrp.Get("/", catalogH.ListPersonalTaxServices)
	personalTaxServicesGrp.Post("/upsert", adminOnly, catalogH.UpsertPersonalTaxService)
	personalTaxServicesGrp.Delete("/:id", adminOnly, catalogH.DeletePersonalTaxService)

	payrollServicesGrp := v1.Group("/payroll-services", jwtMiddleware)
	payrollServicesGrp.Get("/", catalogH.ListPayrollServices)
	payrollServicesGrp.Post("/upsert", adminOnly, catalogH.UpsertPayrollService)
	payrollServicesGrp.Delete("/:id", adminOnly, catalogH.DeletePayrollService)

	// Dashboard and admin statistics
	v1.Get("/dashboard", jwtMiddleware, dashboardH.Snapshot)
	v1.Get("/admin/stats", jwtMiddleware, adminOnly, dashboardH.AdminStats)

	return app
}
