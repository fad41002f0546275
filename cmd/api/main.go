package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/ksalazar-dev/salon-api/internal/application/appointment"
	"github.com/ksalazar-dev/salon-api/internal/application/auth"
	"github.com/ksalazar-dev/salon-api/internal/application/inventory"
	"github.com/ksalazar-dev/salon-api/internal/application/loyalty"
	"github.com/ksalazar-dev/salon-api/internal/application/usecase"
	infrapdf "github.com/ksalazar-dev/salon-api/internal/infrastructure/pdf"
	"github.com/ksalazar-dev/salon-api/internal/infrastructure/postgres"
	"github.com/ksalazar-dev/salon-api/internal/infrastructure/redcache"
	httpRouter "github.com/ksalazar-dev/salon-api/internal/interfaces/http"
	"github.com/ksalazar-dev/salon-api/pkg/config"
	"github.com/ksalazar-dev/salon-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	pointsRate, err := decimal.NewFromString(cfg.Loyalty.PointsRate)
	if err != nil {
		log.Fatal().Err(err).Str("rate", cfg.Loyalty.PointsRate).Msg("LOYALTY_POINTS_RATE inválido")
	}

	// Repositorios atados al pool; los transaccionales se re-crean atados a la tx.
	branchRepo := postgres.NewBranchRepository(pool)
	serviceRepo := postgres.NewServiceRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	apptRepo := postgres.NewAppointmentRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	promotionRepo := postgres.NewPromotionRepository(pool)
	pointsRepo := postgres.NewPointsRepository(pool)
	commissionRepo := postgres.NewCommissionRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de catálogo en Redis (opcional; deshabilitado sin REDIS_ADDR)
	var catalogCache usecase.CatalogCache
	if redisClient := redcache.NewClient(cfg.Redis); redisClient != nil {
		catalogCache = redcache.New(redisClient, cfg.Redis, log)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de catálogo habilitado")
	}

	authUC := auth.NewAuthUseCase(userRepo, branchRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	branchUC := usecase.NewBranchUseCase(branchRepo)
	serviceUC := usecase.NewServiceUseCase(serviceRepo, recipeRepo, catalogCache)
	materialUC := usecase.NewMaterialUseCase(materialRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo, commissionRepo)
	promotionUC := usecase.NewPromotionUseCase(promotionRepo)
	auditUC := usecase.NewAuditUseCase(auditRepo)

	appointmentUC := appointment.NewUseCase(apptRepo, serviceRepo, customerRepo, employeeRepo)
	closeUC := appointment.NewCloseAppointmentUseCase(txRunner, apptRepo, recipeRepo, employeeRepo, pointsRate)
	receiptUC := appointment.NewReceiptUseCase(apptRepo, branchRepo, customerRepo, serviceRepo, infrapdf.NewMarotoReceiptGenerator())
	stockUC := inventory.NewAdjustStockUseCase(txRunner, materialRepo, stockRepo)
	redeemUC := loyalty.NewRedeemUseCase(txRunner, customerRepo, pointsRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Salon API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		BranchUC:      branchUC,
		ServiceUC:     serviceUC,
		MaterialUC:    materialUC,
		CustomerUC:    customerUC,
		EmployeeUC:    employeeUC,
		PromotionUC:   promotionUC,
		AuditUC:       auditUC,
		AppointmentUC: appointmentUC,
		CloseUC:       closeUC,
		ReceiptUC:     receiptUC,
		StockUC:       stockUC,
		RedeemUC:      redeemUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
