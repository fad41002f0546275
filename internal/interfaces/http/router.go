package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ksalazar-dev/salon-api/internal/application/appointment"
	"github.com/ksalazar-dev/salon-api/internal/application/auth"
	"github.com/ksalazar-dev/salon-api/internal/application/inventory"
	"github.com/ksalazar-dev/salon-api/internal/application/loyalty"
	"github.com/ksalazar-dev/salon-api/internal/application/usecase"
	"github.com/ksalazar-dev/salon-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	BranchUC      *usecase.BranchUseCase
	ServiceUC     *usecase.ServiceUseCase
	MaterialUC    *usecase.MaterialUseCase
	CustomerUC    *usecase.CustomerUseCase
	EmployeeUC    *usecase.EmployeeUseCase
	PromotionUC   *usecase.PromotionUseCase
	AuditUC       *usecase.AuditUseCase
	AppointmentUC *appointment.UseCase
	CloseUC       *appointment.CloseAppointmentUseCase
	ReceiptUC     *appointment.ReceiptUseCase
	StockUC       *inventory.AdjustStockUseCase
	RedeemUC      *loyalty.RedeemUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas: Bearer Token + resolución de sucursal activa
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), BranchMiddleware())

	adminOnly := RequireRole(entity.RoleAdmin)
	frontDesk := RequireRole(entity.RoleAdmin, entity.RoleRecepcion)

	// Sucursales (lectura general, escritura solo admin)
	branches := protected.Group("/sucursales")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Post("/", adminOnly, branchHandler.Create)
	branches.Put("/:id", adminOnly, branchHandler.Update)
	branches.Delete("/:id", adminOnly, branchHandler.Delete)

	// Servicios del catálogo + recetas
	services := protected.Group("/servicios")
	serviceHandler := NewServiceHandler(deps.ServiceUC)
	services.Get("/", serviceHandler.List)
	services.Get("/:id", serviceHandler.GetByID)
	services.Get("/:id/receta", serviceHandler.GetRecipe)
	services.Post("/", adminOnly, serviceHandler.Create)
	services.Put("/:id", adminOnly, serviceHandler.Update)
	services.Put("/:id/receta", adminOnly, serviceHandler.SetRecipe)
	services.Delete("/:id", adminOnly, serviceHandler.Delete)

	// Materiales
	materials := protected.Group("/materiales")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Post("/", adminOnly, materialHandler.Create)
	materials.Put("/:id", adminOnly, materialHandler.Update)
	materials.Delete("/:id", adminOnly, materialHandler.Delete)

	// Existencias de la sucursal activa
	stocks := protected.Group("/existencias")
	stockHandler := NewStockHandler(deps.StockUC)
	stocks.Get("/", stockHandler.List)
	stocks.Get("/alertas", stockHandler.Alerts)
	stocks.Post("/ajustes", frontDesk, stockHandler.Adjust)

	// Clientes + programa de puntos
	customers := protected.Group("/clientes")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.RedeemUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Get("/:id/puntos", customerHandler.Points)
	customers.Post("/", frontDesk, customerHandler.Create)
	customers.Post("/:id/puntos/canje", frontDesk, customerHandler.Redeem)
	customers.Put("/:id", frontDesk, customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)

	// Empleados + comisiones
	employees := protected.Group("/empleados")
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Get("/:id/comisiones", employeeHandler.Commissions)
	employees.Post("/", adminOnly, employeeHandler.Create)
	employees.Put("/:id", adminOnly, employeeHandler.Update)
	employees.Delete("/:id", adminOnly, employeeHandler.Delete)

	// Promociones
	promotions := protected.Group("/promociones")
	promotionHandler := NewPromotionHandler(deps.PromotionUC)
	promotions.Get("/", promotionHandler.List)
	promotions.Get("/:id", promotionHandler.GetByID)
	promotions.Post("/:id/aplicar", frontDesk, promotionHandler.Apply)
	promotions.Post("/", adminOnly, promotionHandler.Create)
	promotions.Put("/:id", adminOnly, promotionHandler.Update)
	promotions.Delete("/:id", adminOnly, promotionHandler.Delete)

	// Citas: ciclo de vida + cierre atómico + recibo
	appts := protected.Group("/citas")
	appointmentHandler := NewAppointmentHandler(deps.AppointmentUC, deps.CloseUC, deps.ReceiptUC)
	appts.Get("/", appointmentHandler.List)
	appts.Get("/:id", appointmentHandler.GetByID)
	appts.Get("/:id/recibo", appointmentHandler.Receipt)
	appts.Post("/", frontDesk, appointmentHandler.Create)
	appts.Put("/:id/confirmar", frontDesk, appointmentHandler.Confirm)
	appts.Put("/:id/cancelar", frontDesk, appointmentHandler.Cancel)
	appts.Put("/:id/cerrar", frontDesk, appointmentHandler.Close)

	// Auditoría (solo admin)
	audit := protected.Group("/auditoria", adminOnly)
	auditHandler := NewAuditHandler(deps.AuditUC)
	audit.Get("/", auditHandler.List)
}
