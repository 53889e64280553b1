package router

import (
	"rental-manager/internal/config"
	"rental-manager/internal/handler"
	"rental-manager/internal/middleware"
	"rental-manager/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and the full API surface.
// Role gates live here; ownership checks (a tenant reading only their
// own data) live in the handlers.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/register-admin", authHandler.RegisterAdmin)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtSecret, db))

	protected.GET("/me", handler.GetMe)
	protected.POST("/me/password", authHandler.ChangePassword)

	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	pmAdmin := middleware.RequireRoles(models.RolePM, models.RoleAdmin)
	staff := middleware.RequireRoles(models.RolePM, models.RoleAdmin,
		models.RoleFS, models.RoleGM)

	userHandler := handler.NewUserHandler(db, cfg.Security.BcryptCost)
	protected.POST("/users", adminOnly, userHandler.CreateUser)
	protected.GET("/users", adminOnly, userHandler.ListUsers)
	protected.PATCH("/users/:id/status", adminOnly, userHandler.UpdateUserStatus)

	unitHandler := handler.NewUnitHandler(db)
	protected.POST("/units", pmAdmin, unitHandler.CreateUnit)
	protected.GET("/units", unitHandler.ListUnits)
	protected.GET("/units/:id", unitHandler.GetUnit)
	protected.PUT("/units/:id", pmAdmin, unitHandler.UpdateUnit)
	protected.DELETE("/units/:id", pmAdmin, unitHandler.DeleteUnit)

	pmAdminFS := middleware.RequireRoles(models.RolePM, models.RoleAdmin, models.RoleFS)

	leaseHandler := handler.NewLeaseHandler(db)
	paymentHandler := handler.NewPaymentHandler(db)
	protected.POST("/leases", pmAdmin, leaseHandler.CreateLease)
	protected.GET("/leases", staff, leaseHandler.ListLeases)
	protected.GET("/leases/:id", leaseHandler.GetLease)
	protected.PATCH("/leases/:id/end", pmAdmin, leaseHandler.EndLease)
	protected.GET("/leases/:id/payments", pmAdminFS, paymentHandler.ListPaymentsByLease)

	protected.POST("/payments",
		middleware.RequireRoles(models.RoleTenant, models.RolePM, models.RoleAdmin),
		paymentHandler.CreatePayment)
	protected.PATCH("/payments/:id/status", pmAdmin, paymentHandler.UpdatePaymentStatus)
	protected.GET("/payments", pmAdminFS, paymentHandler.ListPayments)

	// tenant-scoped reads; handlers enforce own-only access for tenants
	protected.GET("/tenants/:tenantId/leases", leaseHandler.ListLeasesByTenant)
	protected.GET("/tenants/:tenantId/payments", paymentHandler.ListPaymentsByTenant)

	financeHandler := handler.NewFinanceHandler(db)
	protected.GET("/finance/lease/:id/summary", staff, financeHandler.LeaseSummary)
	// tenants may read their own summary; the handler enforces own-only
	protected.GET("/finance/tenant/:tenantId/summary",
		middleware.RequireRoles(models.RolePM, models.RoleAdmin, models.RoleFS,
			models.RoleGM, models.RoleTenant),
		financeHandler.TenantSummary)
	protected.GET("/finance/portfolio/summary", staff, financeHandler.PortfolioSummary)

	maintenanceHandler := handler.NewMaintenanceHandler(db)
	protected.POST("/maintenance",
		middleware.RequireRoles(models.RoleTenant),
		maintenanceHandler.CreateRequest)
	protected.GET("/maintenance", pmAdmin, maintenanceHandler.ListRequests)
	protected.GET("/tenants/:tenantId/maintenance", maintenanceHandler.ListRequestsByTenant)
	protected.PATCH("/maintenance/:id/status", pmAdmin, maintenanceHandler.UpdateRequestStatus)
	protected.DELETE("/maintenance/:id", pmAdmin, maintenanceHandler.DeleteRequest)

	exportHandler := handler.NewExportHandler(db)
	fsAdmin := middleware.RequireRoles(models.RoleFS, models.RoleAdmin)
	protected.GET("/export/payments.csv", fsAdmin, exportHandler.ExportPaymentsCSV)
	protected.GET("/export/payments.xlsx", fsAdmin, exportHandler.ExportPaymentsXLSX)

	auditHandler := handler.NewAuditHandler(db)
	protected.GET("/audit",
		middleware.RequireRoles(models.RoleAdmin, models.RoleGM),
		auditHandler.ListLogs)

	return r
}
