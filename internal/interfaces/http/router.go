package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-obra/internal/application/auth"
	"github.com/jhoicas/inventario-obra/internal/application/inventory"
	"github.com/jhoicas/inventario-obra/internal/application/ports"
	"github.com/jhoicas/inventario-obra/internal/application/report"
	"github.com/jhoicas/inventario-obra/internal/domain/entity"
	"github.com/jhoicas/inventario-obra/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC    *inventory.LedgerUseCase
	AuthUC      *auth.AuthUseCase
	PDF         report.ValuationPDFGenerator
	Idempotency ports.IdempotencyStore
	Logger      *logger.Logger
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	writers := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleResidente)
	idem := RequireIdempotency(deps.Idempotency, deps.Logger)

	inv := NewInventoryHandler(deps.LedgerUC)

	items := protected.Group("/items")
	items.Get("/", inv.ListItems)
	items.Get("/:code", inv.GetItem)
	items.Post("/", writers, inv.CreateItem)

	receipts := protected.Group("/receipts")
	receipts.Get("/", inv.ListReceipts)
	receipts.Post("/", writers, idem, inv.RecordReceipt)

	consumption := protected.Group("/consumption")
	consumption.Get("/", inv.ListConsumption)
	consumption.Post("/", anyRole, idem, inv.RecordConsumption)

	reportHandler := NewReportHandler(deps.LedgerUC, deps.PDF)
	reports := protected.Group("/reports")
	reports.Get("/inventory", reportHandler.Inventory)
	reports.Get("/receipts/export", reportHandler.ExportReceipts)
	reports.Get("/consumption/export", reportHandler.ExportConsumption)
	reports.Get("/valuation/export", reportHandler.ExportValuation)
	reports.Get("/valuation/pdf", reportHandler.ValuationPDF)

	dashboardHandler := NewDashboardHandler(deps.LedgerUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
