package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-obra/internal/application/inventory"
)

// DashboardHandler maneja las peticiones del tablero principal.
type DashboardHandler struct {
	uc *inventory.LedgerUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *inventory.LedgerUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del tablero
// @Description  Valor total del inventario, materiales con stock bajo y últimos movimientos.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	return c.JSON(h.uc.Summary(c.Context()))
}
