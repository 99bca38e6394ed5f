package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-obra/internal/application/dto"
	"github.com/jhoicas/inventario-obra/internal/application/inventory"
)

// InventoryHandler maneja materiales, entradas y consumos (protegido).
type InventoryHandler struct {
	uc *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// ListItems godoc
// @Summary      Listar materiales
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ItemResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/items [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	return c.JSON(h.uc.ListItems(c.Context()))
}

// GetItem godoc
// @Summary      Obtener material por código
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código del material"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{code} [get]
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	out, err := h.uc.GetItem(c.Context(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateItem godoc
// @Summary      Crear material
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "item_code, item_name, unit_of_measurement, current_quantity, rate"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateItem(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RecordReceipt godoc
// @Summary      Registrar entrada de material
// @Description  Suma la cantidad al stock y reemplaza la tarifa del material por rate_per_unit.
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Clave para evitar registros duplicados"
// @Param        body  body  dto.CreateReceiptRequest  true  "item_code, quantity_received, rate_per_unit, supplier_name, delivery_date"
// @Success      201   {object}  dto.ReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *InventoryHandler) RecordReceipt(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RecordReceipt(c.Context(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListReceipts godoc
// @Summary      Listar entradas
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200  {object}  dto.ReceiptListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/receipts [get]
func (h *InventoryHandler) ListReceipts(c *fiber.Ctx) error {
	rng, err := parseRange(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.uc.ListReceipts(c.Context(), rng))
}

// RecordConsumption godoc
// @Summary      Registrar consumo de material
// @Description  Descuenta la cantidad del stock valorizándola con la tarifa vigente. Rechaza si no hay stock suficiente.
// @Tags         consumption
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Clave para evitar registros duplicados"
// @Param        body  body  dto.CreateConsumptionRequest  true  "item_code, quantity_used, purpose_activity_code, date"
// @Success      201   {object}  dto.ConsumptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/consumption [post]
func (h *InventoryHandler) RecordConsumption(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RecordConsumption(c.Context(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListConsumption godoc
// @Summary      Listar consumos
// @Tags         consumption
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200  {object}  dto.ConsumptionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/consumption [get]
func (h *InventoryHandler) ListConsumption(c *fiber.Ctx) error {
	rng, err := parseRange(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.uc.ListConsumption(c.Context(), rng))
}
