package http

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-obra/internal/application/dto"
	"github.com/jhoicas/inventario-obra/internal/application/inventory"
	"github.com/jhoicas/inventario-obra/internal/application/report"
	domaininv "github.com/jhoicas/inventario-obra/internal/domain/inventory"
	"github.com/jhoicas/inventario-obra/pkg/csvexport"
)

// ReportHandler reportes de inventario y descargas CSV/PDF (protegido).
type ReportHandler struct {
	uc  *inventory.LedgerUseCase
	pdf report.ValuationPDFGenerator
	now func() time.Time
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *inventory.LedgerUseCase, pdf report.ValuationPDFGenerator) *ReportHandler {
	return &ReportHandler{uc: uc, pdf: pdf, now: time.Now}
}

// Inventory godoc
// @Summary      Reporte de inventario por material
// @Description  Recibido, consumido, stock y valor actual de cada material.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryReportListResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	return c.JSON(h.uc.ReportList(c.Context()))
}

// ExportReceipts godoc
// @Summary      Exportar entradas a CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Param        start_date  query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/receipts/export [get]
func (h *ReportHandler) ExportReceipts(c *fiber.Ctx) error {
	rng, err := parseRange(c)
	if err != nil {
		return writeError(c, err)
	}
	rows := report.ReceiptRows(h.uc.FilteredReceipts(c.Context(), rng))
	return h.sendCSV(c, report.ReceiptsFilePrefix, rows)
}

// ExportConsumption godoc
// @Summary      Exportar consumos a CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Param        start_date  query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/consumption/export [get]
func (h *ReportHandler) ExportConsumption(c *fiber.Ctx) error {
	rng, err := parseRange(c)
	if err != nil {
		return writeError(c, err)
	}
	rows := report.ConsumptionRows(h.uc.FilteredConsumption(c.Context(), rng))
	return h.sendCSV(c, report.ConsumptionFilePrefix, rows)
}

// ExportValuation godoc
// @Summary      Exportar valorización a CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/valuation/export [get]
func (h *ReportHandler) ExportValuation(c *fiber.Ctx) error {
	rows := report.ValuationRows(h.uc.Reports(c.Context()))
	return h.sendCSV(c, report.ValuationFilePrefix, rows)
}

// ValuationPDF godoc
// @Summary      Valorización en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    file
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/valuation/pdf [get]
func (h *ReportHandler) ValuationPDF(c *fiber.Ctx) error {
	now := h.now()
	out, err := h.pdf.GenerateValuationPDF(c.Context(), h.uc.Reports(c.Context()), now)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s-%s.pdf"`, report.ValuationFilePrefix, now.Format("2006-01-02")))
	return c.Send(out)
}

func (h *ReportHandler) sendCSV(c *fiber.Ctx, prefix string, rows []csvexport.Row) error {
	var buf bytes.Buffer
	if err := csvexport.Write(&buf, rows); err != nil {
		if errors.Is(err, csvexport.ErrNoData) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_DATA", Message: "no hay datos para exportar"})
		}
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, csvexport.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, csvexport.FileName(prefix, h.now())))
	return c.Send(buf.Bytes())
}

func parseRange(c *fiber.Ctx) (domaininv.DateRange, error) {
	return inventory.ParseDateRange(dto.DateRangeQuery{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	})
}
