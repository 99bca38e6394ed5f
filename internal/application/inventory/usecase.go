package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-obra/internal/application/dto"
	"github.com/jhoicas/inventario-obra/internal/domain"
	"github.com/jhoicas/inventario-obra/internal/domain/entity"
	"github.com/jhoicas/inventario-obra/internal/domain/inventory"
	"github.com/jhoicas/inventario-obra/internal/domain/repository"
	"github.com/jhoicas/inventario-obra/pkg/logger"
)

// DateLayout formato de las fechas de negocio en la API y en los CSV.
const DateLayout = "2006-01-02"

// Settings parámetros del tablero.
type Settings struct {
	LowStockThreshold decimal.Decimal
	RecentLimit       int
}

// LedgerUseCase expone el ledger a la capa HTTP: traduce DTOs, completa el actor
// y carga el estado persistido al arrancar.
type LedgerUseCase struct {
	ledger          *inventory.Ledger
	itemRepo        repository.StockItemRepository
	receiptRepo     repository.StockReceiptRepository
	consumptionRepo repository.StockConsumptionRepository
	settings        Settings
	log             *logger.Logger
	now             func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	ledger *inventory.Ledger,
	itemRepo repository.StockItemRepository,
	receiptRepo repository.StockReceiptRepository,
	consumptionRepo repository.StockConsumptionRepository,
	settings Settings,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		ledger:          ledger,
		itemRepo:        itemRepo,
		receiptRepo:     receiptRepo,
		consumptionRepo: consumptionRepo,
		settings:        settings,
		log:             log,
		now:             time.Now,
	}
}

// Bootstrap carga materiales, entradas y consumos desde la BD al ledger en memoria.
func (uc *LedgerUseCase) Bootstrap(ctx context.Context) error {
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return err
	}
	receipts, err := uc.receiptRepo.List(ctx)
	if err != nil {
		return err
	}
	consumption, err := uc.consumptionRepo.List(ctx)
	if err != nil {
		return err
	}
	if err := uc.ledger.Load(items, receipts, consumption); err != nil {
		return fmt.Errorf("cargar ledger: %w", err)
	}
	uc.log.Info().
		Int("items", len(items)).
		Int("receipts", len(receipts)).
		Int("consumption", len(consumption)).
		Msg("ledger cargado")
	return nil
}

// CreateItem da de alta un material.
func (uc *LedgerUseCase) CreateItem(_ context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.ledger.CreateItem(inventory.NewItem{
		ItemCode:          in.ItemCode,
		ItemName:          in.ItemName,
		UnitOfMeasurement: in.UnitOfMeasurement,
		Quantity:          in.CurrentQuantity,
		Rate:              in.Rate,
	})
	if err != nil {
		return nil, err
	}
	out := ToItemResponse(item)
	return &out, nil
}

// GetItem devuelve un material por código.
func (uc *LedgerUseCase) GetItem(_ context.Context, code string) (*dto.ItemResponse, error) {
	item, err := uc.ledger.Item(code)
	if err != nil {
		return nil, err
	}
	out := ToItemResponse(item)
	return &out, nil
}

// ListItems devuelve todos los materiales en orden de alta.
func (uc *LedgerUseCase) ListItems(_ context.Context) []dto.ItemResponse {
	items := uc.ledger.Items()
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ToItemResponse(it))
	}
	return out
}

// RecordReceipt registra una entrada. userID queda como created_by y, si falta, como received_by.
func (uc *LedgerUseCase) RecordReceipt(_ context.Context, userID string, in dto.CreateReceiptRequest) (*dto.ReceiptResponse, error) {
	deliveryDate, err := ParseDate(in.DeliveryDate)
	if err != nil {
		return nil, err
	}
	rec, err := uc.ledger.RecordReceipt(inventory.ReceiptInput{
		ItemCode:          in.ItemCode,
		QuantityReceived:  in.QuantityReceived,
		RatePerUnit:       in.RatePerUnit,
		UnitOfMeasurement: in.UnitOfMeasurement,
		SupplierName:      in.SupplierName,
		DeliveryDate:      deliveryDate,
		ReceivedBy:        firstNonEmpty(in.ReceivedBy, userID),
		CreatedBy:         userID,
	})
	if err != nil {
		return nil, err
	}
	out := ToReceiptResponse(rec)
	return &out, nil
}

// RecordConsumption registra un consumo. userID queda como created_by y, si falta, como used_by.
func (uc *LedgerUseCase) RecordConsumption(_ context.Context, userID string, in dto.CreateConsumptionRequest) (*dto.ConsumptionResponse, error) {
	date, err := ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	rec, err := uc.ledger.RecordConsumption(inventory.ConsumptionInput{
		ItemCode:            in.ItemCode,
		QuantityUsed:        in.QuantityUsed,
		PurposeActivityCode: in.PurposeActivityCode,
		UsedBy:              firstNonEmpty(in.UsedBy, userID),
		Date:                date,
		Remarks:             in.Remarks,
		CreatedBy:           userID,
	})
	if err != nil {
		return nil, err
	}
	out := ToConsumptionResponse(rec)
	return &out, nil
}

// FilteredReceipts entradas cuya fecha de entrega cae en el rango.
func (uc *LedgerUseCase) FilteredReceipts(_ context.Context, rng inventory.DateRange) []entity.StockReceipt {
	return inventory.FilterByDateRange(uc.ledger.Receipts(), inventory.ReceiptDeliveryDate, rng)
}

// FilteredConsumption consumos cuya fecha cae en el rango.
func (uc *LedgerUseCase) FilteredConsumption(_ context.Context, rng inventory.DateRange) []entity.StockConsumption {
	return inventory.FilterByDateRange(uc.ledger.Consumption(), inventory.ConsumptionDate, rng)
}

// ListReceipts entradas filtradas más totales.
func (uc *LedgerUseCase) ListReceipts(ctx context.Context, rng inventory.DateRange) dto.ReceiptListResponse {
	list := uc.FilteredReceipts(ctx, rng)
	out := dto.ReceiptListResponse{Items: make([]dto.ReceiptResponse, 0, len(list))}
	for _, r := range list {
		out.Items = append(out.Items, ToReceiptResponse(r))
	}
	out.Totals = toTotals(inventory.ReceiptTotals(list))
	return out
}

// ListConsumption consumos filtrados más totales.
func (uc *LedgerUseCase) ListConsumption(ctx context.Context, rng inventory.DateRange) dto.ConsumptionListResponse {
	list := uc.FilteredConsumption(ctx, rng)
	out := dto.ConsumptionListResponse{Items: make([]dto.ConsumptionResponse, 0, len(list))}
	for _, c := range list {
		out.Items = append(out.Items, ToConsumptionResponse(c))
	}
	out.Totals = toTotals(inventory.ConsumptionTotals(list))
	return out
}

// Reports proyecta el reporte de inventario por material sobre un snapshot consistente.
func (uc *LedgerUseCase) Reports(_ context.Context) []entity.InventoryReport {
	return inventory.ProjectReports(uc.ledger.Snapshot())
}

// ReportList Reports en formato de respuesta, con el valor total.
func (uc *LedgerUseCase) ReportList(ctx context.Context) dto.InventoryReportListResponse {
	reports := uc.Reports(ctx)
	out := dto.InventoryReportListResponse{
		Reports:    make([]dto.InventoryReportResponse, 0, len(reports)),
		TotalValue: decimal.Zero,
	}
	for _, r := range reports {
		out.Reports = append(out.Reports, dto.InventoryReportResponse{
			ItemCode:          r.ItemCode,
			ItemName:          r.ItemName,
			TotalReceived:     r.TotalReceived,
			TotalConsumed:     r.TotalConsumed,
			CurrentStock:      r.CurrentStock,
			UnitOfMeasurement: r.UnitOfMeasurement,
			CurrentValue:      r.CurrentValue,
		})
		out.TotalValue = out.TotalValue.Add(r.CurrentValue)
	}
	return out
}

// Summary KPIs del tablero.
func (uc *LedgerUseCase) Summary(_ context.Context) dto.DashboardSummaryDTO {
	s := inventory.Summarize(uc.ledger.Snapshot(), uc.settings.LowStockThreshold, uc.settings.RecentLimit)
	out := dto.DashboardSummaryDTO{
		TotalValue:        s.TotalValue,
		ItemCount:         s.ItemCount,
		LowStockCount:     len(s.LowStockItems),
		LowStockItems:     make([]dto.ItemResponse, 0, len(s.LowStockItems)),
		RecentReceipts:    make([]dto.ReceiptResponse, 0, len(s.RecentReceipts)),
		RecentConsumption: make([]dto.ConsumptionResponse, 0, len(s.RecentConsumption)),
		Threshold:         uc.settings.LowStockThreshold,
		DateLabel:         DateLabel(uc.now()),
	}
	for _, it := range s.LowStockItems {
		out.LowStockItems = append(out.LowStockItems, ToItemResponse(it))
	}
	for _, r := range s.RecentReceipts {
		out.RecentReceipts = append(out.RecentReceipts, ToReceiptResponse(r))
	}
	for _, c := range s.RecentConsumption {
		out.RecentConsumption = append(out.RecentConsumption, ToConsumptionResponse(c))
	}
	return out
}

// LowStock materiales por debajo del umbral configurado.
func (uc *LedgerUseCase) LowStock(_ context.Context) []entity.StockItem {
	return inventory.LowStock(uc.ledger.Items(), uc.settings.LowStockThreshold)
}

// Threshold umbral de stock bajo vigente.
func (uc *LedgerUseCase) Threshold() decimal.Decimal { return uc.settings.LowStockThreshold }

// ParseDate interpreta una fecha de negocio YYYY-MM-DD (o RFC3339). Vacía o mal formada → ErrInvalidInput.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, domain.ErrInvalidInput
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return t, nil
}

// ParseDateRange construye el filtro desde la query. Extremos vacíos = sin límite.
func ParseDateRange(q dto.DateRangeQuery) (inventory.DateRange, error) {
	var rng inventory.DateRange
	if strings.TrimSpace(q.StartDate) != "" {
		t, err := ParseDate(q.StartDate)
		if err != nil {
			return rng, err
		}
		rng.Start = &t
	}
	if strings.TrimSpace(q.EndDate) != "" {
		t, err := ParseDate(q.EndDate)
		if err != nil {
			return rng, err
		}
		rng.End = &t
	}
	if rng.Start != nil && rng.End != nil && inventory.DateOnly(*rng.End).Before(inventory.DateOnly(*rng.Start)) {
		return rng, domain.ErrInvalidInput
	}
	return rng, nil
}

func firstNonEmpty(v, fallback string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}
