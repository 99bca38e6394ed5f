package inventory

import (
	"time"

	"github.com/jhoicas/inventario-obra/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProjectReports calcula el InventoryReport de cada material del snapshot, en orden de alta.
// CurrentStock es la cantidad viva del material; si todo cambio pasó por el ledger coincide
// con TotalReceived - TotalConsumed (más el stock inicial cargado).
func ProjectReports(s Snapshot) []entity.InventoryReport {
	received := make(map[string]decimal.Decimal, len(s.Items))
	for _, r := range s.Receipts {
		received[r.ItemCode] = received[r.ItemCode].Add(r.QuantityReceived)
	}
	consumed := make(map[string]decimal.Decimal, len(s.Items))
	for _, c := range s.Consumption {
		consumed[c.ItemCode] = consumed[c.ItemCode].Add(c.QuantityUsed)
	}

	reports := make([]entity.InventoryReport, 0, len(s.Items))
	for _, item := range s.Items {
		reports = append(reports, entity.InventoryReport{
			ItemName:          item.ItemName,
			ItemCode:          item.ItemCode,
			TotalReceived:     received[item.ItemCode],
			TotalConsumed:     consumed[item.ItemCode],
			CurrentStock:      item.CurrentQuantity,
			CurrentValue:      item.Value(),
			UnitOfMeasurement: item.UnitOfMeasurement,
		})
	}
	return reports
}

// DateRange límites inclusivos por fecha calendario. Un límite nil deja el rango abierto.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// IsZero indica que no hay filtro.
func (r DateRange) IsZero() bool {
	return r.Start == nil && r.End == nil
}

// Contains compara solo año, mes y día.
func (r DateRange) Contains(t time.Time) bool {
	d := DateOnly(t)
	if r.Start != nil && d.Before(DateOnly(*r.Start)) {
		return false
	}
	if r.End != nil && d.After(DateOnly(*r.End)) {
		return false
	}
	return true
}

// FilterByDateRange filtra records por la fecha que devuelve field, manteniendo el orden.
// Sin límites devuelve todos los registros.
func FilterByDateRange[T any](records []T, field func(T) time.Time, r DateRange) []T {
	if r.IsZero() {
		return records
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if r.Contains(field(rec)) {
			out = append(out, rec)
		}
	}
	return out
}

// ReceiptDeliveryDate campo de fecha de las entradas.
func ReceiptDeliveryDate(r entity.StockReceipt) time.Time { return r.DeliveryDate }

// ConsumptionDate campo de fecha de los consumos.
func ConsumptionDate(c entity.StockConsumption) time.Time { return c.Date }

// Totals resumen de una lista filtrada: número de transacciones y valor total.
type Totals struct {
	Count      int
	TotalValue decimal.Decimal
}

// ReceiptTotals suma TotalValue de las entradas.
func ReceiptTotals(list []entity.StockReceipt) Totals {
	t := Totals{Count: len(list)}
	for _, r := range list {
		t.TotalValue = t.TotalValue.Add(r.TotalValue)
	}
	return t
}

// ConsumptionTotals suma TotalValue de los consumos.
func ConsumptionTotals(list []entity.StockConsumption) Totals {
	t := Totals{Count: len(list)}
	for _, c := range list {
		t.TotalValue = t.TotalValue.Add(c.TotalValue)
	}
	return t
}
