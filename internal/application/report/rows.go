// Package report arma las filas de exportación de los reportes de entradas, consumos y valorización.
package report

import (
	"time"

	"github.com/jhoicas/inventario-obra/internal/domain/entity"
	"github.com/jhoicas/inventario-obra/pkg/csvexport"
)

// Prefijos de los archivos descargados.
const (
	ReceiptsFilePrefix    = "stock-receipts"
	ConsumptionFilePrefix = "stock-consumption"
	ValuationFilePrefix   = "stock-valuation"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// ReceiptRows una fila por entrada.
func ReceiptRows(list []entity.StockReceipt) []csvexport.Row {
	rows := make([]csvexport.Row, 0, len(list))
	for _, r := range list {
		rows = append(rows, csvexport.Row{
			{Name: "ID", Value: r.ID},
			{Name: "Item Name", Value: r.ItemName},
			{Name: "Item Code", Value: r.ItemCode},
			{Name: "Quantity Received", Value: r.QuantityReceived.String()},
			{Name: "Unit", Value: r.UnitOfMeasurement},
			{Name: "Rate per Unit", Value: r.RatePerUnit.StringFixed(2)},
			{Name: "Total Value", Value: r.TotalValue.StringFixed(2)},
			{Name: "Supplier", Value: r.SupplierName},
			{Name: "Delivery Date", Value: r.DeliveryDate.Format(dateLayout)},
			{Name: "Received By", Value: r.ReceivedBy},
			{Name: "Created At", Value: timestamp(r.CreatedAt)},
			{Name: "Created By", Value: r.CreatedBy},
		})
	}
	return rows
}

// ConsumptionRows una fila por consumo.
func ConsumptionRows(list []entity.StockConsumption) []csvexport.Row {
	rows := make([]csvexport.Row, 0, len(list))
	for _, c := range list {
		rows = append(rows, csvexport.Row{
			{Name: "ID", Value: c.ID},
			{Name: "Item Name", Value: c.ItemName},
			{Name: "Item Code", Value: c.ItemCode},
			{Name: "Quantity Used", Value: c.QuantityUsed.String()},
			{Name: "Unit", Value: c.UnitOfMeasurement},
			{Name: "Rate per Unit", Value: c.RatePerUnit.StringFixed(2)},
			{Name: "Total Value", Value: c.TotalValue.StringFixed(2)},
			{Name: "Activity Code", Value: c.PurposeActivityCode},
			{Name: "Used By", Value: c.UsedBy},
			{Name: "Date", Value: c.Date.Format(dateLayout)},
			{Name: "Remarks", Value: c.Remarks},
			{Name: "Created At", Value: timestamp(c.CreatedAt)},
			{Name: "Created By", Value: c.CreatedBy},
		})
	}
	return rows
}

// ValuationRows una fila por material del reporte de inventario.
func ValuationRows(reports []entity.InventoryReport) []csvexport.Row {
	rows := make([]csvexport.Row, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, csvexport.Row{
			{Name: "Item Name", Value: r.ItemName},
			{Name: "Item Code", Value: r.ItemCode},
			{Name: "Total Received", Value: r.TotalReceived.String()},
			{Name: "Total Consumed", Value: r.TotalConsumed.String()},
			{Name: "Current Stock", Value: r.CurrentStock.String()},
			{Name: "Unit", Value: r.UnitOfMeasurement},
			{Name: "Current Value", Value: r.CurrentValue.StringFixed(2)},
		})
	}
	return rows
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timestampLayout)
}
