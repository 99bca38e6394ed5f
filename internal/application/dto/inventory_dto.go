package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	ItemCode          string          `json:"item_code"`
	ItemName          string          `json:"item_name"`
	UnitOfMeasurement string          `json:"unit_of_measurement"`
	CurrentQuantity   decimal.Decimal `json:"current_quantity"`
	Rate              decimal.Decimal `json:"rate"`
}

// ItemResponse material con su valorización actual.
type ItemResponse struct {
	ItemCode          string          `json:"item_code"`
	ItemName          string          `json:"item_name"`
	CurrentQuantity   decimal.Decimal `json:"current_quantity"`
	UnitOfMeasurement string          `json:"unit_of_measurement"`
	Rate              decimal.Decimal `json:"rate"`
	Value             decimal.Decimal `json:"value"` // current_quantity * rate
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// CreateReceiptRequest body para POST /api/receipts.
// DeliveryDate en formato YYYY-MM-DD (también acepta RFC3339). ReceivedBy vacío = usuario del token.
type CreateReceiptRequest struct {
	ItemCode          string          `json:"item_code"`
	QuantityReceived  decimal.Decimal `json:"quantity_received"`
	RatePerUnit       decimal.Decimal `json:"rate_per_unit"`
	UnitOfMeasurement string          `json:"unit_of_measurement,omitempty"`
	SupplierName      string          `json:"supplier_name"`
	DeliveryDate      string          `json:"delivery_date"`
	ReceivedBy        string          `json:"received_by,omitempty"`
}

// ReceiptResponse entrada registrada.
type ReceiptResponse struct {
	ID                string          `json:"id"`
	ItemCode          string          `json:"item_code"`
	ItemName          string          `json:"item_name"`
	QuantityReceived  decimal.Decimal `json:"quantity_received"`
	RatePerUnit       decimal.Decimal `json:"rate_per_unit"`
	UnitOfMeasurement string          `json:"unit_of_measurement"`
	TotalValue        decimal.Decimal `json:"total_value"`
	SupplierName      string          `json:"supplier_name"`
	DeliveryDate      string          `json:"delivery_date"`
	ReceivedBy        string          `json:"received_by"`
	CreatedAt         time.Time       `json:"created_at"`
	CreatedBy         string          `json:"created_by"`
}

// CreateConsumptionRequest body para POST /api/consumption. UsedBy vacío = usuario del token.
type CreateConsumptionRequest struct {
	ItemCode            string          `json:"item_code"`
	QuantityUsed        decimal.Decimal `json:"quantity_used"`
	PurposeActivityCode string          `json:"purpose_activity_code"`
	UsedBy              string          `json:"used_by,omitempty"`
	Date                string          `json:"date"`
	Remarks             string          `json:"remarks,omitempty"`
}

// ConsumptionResponse consumo registrado. Tarifa y total se toman del material al momento del consumo.
type ConsumptionResponse struct {
	ID                  string          `json:"id"`
	ItemCode            string          `json:"item_code"`
	ItemName            string          `json:"item_name"`
	QuantityUsed        decimal.Decimal `json:"quantity_used"`
	PurposeActivityCode string          `json:"purpose_activity_code"`
	UsedBy              string          `json:"used_by"`
	Date                string          `json:"date"`
	Remarks             string          `json:"remarks,omitempty"`
	UnitOfMeasurement   string          `json:"unit_of_measurement"`
	RatePerUnit         decimal.Decimal `json:"rate_per_unit"`
	TotalValue          decimal.Decimal `json:"total_value"`
	CreatedAt           time.Time       `json:"created_at"`
	CreatedBy           string          `json:"created_by"`
}

// TotalsResponse conteo y valor total de un listado filtrado.
type TotalsResponse struct {
	Count      int             `json:"count"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// ReceiptListResponse salida de GET /api/receipts.
type ReceiptListResponse struct {
	Items  []ReceiptResponse `json:"items"`
	Totals TotalsResponse    `json:"totals"`
}

// ConsumptionListResponse salida de GET /api/consumption.
type ConsumptionListResponse struct {
	Items  []ConsumptionResponse `json:"items"`
	Totals TotalsResponse        `json:"totals"`
}

// InventoryReportResponse fila del reporte de inventario por material.
type InventoryReportResponse struct {
	ItemCode          string          `json:"item_code"`
	ItemName          string          `json:"item_name"`
	TotalReceived     decimal.Decimal `json:"total_received"`
	TotalConsumed     decimal.Decimal `json:"total_consumed"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	UnitOfMeasurement string          `json:"unit_of_measurement"`
	CurrentValue      decimal.Decimal `json:"current_value"`
}

// InventoryReportListResponse salida de GET /api/reports/inventory.
type InventoryReportListResponse struct {
	Reports    []InventoryReportResponse `json:"reports"`
	TotalValue decimal.Decimal           `json:"total_value"`
}
