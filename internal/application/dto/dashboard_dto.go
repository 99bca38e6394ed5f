package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalValue    decimal.Decimal `json:"total_value"` // suma de current_quantity * rate
	ItemCount     int             `json:"item_count"`
	LowStockCount int             `json:"low_stock_count"`
	// Materiales con stock por debajo del umbral configurado
	LowStockItems     []ItemResponse        `json:"low_stock_items"`
	RecentReceipts    []ReceiptResponse     `json:"recent_receipts"`    // más reciente primero
	RecentConsumption []ConsumptionResponse `json:"recent_consumption"` // más reciente primero
	Threshold         decimal.Decimal       `json:"low_stock_threshold"`
	DateLabel         string                `json:"date_label"` // ej: "15 de octubre de 2026"
}
