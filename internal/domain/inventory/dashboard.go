package inventory

import (
	"github.com/jhoicas/inventario-obra/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Summary indicadores del tablero de obra.
type Summary struct {
	TotalValue        decimal.Decimal
	ItemCount         int
	LowStockItems     []entity.StockItem
	RecentReceipts    []entity.StockReceipt     // más reciente primero
	RecentConsumption []entity.StockConsumption // más reciente primero
}

// Summarize arma el tablero: valor total del inventario, materiales con
// CurrentQuantity < threshold y los últimos recent movimientos de cada tipo.
func Summarize(s Snapshot, threshold decimal.Decimal, recent int) Summary {
	sum := Summary{
		ItemCount:         len(s.Items),
		LowStockItems:     LowStock(s.Items, threshold),
		RecentReceipts:    lastN(s.Receipts, recent),
		RecentConsumption: lastN(s.Consumption, recent),
	}
	for _, item := range s.Items {
		sum.TotalValue = sum.TotalValue.Add(item.Value())
	}
	return sum
}

// LowStock materiales por debajo del umbral, en orden de alta.
func LowStock(items []entity.StockItem, threshold decimal.Decimal) []entity.StockItem {
	out := []entity.StockItem{}
	for _, item := range items {
		if item.CurrentQuantity.LessThan(threshold) {
			out = append(out, item)
		}
	}
	return out
}

// lastN devuelve los últimos n elementos en orden inverso (el último insertado primero).
func lastN[T any](list []T, n int) []T {
	if n <= 0 {
		return []T{}
	}
	if n > len(list) {
		n = len(list)
	}
	out := make([]T, 0, n)
	for i := len(list) - 1; i >= len(list)-n; i-- {
		out = append(out, list[i])
	}
	return out
}
