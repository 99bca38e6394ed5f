package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-obra/internal/domain/entity"
)

// StockItemRepository puerto de persistencia del maestro de materiales.
// El stock y la tarifa solo se escriben con UpdateBalance, a partir de eventos del ledger.
type StockItemRepository interface {
	Create(ctx context.Context, item *entity.StockItem) error
	GetByCode(ctx context.Context, itemCode string) (*entity.StockItem, error)
	List(ctx context.Context) ([]entity.StockItem, error)
	UpdateBalance(ctx context.Context, itemCode string, quantity, rate decimal.Decimal) error
}
