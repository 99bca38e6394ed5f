package repository

import (
	"context"

	"github.com/jhoicas/inventario-obra/internal/domain/entity"
)

// StockReceiptRepository puerto de persistencia de entradas (solo inserción).
type StockReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.StockReceipt) error
	List(ctx context.Context) ([]entity.StockReceipt, error)
}
